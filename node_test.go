package mdhtml

import (
	"errors"
	"testing"
)

func TestLeafHTML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		leaf *Leaf
		want string
	}{
		{"paragraph", NewLeaf("p", "This is a paragraph of text."), "<p>This is a paragraph of text.</p>"},
		{"link", NewLeaf("a", "Click me!", Attr{Key: "href", Val: "https://www.google.com"}), `<a href="https://www.google.com">Click me!</a>`},
		{"raw text", Text("Hello, world!"), "Hello, world!"},
		{"empty value", NewLeaf("b", ""), "<b></b>"},
		{"empty text", Text(""), ""},
		{"void image", NewLeaf("img", "", Attr{Key: "src", Val: "a.png"}, Attr{Key: "alt", Val: "a"}), `<img src="a.png" alt="a">`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.leaf.HTML()
			if err != nil {
				t.Fatalf("HTML: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLeafWithoutValue(t *testing.T) {
	t.Parallel()
	_, err := (&Leaf{Tag: "p"}).HTML()
	if !errors.Is(err, ErrLeafValue) {
		t.Fatalf("expected ErrLeafValue, got %v", err)
	}
	var structErr *StructureError
	if !errors.As(err, &structErr) || structErr.Tag != "p" {
		t.Fatalf("expected StructureError for <p>, got %#v", err)
	}
}

func TestLeafValue(t *testing.T) {
	t.Parallel()
	if _, ok := (&Leaf{}).Value(); ok {
		t.Fatalf("zero leaf reported a value")
	}
	if v, ok := Text("").Value(); !ok || v != "" {
		t.Fatalf("expected empty value, got %q (%v)", v, ok)
	}
}

func TestAttributesRenderInOrder(t *testing.T) {
	t.Parallel()
	c := NewContainer("div", Text("x"))
	c.Attrs = []Attr{{Key: "id", Val: "main"}, {Key: "class", Val: "a b"}, {Key: "data-x", Val: "1"}}
	got := MustHTML(c)
	want := `<div id="main" class="a b" data-x="1">x</div>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestContainerHTML(t *testing.T) {
	t.Parallel()
	node := NewContainer("p",
		NewLeaf("b", "Bold text"),
		Text("Normal text"),
		NewLeaf("i", "italic text"),
		Text("Normal text"),
	)
	got, err := node.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	want := "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNestedContainers(t *testing.T) {
	t.Parallel()
	grandchild := NewLeaf("b", "grandchild")
	child := NewContainer("span", grandchild)
	parent := NewContainer("div", child)
	if got := MustHTML(parent); got != "<div><span><b>grandchild</b></span></div>" {
		t.Fatalf("unexpected HTML: %q", got)
	}
	inner, err := parent.InnerHTML()
	if err != nil {
		t.Fatalf("InnerHTML: %v", err)
	}
	if inner != "<span><b>grandchild</b></span>" {
		t.Fatalf("unexpected inner HTML: %q", inner)
	}
}

func TestContainerStructureErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		node Node
		want error
	}{
		{"no tag", NewContainer("", Text("x")), ErrContainerTag},
		{"no children", NewContainer("div"), ErrContainerChildren},
		{"nested leaf without value", NewContainer("div", NewContainer("p", &Leaf{Tag: "b"})), ErrLeafValue},
		{"nested empty container", NewContainer("ul", NewContainer("li")), ErrContainerChildren},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := tc.node.HTML()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if out != "" {
				t.Fatalf("expected no output on error, got %q", out)
			}
		})
	}
}

func TestContainerAppend(t *testing.T) {
	t.Parallel()
	c := NewContainer("ul")
	c.Append(NewLeaf("li", "a"), NewLeaf("li", "b"))
	if got := MustHTML(c); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("unexpected HTML: %q", got)
	}
}

func TestMustHTMLPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustHTML(NewContainer("div"))
}
