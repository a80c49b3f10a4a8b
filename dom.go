package mdhtml

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOM projects a node tree onto golang.org/x/net/html nodes, for callers that
// want to walk, rewrite or re-serialize the tree with html.Render. The same
// structural checks as HTML apply.
func DOM(n Node) (*html.Node, error) {
	switch n := n.(type) {
	case *Leaf:
		return leafDOM(n)
	case *Container:
		return containerDOM(n)
	}
	return nil, &StructureError{Err: ErrContainerTag}
}

func leafDOM(l *Leaf) (*html.Node, error) {
	if !l.hasValue {
		return nil, &StructureError{Tag: l.Tag, Err: ErrLeafValue}
	}
	if l.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: l.value}, nil
	}
	el := element(l.Tag, l.Attrs)
	if !voidElements[l.Tag] && l.value != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: l.value})
	}
	return el, nil
}

func containerDOM(c *Container) (*html.Node, error) {
	if c.Tag == "" {
		return nil, &StructureError{Err: ErrContainerTag}
	}
	if len(c.Children) == 0 {
		return nil, &StructureError{Tag: c.Tag, Err: ErrContainerChildren}
	}
	el := element(c.Tag, c.Attrs)
	for _, child := range c.Children {
		sub, err := DOM(child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(sub)
	}
	return el, nil
}

func element(tag string, attrs []Attr) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(attrs) > 0 {
		el.Attr = make([]html.Attribute, len(attrs))
		for i, a := range attrs {
			el.Attr[i] = html.Attribute{Key: a.Key, Val: a.Val}
		}
	}
	return el
}
