package mdhtml

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBlock(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			name:  "heading",
			block: Block{Type: BlockHeading, Text: "## My **Bear** Friend"},
			want:  "<h2>My <b>Bear</b> Friend</h2>",
		},
		{
			name:  "level six",
			block: Block{Type: BlockHeading, Text: "###### deep"},
			want:  "<h6>deep</h6>",
		},
		{
			name:  "multi-line heading",
			block: Block{Type: BlockHeading, Text: "# a\n  b _c_"},
			want:  "<h1>a b <i>c</i></h1>",
		},
		{
			name:  "empty heading",
			block: Block{Type: BlockHeading, Text: "# "},
			want:  "<h1></h1>",
		},
		{
			name:  "misclassified heading falls back to paragraph",
			block: Block{Type: BlockHeading, Text: "not a heading"},
			want:  "<p>not a heading</p>",
		},
		{
			name:  "code",
			block: Block{Type: BlockCode, Text: "```\nx := **1**\ny := _2_\n```"},
			want:  "<pre><code>x := **1**\ny := _2_\n</code></pre>",
		},
		{
			name:  "code with info string",
			block: Block{Type: BlockCode, Text: "```go\nfmt.Println()\n```"},
			want:  "<pre><code>fmt.Println()\n</code></pre>",
		},
		{
			name:  "lone fence",
			block: Block{Type: BlockCode, Text: "```"},
			want:  "<pre><code></code></pre>",
		},
		{
			name:  "quote",
			block: Block{Type: BlockQuote, Text: "> first _line_\n>second line\n>"},
			want:  "<blockquote>first <i>line</i> second line</blockquote>",
		},
		{
			name:  "unordered list",
			block: Block{Type: BlockUnorderedList, Text: "- one\n- **two**"},
			want:  "<ul><li>one</li><li><b>two</b></li></ul>",
		},
		{
			name:  "ordered list",
			block: Block{Type: BlockOrderedList, Text: "1. one\n2. [two](/2)\n3. `three`"},
			want:  `<ol><li>one</li><li><a href="/2">two</a></li><li><code>three</code></li></ol>`,
		},
		{
			name:  "paragraph lines are joined",
			block: Block{Type: BlockParagraph, Text: "first line\n   second line  \nthird"},
			want:  "<p>first line second line third</p>",
		},
		{
			name:  "image",
			block: Block{Type: BlockParagraph, Text: "see ![alt text](/a.png)"},
			want:  `<p>see <img src="/a.png" alt="alt text"></p>`,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n, err := BuildBlock(tc.block)
			require.NoError(t, err)
			assert.Equal(t, tc.want, MustHTML(n))
		})
	}
}

func TestBuildBlockListItemError(t *testing.T) {
	t.Parallel()
	n, err := BuildBlock(Block{Type: BlockUnorderedList, Text: "- fine\n- `broken"})
	require.Error(t, err)
	assert.Nil(t, n)
	assert.True(t, errors.Is(err, ErrUnmatchedDelimiter))
	assert.Contains(t, err.Error(), "item 2")
}

func TestSpanNode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		span Span
		want string
	}{
		{plain("text"), "text"},
		{bold("b"), "<b>b</b>"},
		{italic("i"), "<i>i</i>"},
		{code("c"), "<code>c</code>"},
		{link("anchor", "https://example.com"), `<a href="https://example.com">anchor</a>`},
		{image("alt", "/x.png"), `<img src="/x.png" alt="alt">`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MustHTML(SpanNode(tc.span)), tc.span.String())
	}
}

func TestInlineNodesEmpty(t *testing.T) {
	t.Parallel()
	nodes, err := InlineNodes("")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "", MustHTML(nodes[0]))
}

func TestConvertString(t *testing.T) {
	t.Parallel()
	doc := "# Title\n\nSome **bold** text\nwrapped.\n\n> quoted\n\n- a\n- b\n\n1. x\n2. y\n\n```\nraw _text_\n```\n"
	got, err := ConvertString(doc)
	require.NoError(t, err)
	want := "<div><h1>Title</h1><p>Some <b>bold</b> text wrapped.</p><blockquote>quoted</blockquote>" +
		"<ul><li>a</li><li>b</li></ul><ol><li>x</li><li>y</li></ol><pre><code>raw _text_\n</code></pre></div>"
	assert.Equal(t, want, got)
}

func TestConvertStringOptions(t *testing.T) {
	t.Parallel()
	doc := "# Title\n\nBody"

	got, err := ConvertString(doc, WithRootTag("article"))
	require.NoError(t, err)
	assert.Equal(t, "<article><h1>Title</h1><p>Body</p></article>", got)

	got, err = ConvertString(doc, WithFragment(true))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1><p>Body</p>", got)

	got, err = ConvertString(doc, WithRootTag(""), nil)
	require.NoError(t, err)
	assert.Equal(t, "<div><h1>Title</h1><p>Body</p></div>", got)
}

func TestConvertBlankDocument(t *testing.T) {
	t.Parallel()
	root, err := Convert("  \n\n\t")
	require.NoError(t, err)
	assert.Empty(t, root.Children)

	got, err := ConvertString("  \n\n\t")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestConvertRootHasOneChildPerBlock(t *testing.T) {
	t.Parallel()
	doc := "a\n\nb\n\n- c\n\n# d"
	root, err := Convert(doc)
	require.NoError(t, err)
	assert.Len(t, root.Children, len(Segment(doc)))
	assert.Equal(t, DefaultRootTag, root.Tag)
}

func TestConvertAbortsOnSyntaxError(t *testing.T) {
	t.Parallel()
	root, err := Convert("# fine\n\nthis has an unclosed **bold")
	require.Error(t, err)
	assert.Nil(t, root)
	assert.True(t, errors.Is(err, ErrUnmatchedDelimiter))
	assert.Contains(t, err.Error(), "block 2 (paragraph)")

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "**", syntaxErr.Delimiter)
}

func TestConvertLogsBlocks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := Convert("# Title\n\n- a", WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=block"))
	assert.Contains(t, out, "type=heading")
	assert.Contains(t, out, "type=unordered_list")
	assert.Contains(t, out, "msg=converted blocks=2")
}
