package mdhtml

import (
	"fmt"
	"strings"
)

var spanTags = [...]string{
	spanPlain:  "",
	spanBold:   "b",
	spanItalic: "i",
	spanCode:   "code",
}

// SpanNode maps a span to its leaf node.
func SpanNode(s Span) *Leaf {
	switch s.kind {
	case spanLink:
		return NewLeaf("a", s.text, Attr{Key: "href", Val: s.url})
	case spanImage:
		return NewLeaf("img", "", Attr{Key: "src", Val: s.url}, Attr{Key: "alt", Val: s.text})
	}
	if int(s.kind) < len(spanTags) {
		return NewLeaf(spanTags[s.kind], s.text)
	}
	return Text(s.text)
}

// InlineNodes tokenizes text and maps every span to a leaf. Text without any
// spans yields a single empty text leaf so the parent stays renderable.
func InlineNodes(text string) ([]Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return []Node{Text("")}, nil
	}
	nodes := make([]Node, len(spans))
	for i, s := range spans {
		nodes[i] = SpanNode(s)
	}
	return nodes, nil
}

// BuildBlock converts a classified block to a node.
func BuildBlock(b Block) (Node, error) {
	switch b.Type {
	case BlockHeading:
		if level, ok := HeadingLevel(b.Text); ok {
			return inlineContainer(fmt.Sprintf("h%d", level), joinLines(strings.Split(b.Text[level+1:], "\n")))
		}
	case BlockCode:
		return NewContainer("pre", NewLeaf("code", codeContent(b.Text))), nil
	case BlockQuote:
		return inlineContainer("blockquote", quoteContent(b.Text))
	case BlockUnorderedList:
		return listContainer("ul", b.Text, func(int) string { return "- " })
	case BlockOrderedList:
		return listContainer("ol", b.Text, func(i int) string { return orderedMarker(i + 1) })
	}
	return inlineContainer("p", joinLines(strings.Split(b.Text, "\n")))
}

func inlineContainer(tag, text string) (Node, error) {
	children, err := InlineNodes(text)
	if err != nil {
		return nil, err
	}
	return NewContainer(tag, children...), nil
}

func listContainer(tag, block string, marker func(int) string) (Node, error) {
	lines := strings.Split(block, "\n")
	list := &Container{Tag: tag, Children: make([]Node, 0, len(lines))}
	for i, line := range lines {
		item, err := inlineContainer("li", strings.TrimSpace(strings.TrimPrefix(line, marker(i))))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		list.Append(item)
	}
	return list, nil
}

// codeContent drops the fences and the opening fence line, which may carry an
// info string.
func codeContent(block string) string {
	body := strings.TrimPrefix(block, codeFence)
	if len(body) < len(codeFence) {
		return ""
	}
	body = body[:len(body)-len(codeFence)]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	}
	return body
}

func quoteContent(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = stripQuotePrefix(line)
	}
	return joinLines(lines)
}

func stripQuotePrefix(line string) string {
	line = strings.TrimPrefix(line, ">")
	if line != "" && (line[0] == ' ' || line[0] == '\t') {
		line = line[1:]
	}
	return line
}

// joinLines trims every line and joins the non-empty ones with a space.
func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// Convert builds the node tree of a document. The root container has one child
// per block; it has none when the document is blank.
func Convert(markdown string, opts ...RenderOption) (*Container, error) {
	cfg := newRenderConfig(opts)
	return convert(markdown, cfg)
}

func convert(markdown string, cfg renderConfig) (*Container, error) {
	blocks := Blocks(markdown)
	root := &Container{Tag: cfg.rootTag, Children: make([]Node, 0, len(blocks))}
	for i, b := range blocks {
		cfg.logger.Debug("block", "index", i, "type", b.Type.String(), "bytes", len(b.Text))
		n, err := BuildBlock(b)
		if err != nil {
			return nil, fmt.Errorf("convert: block %d (%s): %w", i+1, b.Type, err)
		}
		root.Append(n)
	}
	cfg.logger.Debug("converted", "blocks", len(blocks))
	return root, nil
}

// ConvertString converts a document to HTML. A blank document renders as the
// empty string.
func ConvertString(markdown string, opts ...RenderOption) (string, error) {
	cfg := newRenderConfig(opts)
	root, err := convert(markdown, cfg)
	if err != nil {
		return "", err
	}
	return renderRoot(root, cfg)
}

func renderRoot(root *Container, cfg renderConfig) (string, error) {
	if len(root.Children) == 0 {
		return "", nil
	}
	if cfg.fragment {
		return root.InnerHTML()
	}
	return root.HTML()
}
