package mdhtml

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds metadata decoded from a leading YAML (---), TOML (+++) or
// JSON (;;;) block.
type FrontMatter map[string]any

// ParseFrontMatter splits a leading front matter block from src and decodes
// it. Input without front matter is returned unchanged with nil metadata.
//
// A block only counts as front matter when it opens on the first line, its
// first content line looks like metadata and a closing delimiter follows.
func ParseFrontMatter(src []byte) (FrontMatter, []byte, error) {
	body, ok := stripFrontMatter(src)
	if !ok {
		return nil, src, nil
	}
	meta := map[string]any{}
	if _, err := frontmatter.Parse(bytes.NewReader(trimBOM(src)), &meta); err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return FrontMatter(meta), body, nil
}

func stripFrontMatter(src []byte) ([]byte, bool) {
	openLine, next, ok := nextLine(src, 0)
	if !ok {
		return nil, false
	}
	delim, ok := parseOpeningFrontMatterDelimiter(openLine)
	if !ok {
		return nil, false
	}
	firstLine, _, ok := nextLine(src, next)
	if !ok || !frontMatterMetadataLikely(firstLine) {
		return nil, false
	}
	end, ok := findClosingFrontMatterDelimiter(src, next, delim)
	if !ok {
		return nil, false
	}
	return src[end:], true
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	return trimCR(src[start : start+i]), start + i + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	for _, delim := range [][]byte{[]byte("---"), []byte("+++"), []byte(";;;")} {
		if bytes.Equal(trimmed, delim) {
			return delim, true
		}
	}
	return nil, false
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	switch trimmed[0] {
	case '{', '[':
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return next, true
		}
		idx = next
	}
	return 0, false
}

func trimCR(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\r"))
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xEF\xBB\xBF"))
}
