package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"pkt.systems/mdhtml"
)

const ellipsis = "…"

func renderOutline(r io.Reader, w io.Writer, width int, keepFrontMatter bool) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := mdhtml.ValidateInput(src); err != nil {
		return err
	}
	body := src
	if !keepFrontMatter {
		if _, body, err = mdhtml.ParseFrontMatter(src); err != nil {
			return err
		}
	}
	bw := bufio.NewWriter(w)
	if err := writeOutline(bw, mdhtml.Blocks(string(body)), width); err != nil {
		return err
	}
	return bw.Flush()
}

// writeOutline prints one line per block: index, kind and a preview of the
// first line fitted to width.
func writeOutline(w io.Writer, blocks []mdhtml.Block, width int) error {
	for i, b := range blocks {
		label := outlineLabel(b)
		prefix := fmt.Sprintf("%3d  %-16s ", i+1, label)
		preview := firstLine(b.Text)
		if lines := strings.Count(b.Text, "\n") + 1; lines > 1 {
			preview = fmt.Sprintf("%s (+%d lines)", preview, lines-1)
		}
		limit := width - ansi.PrintableRuneWidth(prefix)
		if _, err := fmt.Fprintln(w, prefix+truncateWithEllipsis(preview, limit)); err != nil {
			return err
		}
	}
	return nil
}

func outlineLabel(b mdhtml.Block) string {
	if level, ok := mdhtml.HeadingLevel(b.Text); ok && b.Type == mdhtml.BlockHeading {
		return fmt.Sprintf("%s/h%d", b.Type, level)
	}
	return b.Type.String()
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(limit), ellipsis)
}
