package mdhtml

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockType is the structural kind of a block.
type BlockType uint8

const (
	// BlockParagraph is the fallback kind.
	BlockParagraph BlockType = iota
	// BlockHeading is 1 to 6 '#' followed by a space.
	BlockHeading
	// BlockCode is a block fenced by ```.
	BlockCode
	// BlockQuote has every line prefixed by '>'.
	BlockQuote
	// BlockUnorderedList has every line prefixed by "- ".
	BlockUnorderedList
	// BlockOrderedList has lines prefixed by "1. ", "2. ", ... in sequence.
	BlockOrderedList
)

var blockTypeNames = [...]string{
	BlockParagraph:     "paragraph",
	BlockHeading:       "heading",
	BlockCode:          "code",
	BlockQuote:         "quote",
	BlockUnorderedList: "unordered_list",
	BlockOrderedList:   "ordered_list",
}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return fmt.Sprintf("block%d", uint8(t))
}

// Block is a trimmed document segment with its classification.
type Block struct {
	Type BlockType
	Text string
}

const codeFence = "```"

// Segment splits a document into trimmed, non-empty blocks.
//
// Blocks are separated by one or more blank lines; a line holding only
// Unicode whitespace is blank. A document that uses bare '\r' line endings
// (and no "\r\n") is split on every line instead.
func Segment(document string) []string {
	legacy := strings.Contains(document, "\r") && !strings.Contains(document, "\r\n")
	normalized := strings.ReplaceAll(document, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	blocks := make([]string, 0, len(lines)/2+1)
	if legacy {
		for _, line := range lines {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				blocks = append(blocks, trimmed)
			}
		}
		return blocks
	}
	start := 0
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			continue
		}
		if block := strings.TrimSpace(strings.Join(lines[start:i], "\n")); block != "" {
			blocks = append(blocks, block)
		}
		start = i + 1
	}
	return blocks
}

// Blocks segments a document and classifies every block.
func Blocks(document string) []Block {
	segments := Segment(document)
	blocks := make([]Block, len(segments))
	for i, text := range segments {
		blocks[i] = Block{Type: Classify(text), Text: text}
	}
	return blocks
}

// Classify returns the structural kind of a block. It never fails; blocks that
// match no other rule are paragraphs.
func Classify(block string) BlockType {
	if _, ok := HeadingLevel(block); ok {
		return BlockHeading
	}
	if isCodeBlock(block) {
		return BlockCode
	}
	lines := strings.Split(block, "\n")
	switch {
	case everyLine(lines, isQuoteLine):
		return BlockQuote
	case everyLine(lines, isUnorderedItem):
		return BlockUnorderedList
	case isOrderedList(lines):
		return BlockOrderedList
	}
	return BlockParagraph
}

// HeadingLevel returns the number of leading '#' of a heading block.
func HeadingLevel(block string) (int, bool) {
	level := 0
	for level < len(block) && block[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, false
	}
	if level >= len(block) || block[level] != ' ' {
		return 0, false
	}
	return level, true
}

func isCodeBlock(block string) bool {
	return strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence)
}

func everyLine(lines []string, match func(string) bool) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !match(line) {
			return false
		}
	}
	return true
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, ">")
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(line, "- ")
}

func isOrderedList(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, orderedMarker(i+1)) {
			return false
		}
	}
	return true
}

func orderedMarker(n int) string {
	return strconv.Itoa(n) + ". "
}
