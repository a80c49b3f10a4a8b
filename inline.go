package mdhtml

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// ErrUnmatchedDelimiter reports an inline delimiter without a closing pair.
var ErrUnmatchedDelimiter = errors.New("unmatched delimiter")

// SyntaxError reports malformed inline markup.
type SyntaxError struct {
	Delimiter string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v %q", ErrUnmatchedDelimiter, e.Delimiter)
}

func (e *SyntaxError) Unwrap() error { return ErrUnmatchedDelimiter }

type delimiter struct {
	marker string
	kind   spanKind
}

// Bold must run before italic: both split the same flat text.
var inlineDelimiters = [...]delimiter{
	{marker: "**", kind: spanBold},
	{marker: "_", kind: spanItalic},
	{marker: "`", kind: spanCode},
}

var (
	imagePattern = regexp2.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`, regexp2.None)
	linkPattern  = regexp2.MustCompile(`(?<!!)\[([^\[\]]*)\]\(([^\(\)]*)\)`, regexp2.None)
)

// Reference is a (text, url) pair found in raw inline text.
type Reference struct {
	Text string
	URL  string
}

// Tokenize splits inline text into spans.
//
// Delimiters are applied in a fixed order (bold, italic, code), then images
// and links are extracted from the spans that are still plain. Delimiters are
// never reinterpreted inside spans produced by an earlier pass.
//
// Text must be valid UTF-8; otherwise an *InputError wrapping ErrInvalidUTF8
// is returned.
func Tokenize(text string) ([]Span, error) {
	if text == "" {
		return nil, nil
	}
	if !utf8.ValidString(text) {
		return nil, &InputError{Offset: invalidUTF8Offset(text), Err: ErrInvalidUTF8}
	}
	spans := []Span{NewSpan(spanPlain, text)}
	var err error
	for _, d := range inlineDelimiters {
		spans, err = splitDelimiter(spans, d)
		if err != nil {
			return nil, err
		}
	}
	spans, err = splitPattern(spans, imagePattern, spanImage)
	if err != nil {
		return nil, err
	}
	return splitPattern(spans, linkPattern, spanLink)
}

func splitDelimiter(spans []Span, d delimiter) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.kind != spanPlain || !strings.Contains(span.text, d.marker) {
			out = append(out, span)
			continue
		}
		parts := strings.Split(span.text, d.marker)
		if len(parts)%2 == 0 {
			return nil, &SyntaxError{Delimiter: d.marker}
		}
		for i, part := range parts {
			if i%2 == 1 {
				out = append(out, NewSpan(d.kind, part))
				continue
			}
			if part != "" {
				out = append(out, NewSpan(spanPlain, part))
			}
		}
	}
	return out, nil
}

func splitPattern(spans []Span, re *regexp2.Regexp, kind spanKind) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.kind != spanPlain {
			out = append(out, span)
			continue
		}
		m, err := re.FindStringMatch(span.text)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", kind, err)
		}
		if m == nil {
			out = append(out, span)
			continue
		}
		// regexp2 reports rune offsets.
		runes := []rune(span.text)
		prev := 0
		for m != nil {
			if m.Index > prev {
				out = append(out, NewSpan(spanPlain, string(runes[prev:m.Index])))
			}
			out = append(out, NewURLSpan(kind, m.GroupByNumber(1).String(), m.GroupByNumber(2).String()))
			prev = m.Index + m.Length
			m, err = re.FindNextMatch(m)
			if err != nil {
				return nil, fmt.Errorf("match %s: %w", kind, err)
			}
		}
		if prev < len(runes) {
			out = append(out, NewSpan(spanPlain, string(runes[prev:])))
		}
	}
	return out, nil
}

// ExtractImages returns the ![alt](url) references in text, in order.
func ExtractImages(text string) ([]Reference, error) {
	return extractReferences(text, imagePattern)
}

// ExtractLinks returns the [text](url) references in text, in order.
// Image references are not reported.
func ExtractLinks(text string) ([]Reference, error) {
	return extractReferences(text, linkPattern)
}

func extractReferences(text string, re *regexp2.Regexp) ([]Reference, error) {
	var refs []Reference
	m, err := re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		refs = append(refs, Reference{
			Text: m.GroupByNumber(1).String(),
			URL:  m.GroupByNumber(2).String(),
		})
	}
	if err != nil {
		return nil, err
	}
	return refs, nil
}
