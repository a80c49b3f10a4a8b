package mdhtml

import "fmt"

// Span is an inline text segment with a kind applied.
//
// Spans are values: two spans are equal (==) when kind, text and URL match,
// including whether a URL is present at all.
type Span struct {
	kind   spanKind
	text   string
	url    string
	hasURL bool
}

type spanKind uint8

// SpanKind is the exported alias of spanKind for tooling and tree builders.
type SpanKind = spanKind

const (
	spanPlain spanKind = iota
	spanBold
	spanItalic
	spanCode
	spanLink
	spanImage
)

const (
	// SpanPlain represents untyped text.
	SpanPlain SpanKind = spanPlain
	// SpanBold represents **bold** text.
	SpanBold SpanKind = spanBold
	// SpanItalic represents _italic_ text.
	SpanItalic SpanKind = spanItalic
	// SpanCode represents `code` text.
	SpanCode SpanKind = spanCode
	// SpanLink represents [text](url).
	SpanLink SpanKind = spanLink
	// SpanImage represents ![alt](url).
	SpanImage SpanKind = spanImage
)

var spanKindNames = [...]string{
	spanPlain:  "text",
	spanBold:   "bold",
	spanItalic: "italic",
	spanCode:   "code",
	spanLink:   "link",
	spanImage:  "image",
}

func (k spanKind) String() string {
	if int(k) < len(spanKindNames) {
		return spanKindNames[k]
	}
	return fmt.Sprintf("span%d", uint8(k))
}

// NewSpan returns a span without a URL.
func NewSpan(kind SpanKind, text string) Span {
	return Span{kind: kind, text: text}
}

// NewURLSpan returns a span carrying a URL. The URL may be empty.
func NewURLSpan(kind SpanKind, text, url string) Span {
	return Span{kind: kind, text: text, url: url, hasURL: true}
}

// Kind returns the span kind.
func (s Span) Kind() SpanKind { return s.kind }

// Text returns the literal content, or the alt/anchor text for images and links.
func (s Span) Text() string { return s.text }

// URL returns the span URL and whether one is present.
func (s Span) URL() (string, bool) { return s.url, s.hasURL }

// Equal reports whether both spans have the same kind, text and URL.
func (s Span) Equal(o Span) bool { return s == o }

func (s Span) String() string {
	url := "<nil>"
	if s.hasURL {
		url = s.url
	}
	return fmt.Sprintf("Span(%s, %s, %s)", s.text, s.kind, url)
}
