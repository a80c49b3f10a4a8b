// Package mdhtml converts a small, strict subset of Markdown to an HTML node
// tree.
//
// Conversion runs in two stages. Block segmentation splits a document on blank
// lines and classifies every block (heading, code, quote, unordered list,
// ordered list, paragraph). Inline tokenization splits block text into typed
// spans (bold, italic, code, link, image, plain). A thin builder maps both onto
// Leaf and Container nodes that render to HTML strings.
//
// Supported syntax:
//   - Headings: 1 to 6 '#' followed by a space
//   - Code blocks fenced by ```
//   - Quotes: every line starts with '>'
//   - Lists: every line starts with "- ", or "1. ", "2. ", ... in sequence
//   - Inline: **bold**, _italic_, `code`, [text](url), ![alt](url)
//
// Nested lists, tables, reference links, raw HTML and delimiter escaping are
// not supported, and text is not entity encoded. An unmatched inline delimiter
// is a *SyntaxError and aborts the conversion.
//
// Example:
//
//	reader := strings.NewReader("# Hello\n\nMarkdown in, **HTML** out.\n")
//	err := mdhtml.Render(mdhtml.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// All functions are pure with respect to their input and safe for concurrent
// use.
package mdhtml
