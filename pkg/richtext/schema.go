// Package richtext defines the types for the structured product description format
package richtext

// Node kinds produced by the rich-text editor. Any other kind is treated as
// unknown and must survive decoding untouched.
const (
	KindText      = "text"
	KindLineBreak = "linebreak"
	KindParagraph = "paragraph"
)

// Format mask bits for text nodes. Only bit 0 is currently assigned; all
// remaining bits are reserved and must be ignored, never rejected.
const (
	FormatBold = 1 << 0
)

// Node is one element of a description tree, discriminated by Kind.
// Fields not relevant to a given kind are left at their zero value.
type Node struct {
	Kind     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Format   int    `json:"format,omitempty"`
	Style    string `json:"style,omitempty"`
	Align    string `json:"alignment,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Root holds the top-level node sequence of a document.
type Root struct {
	Children []Node `json:"children"`
}

// Document represents a full product description payload
type Document struct {
	Root Root `json:"root"`
}

// IsEmpty reports whether the document carries no content at all.
// An empty document is valid; it renders the no-content fallback.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Root.Children) == 0
}
