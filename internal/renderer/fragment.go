package renderer

import (
	"html"
	"strings"
)

// Fragment kinds in the display tree
const (
	FragmentContainer = "container"
	FragmentParagraph = "paragraph"
	FragmentText      = "text"
	FragmentBreak     = "break"
)

// Alignment values after normalization
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Fragment is one node of the rendered display tree. It is a plain value
// tree: building one has no side effects, and the same input document always
// produces the same fragments.
type Fragment struct {
	Kind     string      `json:"kind"`
	Key      string      `json:"key,omitempty"`
	Text     string      `json:"text,omitempty"`
	Align    string      `json:"align,omitempty"`
	Bold     bool        `json:"bold,omitempty"`
	Children []*Fragment `json:"children,omitempty"`
}

// HTML serializes the fragment tree. Leaf text is escaped; the structure
// itself comes only from fragment kinds, so the output is safe to embed.
func (f *Fragment) HTML() string {
	if f == nil {
		return ""
	}

	var sb strings.Builder
	f.writeHTML(&sb)
	return sb.String()
}

func (f *Fragment) writeHTML(sb *strings.Builder) {
	switch f.Kind {
	case FragmentContainer:
		sb.WriteString(`<div class="product-description">`)
		for _, child := range f.Children {
			child.writeHTML(sb)
		}
		sb.WriteString(`</div>`)

	case FragmentParagraph:
		sb.WriteString(`<p`)
		if f.Key != "" {
			sb.WriteString(` data-key="` + html.EscapeString(f.Key) + `"`)
		}
		if f.Align != "" && f.Align != AlignLeft {
			sb.WriteString(` style="text-align:` + f.Align + `"`)
		}
		sb.WriteString(`>`)
		for _, child := range f.Children {
			child.writeHTML(sb)
		}
		sb.WriteString(`</p>`)

	case FragmentText:
		if f.Bold {
			sb.WriteString(`<span style="font-weight:bold">`)
		} else {
			sb.WriteString(`<span>`)
		}
		sb.WriteString(html.EscapeString(f.Text))
		sb.WriteString(`</span>`)

	case FragmentBreak:
		sb.WriteString(`<br>`)
	}
}

// PlainText flattens the fragment tree to its visible text, paragraphs
// separated by newlines.
func (f *Fragment) PlainText() string {
	if f == nil {
		return ""
	}

	var sb strings.Builder
	f.writeText(&sb)
	return sb.String()
}

func (f *Fragment) writeText(sb *strings.Builder) {
	switch f.Kind {
	case FragmentContainer:
		for i, child := range f.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			child.writeText(sb)
		}
	case FragmentParagraph:
		for _, child := range f.Children {
			child.writeText(sb)
		}
	case FragmentText:
		sb.WriteString(f.Text)
	case FragmentBreak:
		sb.WriteString("\n")
	}
}
