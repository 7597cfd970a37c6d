package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// nodeAlias mirrors Node but captures the legacy editor encoding, where a
// single "format" key carries a number on text nodes and an alignment string
// on paragraph nodes.
type nodeAlias struct {
	Kind     string          `json:"type"`
	Text     *string         `json:"text"`
	Format   json.RawMessage `json:"format"`
	Style    string          `json:"style"`
	Align    string          `json:"alignment"`
	Children []Node          `json:"children"`
}

// UnmarshalJSON decodes a node, migrating the legacy "format" field to
// either the format mask or the alignment depending on its JSON type.
func (n *Node) UnmarshalJSON(data []byte) error {
	var temp nodeAlias
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	n.Kind = temp.Kind
	n.Style = temp.Style
	n.Align = temp.Align
	n.Children = temp.Children

	// A missing text field is an empty string, never a null propagated onward.
	if temp.Text != nil {
		n.Text = *temp.Text
	}

	if len(temp.Format) > 0 && !bytes.Equal(temp.Format, []byte("null")) {
		var mask int
		if err := json.Unmarshal(temp.Format, &mask); err == nil {
			n.Format = mask
		} else {
			var align string
			if err := json.Unmarshal(temp.Format, &align); err == nil {
				// Only adopt the legacy value when no explicit alignment is set.
				if n.Align == "" {
					n.Align = align
				}
			}
			// Any other shape is a reserved extension; ignore it.
		}
	}

	return nil
}

// Parse parses a serialized description document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse description: %w", err)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseFile parses a description document from disk
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description file: %w", err)
	}

	return Parse(data)
}

// Decode normalizes the description payload shapes a catalog entry may carry:
// a serialized string, raw bytes, an already-parsed Document, or a generic
// JSON object. A nil or empty payload decodes to (nil, nil), meaning no
// content rather than an error.
func Decode(payload any) (*Document, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case *Document:
		return v, nil
	case Document:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return Parse([]byte(v))
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return Parse(v)
	case json.RawMessage:
		if len(v) == 0 || bytes.Equal(v, []byte("null")) {
			return nil, nil
		}
		return Parse(v)
	default:
		// Pre-parsed generic JSON (map[string]any and friends): round-trip
		// through the codec so the same node migration rules apply.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to decode description payload: %w", err)
		}
		return Parse(data)
	}
}

// ToJSON converts a Document to JSON bytes
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
