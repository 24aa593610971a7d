package wire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeXML converts an XML document into the canonical node shape: the
// returned mapping has a single key, the root element's name. Attributes go
// under AttrKey, mixed text under TextKey, and repeated sibling elements
// become a sequence under their shared tag. An element with exactly one
// occurrence of a child stays a bare mapping; callers normalize with Seq.
func DecodeXML(raw []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("wire: empty xml document")
		}
		if err != nil {
			return nil, fmt.Errorf("wire: decode xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		node, err := decodeElement(dec, se)
		if err != nil {
			return nil, fmt.Errorf("wire: decode xml: %w", err)
		}
		return map[string]any{se.Name.Local: node}, nil
	}
}

// decodeElement consumes tokens until se's end tag and returns the element as
// a node. Leaf elements without attributes collapse to their trimmed text.
func decodeElement(dec *xml.Decoder, se xml.StartElement) (any, error) {
	children := map[string]any{}
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			addChild(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return assemble(se.Attr, children, strings.TrimSpace(text.String())), nil
		}
	}
}

// addChild inserts a child under name, promoting repeats to a sequence.
func addChild(m map[string]any, name string, v any) {
	prev, ok := m[name]
	if !ok {
		m[name] = v
		return
	}
	if s, ok := prev.([]any); ok {
		m[name] = append(s, v)
		return
	}
	m[name] = []any{prev, v}
}

func assemble(attrs []xml.Attr, children map[string]any, text string) any {
	if len(attrs) == 0 && len(children) == 0 {
		// plain leaf: just the scalar text, possibly ""
		return text
	}
	if len(attrs) > 0 {
		am := make(map[string]any, len(attrs))
		for _, a := range attrs {
			am[a.Name.Local] = a.Value
		}
		children[AttrKey] = am
	}
	if text != "" {
		children[TextKey] = text
	}
	return children
}
