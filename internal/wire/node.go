// Package wire holds the canonical parsed-payload representation shared by
// both vendor adapters: mappings are map[string]any, sequences are []any and
// scalars are string/float64/bool/nil. XML documents are decoded into the same
// shape with element attributes under "@attributes" and mixed text content
// under "#text".
package wire

import "fmt"

const (
	// AttrKey holds an element's attribute map in decoded XML nodes.
	AttrKey = "@attributes"
	// TextKey holds an element's text content when the element also carries
	// attributes or children.
	TextKey = "#text"
)

// AsMap returns v as a mapping node, or nil when v is not one.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Seq normalizes the single-vs-sequence ambiguity of converted XML: a bare
// mapping (or scalar) where a sequence was expected is lifted into a
// one-element sequence. nil yields nil.
func Seq(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}

// Attrs returns the node's attribute mapping, or an empty mapping when absent.
func Attrs(n map[string]any) map[string]any {
	if a := AsMap(n[AttrKey]); a != nil {
		return a
	}
	return map[string]any{}
}

// Text resolves the scalar content of a value that may be either a bare
// scalar (<x>123</x>) or a mapping with attributes (<x id="1">Name</x>):
// "#text" wins, then the raw scalar, then empty.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case map[string]any:
		return scalarString(t[TextKey])
	default:
		return scalarString(t)
	}
}

// scalarString renders a scalar leaf as its wire text. Numbers keep their
// shortest representation ("4", not "4.000000").
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// json.Unmarshal yields float64 for all numbers
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
