package bookingmanager

import (
	"fmt"

	"pmsbridge/internal/wire"
)

// APIError is a failure signaled by the vendor itself through an <error>
// element. Code is kept exactly as it appeared on the wire; the vendor mixes
// numeric and string codes across endpoints.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookingmanager: api error %s: %s", e.Code, e.Message)
}

// apiError scans a decoded document for an <error> element, either at the
// root or directly under the root element, and short-circuits mapping.
func apiError(doc map[string]any) *APIError {
	candidates := []any{doc["error"]}
	for _, v := range doc {
		if m := wire.AsMap(v); m != nil {
			candidates = append(candidates, m["error"])
		}
	}
	for _, v := range candidates {
		if v == nil {
			continue
		}
		n := wire.AsMap(v)
		e := &APIError{Message: wire.Text(v)}
		if n != nil {
			e.Code = wire.Str(wire.Attrs(n), "code", "")
			if e.Code == "" {
				e.Code = wire.Str(n, "code", "")
			}
			if msg := wire.Str(n, "message", ""); msg != "" {
				e.Message = msg
			}
		}
		if e.Message == "" {
			e.Message = "unspecified error"
		}
		return e
	}
	return nil
}
