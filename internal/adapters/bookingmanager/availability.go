package bookingmanager

import (
	"time"

	"pmsbridge/internal/wire"
)

type AvailabilityDay struct {
	Day       time.Time
	Available bool
}

type AvailabilityResponse struct {
	PropertyID int
	Days       []AvailabilityDay
}

// StayRate is a seasonal rate row: amount per night for stays inside the
// period, bounded by min/max stay.
type StayRate struct {
	From     time.Time
	To       time.Time
	MinStay  int
	MaxStay  int
	Amount   float64
	Currency string
}

type StayRatesResponse struct {
	PropertyID int
	Rates      []StayRate
}

// mapAvailabilityResponse expands the vendor's unavailable ranges into one
// flag per day of the queried period. The root echoes the query period in its
// attributes; without it there is nothing to expand over.
func mapAvailabilityResponse(doc map[string]any) (*AvailabilityResponse, error) {
	root, ok := doc["availability"]
	if !ok {
		return nil, wire.MissingField("availability response", "availability root")
	}
	n := wire.AsMap(root)
	if n == nil {
		return nil, wire.MissingField("availability response", "period")
	}
	attrs := wire.Attrs(n)

	from, errFrom := time.Parse(dateLayout, wire.Str(attrs, "from", ""))
	to, errTo := time.Parse(dateLayout, wire.Str(attrs, "to", ""))
	if errFrom != nil || errTo != nil || to.Before(from) {
		return nil, wire.MissingField("availability response", "period")
	}

	type span struct{ from, to time.Time }
	var unavailable []span
	for _, it := range wire.Seq(n["unavailable"]) {
		m := wire.AsMap(it)
		if m == nil {
			continue
		}
		a := wire.Attrs(m)
		f, err1 := time.Parse(dateLayout, wire.Str(a, "from", wire.Str(m, "from", "")))
		t, err2 := time.Parse(dateLayout, wire.Str(a, "to", wire.Str(m, "to", "")))
		if err1 != nil || err2 != nil {
			continue // one bad range must not corrupt the rest
		}
		unavailable = append(unavailable, span{f, t})
	}

	resp := &AvailabilityResponse{
		PropertyID: wire.Int(attrs, "property_id", 0),
	}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		avail := true
		for _, s := range unavailable {
			if !day.Before(s.from) && !day.After(s.to) {
				avail = false
				break
			}
		}
		resp.Days = append(resp.Days, AvailabilityDay{Day: day, Available: avail})
	}
	return resp, nil
}

// mapStayRate parses one <rate> row from its actual node.
func mapStayRate(v any) (StayRate, bool) {
	n := wire.AsMap(v)
	if n == nil {
		return StayRate{}, false
	}
	attrs := wire.Attrs(n)
	from, err1 := time.Parse(dateLayout, wire.Str(attrs, "from", wire.Str(n, "from", "")))
	to, err2 := time.Parse(dateLayout, wire.Str(attrs, "to", wire.Str(n, "to", "")))
	if err1 != nil || err2 != nil {
		return StayRate{}, false
	}
	return StayRate{
		From:     from,
		To:       to,
		MinStay:  wire.Int(n, "min_stay", 1),
		MaxStay:  wire.Int(n, "max_stay", 0),
		Amount:   wire.Float(n, "amount", 0),
		Currency: wire.Str(n, "currency", wire.Str(attrs, "currency", "")),
	}, true
}

func mapStayRatesResponse(doc map[string]any) (*StayRatesResponse, error) {
	root, ok := doc["rates"]
	if !ok {
		return nil, wire.MissingField("stay rates response", "rates root")
	}
	n := wire.AsMap(root)
	resp := &StayRatesResponse{}
	var items []any
	if n != nil {
		resp.PropertyID = wire.Int(wire.Attrs(n), "property_id", 0)
		items = wire.Seq(n["rate"])
	}
	resp.Rates = make([]StayRate, 0, len(items))
	for _, it := range items {
		if r, ok := mapStayRate(it); ok {
			resp.Rates = append(resp.Rates, r)
		}
	}
	return resp, nil
}
