package bookingmanager

import (
	"time"

	"pmsbridge/internal/wire"
)

type Season string

const (
	SeasonLow  Season = "low"
	SeasonMid  Season = "mid"
	SeasonHigh Season = "high"
	SeasonPeak Season = "peak"
)

// season falls back to low; the calendar endpoint predates the season field
// and old deployments omit it entirely.
func season(s string) Season {
	switch Season(s) {
	case SeasonLow, SeasonMid, SeasonHigh, SeasonPeak:
		return Season(s)
	}
	return SeasonLow
}

type CalendarTax struct {
	Total float64
	Final float64
}

type CalendarRate struct {
	Percentage float64
	Currency   string
	Total      float64
	Final      float64
	Tax        CalendarTax
	Fee        float64
	Prepayment float64
	BalanceDue float64
}

type CalendarDayInfo struct {
	Day         time.Time
	Season      Season
	Modified    time.Time
	Available   bool
	StayMinimum int
	Rate        CalendarRate
}

type CalendarResponse struct {
	PropertyID int
	Days       []CalendarDayInfo
}

// CalendarChange says "this property's calendar changed in these months".
type CalendarChange struct {
	PropertyID int
	Months     []string // "YYYY-MM"
}

type CalendarChangesResponse struct {
	Amount int
	// Time is the vendor's anchor timestamp for the change set. It is nil
	// when there are zero changes; there is nothing to anchor.
	Time    *time.Time
	Changes []CalendarChange
}

// mapCalendarDay requires a parseable date; the caller skips days without one.
func mapCalendarDay(v any) (CalendarDayInfo, bool) {
	n := wire.AsMap(v)
	if n == nil {
		return CalendarDayInfo{}, false
	}
	attrs := wire.Attrs(n)
	dayStr := wire.Str(attrs, "date", wire.Str(n, "date", wire.Str(n, "day", "")))
	day, err := time.Parse(dateLayout, dayStr)
	if err != nil {
		return CalendarDayInfo{}, false
	}
	return CalendarDayInfo{
		Day:         day,
		Season:      season(wire.Str(attrs, "season", wire.Str(n, "season", ""))),
		Modified:    wire.Time(n, "modified", dateTimeLayout, wire.Epoch),
		Available:   wire.Bool(attrs, "available", wire.Bool(n, "available", false)),
		StayMinimum: wire.Int(n, "stay_minimum", wire.Int(attrs, "stay_minimum", 0)),
		Rate:        mapCalendarRate(n["rate"]),
	}, true
}

func mapCalendarRate(v any) CalendarRate {
	n := wire.AsMap(v)
	if n == nil {
		return CalendarRate{}
	}
	attrs := wire.Attrs(n)
	return CalendarRate{
		Percentage: wire.Float(n, "percentage", 0),
		Currency:   wire.Str(attrs, "currency", wire.Str(n, "currency", "")),
		Total:      wire.Float(n, "total", 0),
		Final:      wire.Float(n, "final", 0),
		Tax:        mapCalendarTax(n["tax"]),
		Fee:        wire.Float(n, "fee", 0),
		Prepayment: wire.Float(n, "prepayment", 0),
		BalanceDue: wire.Float(n, "balance_due", 0),
	}
}

// mapCalendarTax mirrors mapBookingTax: total on attributes, final as a child.
func mapCalendarTax(v any) CalendarTax {
	n := wire.AsMap(v)
	if n == nil {
		return CalendarTax{}
	}
	attrs := wire.Attrs(n)
	return CalendarTax{
		Total: wire.Float(attrs, "total", wire.Float(n, "total", 0)),
		Final: wire.Float(n, "final", wire.Float(attrs, "final", 0)),
	}
}

// mapCalendarResponse expects a <calendar> root. Days that fail to map are
// skipped; one malformed day must not corrupt its siblings.
func mapCalendarResponse(doc map[string]any) (*CalendarResponse, error) {
	root, ok := doc["calendar"]
	if !ok {
		return nil, wire.MissingField("calendar response", "calendar root")
	}
	n := wire.AsMap(root)
	resp := &CalendarResponse{}
	var items []any
	if n != nil {
		resp.PropertyID = wire.Int(wire.Attrs(n), "property_id", 0)
		items = wire.Seq(n["day"])
	}
	resp.Days = make([]CalendarDayInfo, 0, len(items))
	for _, it := range items {
		if d, ok := mapCalendarDay(it); ok {
			resp.Days = append(resp.Days, d)
		}
	}
	return resp, nil
}

// mapCalendarChangesResponse expects a <changes> root whose attributes carry
// the change count and anchor time. Zero changes is a legitimate response:
// amount 0, empty slice, nil time.
func mapCalendarChangesResponse(doc map[string]any) (*CalendarChangesResponse, error) {
	root, ok := doc["changes"]
	if !ok {
		return nil, wire.MissingField("calendar changes response", "changes root")
	}

	resp := &CalendarChangesResponse{Changes: []CalendarChange{}}
	n := wire.AsMap(root)
	if n == nil {
		// `<changes/>` collapses to a scalar; an empty change set
		return resp, nil
	}
	attrs := wire.Attrs(n)

	for _, it := range wire.Seq(n["change"]) {
		m := wire.AsMap(it)
		if m == nil {
			continue
		}
		ch := CalendarChange{
			PropertyID: wire.Int(wire.Attrs(m), "property_id", wire.Int(m, "property_id", 0)),
		}
		if ch.PropertyID <= 0 {
			continue
		}
		var months []any
		if mm := wire.AsMap(m["months"]); mm != nil {
			months = wire.Seq(mm["month"])
		} else {
			months = wire.Seq(m["month"])
		}
		for _, mv := range months {
			s := wire.Text(mv)
			if _, err := time.Parse(monthLayout, s); err == nil {
				ch.Months = append(ch.Months, s)
			}
		}
		resp.Changes = append(resp.Changes, ch)
	}

	resp.Amount = wire.Int(attrs, "amount", len(resp.Changes))
	if len(resp.Changes) > 0 {
		resp.Time = wire.OptTime(attrs, "time", dateTimeLayout)
	}
	return resp, nil
}
