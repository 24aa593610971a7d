package bookingmanager

import (
	"time"

	"pmsbridge/internal/wire"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	// BookingStatusError is the fallback for unrecognized status strings.
	BookingStatusError BookingStatus = "error"
)

func bookingStatus(s string) BookingStatus {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return BookingStatus(s)
	}
	return BookingStatusError
}

type BookingTax struct {
	Total float64
	Final float64
}

type BookingRate struct {
	Total      float64
	Final      float64
	Tax        BookingTax
	Prepayment float64
	BalanceDue float64
	Fee        float64
}

// PropertyRef is the booking's reference to its property. The vendor sends it
// as `<property id="1">Name</property>` or as a plain id, so both shapes map.
type PropertyRef struct {
	ID         int
	Name       string
	Identifier string
}

type BookingDetails struct {
	ID                int
	Identifier        string
	ProviderID        int
	ChannelIdentifier string

	Arrival   time.Time
	Departure time.Time

	GuestName    string
	GuestEmail   string
	GuestPhone   string
	GuestCountry string
	Adults       int
	Children     int

	Property PropertyRef
	Status   BookingStatus
	Rate     BookingRate

	Created  time.Time
	Modified time.Time
}

type BookingsResponse struct {
	Bookings []BookingDetails
}

// mapBooking requires the booking id; everything else defaults.
func mapBooking(v any) (BookingDetails, error) {
	n := wire.AsMap(v)
	if n == nil {
		return BookingDetails{}, wire.MissingField("booking", "body")
	}
	attrs := wire.Attrs(n)

	id := wire.Int(attrs, "id", wire.Int(n, "id", 0))
	if id <= 0 {
		return BookingDetails{}, wire.MissingField("booking", "id")
	}

	b := BookingDetails{
		ID:                id,
		Identifier:        wire.Str(n, "identifier", wire.Str(attrs, "identifier", "")),
		ProviderID:        wire.Int(n, "provider_id", 0),
		ChannelIdentifier: wire.Str(n, "channel_identifier", ""),

		Arrival:   wire.Time(n, "arrival", dateLayout, wire.Epoch),
		Departure: wire.Time(n, "departure", dateLayout, wire.Epoch),

		GuestName:    wire.Str(n, "guest_name", ""),
		GuestEmail:   wire.Str(n, "guest_email", ""),
		GuestPhone:   wire.Str(n, "guest_phone", ""),
		GuestCountry: wire.Str(n, "guest_country", ""),
		Adults:       wire.Int(n, "adults", 0),
		Children:     wire.Int(n, "children", 0),

		Property: mapPropertyRef(n["property"]),
		Status:   bookingStatus(wire.Str(attrs, "status", wire.Str(n, "status", ""))),
		Rate:     mapBookingRate(n["rate"]),

		Created:  wire.Time(n, "created", dateTimeLayout, wire.Epoch),
		Modified: wire.Time(n, "modified", dateTimeLayout, wire.Epoch),
	}
	return b, nil
}

func mapPropertyRef(v any) PropertyRef {
	switch t := v.(type) {
	case nil:
		return PropertyRef{}
	case map[string]any:
		attrs := wire.Attrs(t)
		ref := PropertyRef{
			ID:         wire.Int(attrs, "id", wire.Int(t, "id", 0)),
			Name:       wire.Text(v),
			Identifier: wire.Str(attrs, "identifier", wire.Str(t, "identifier", "")),
		}
		if ref.Name == "" {
			ref.Name = wire.Str(t, "name", "")
		}
		return ref
	default:
		// bare scalar: `<property>123</property>`
		return PropertyRef{ID: wire.Int(map[string]any{"id": t}, "id", 0)}
	}
}

// mapBookingRate is total-by-default: a booking always has a rate, so a
// missing node yields a zero-valued one rather than failing the booking.
func mapBookingRate(v any) BookingRate {
	n := wire.AsMap(v)
	if n == nil {
		return BookingRate{}
	}
	return BookingRate{
		Total:      wire.Float(n, "total", 0),
		Final:      wire.Float(n, "final", 0),
		Tax:        mapBookingTax(n["tax"]),
		Prepayment: wire.Float(n, "prepayment", 0),
		BalanceDue: wire.Float(n, "balance_due", 0),
		Fee:        wire.Float(n, "fee", 0),
	}
}

// mapBookingTax handles the vendor's mixed placement: the tax total sits on
// the element's attributes while the final amount is a child element.
func mapBookingTax(v any) BookingTax {
	n := wire.AsMap(v)
	if n == nil {
		return BookingTax{}
	}
	attrs := wire.Attrs(n)
	return BookingTax{
		Total: wire.Float(attrs, "total", wire.Float(n, "total", 0)),
		Final: wire.Float(n, "final", wire.Float(attrs, "final", 0)),
	}
}

func mapBookingsResponse(doc map[string]any) (*BookingsResponse, error) {
	root, ok := doc["bookings"]
	if !ok {
		return nil, wire.MissingField("bookings response", "bookings root")
	}
	n := wire.AsMap(root)
	var items []any
	if n != nil {
		items = wire.Seq(n["booking"])
	}
	resp := &BookingsResponse{Bookings: make([]BookingDetails, 0, len(items))}
	for _, it := range items {
		b, err := mapBooking(it)
		if err != nil {
			return nil, wire.Mapping("bookings response", err)
		}
		resp.Bookings = append(resp.Bookings, b)
	}
	return resp, nil
}

func mapBookingResponse(doc map[string]any) (*BookingDetails, error) {
	root, ok := doc["booking"]
	if !ok {
		return nil, wire.MissingField("booking response", "booking root")
	}
	b, err := mapBooking(root)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
