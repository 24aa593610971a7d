package mews

import (
	"context"
	"fmt"
	"time"

	"pmsbridge/internal/wire"
)

type ReservationState string

const (
	ReservationStateEnquired  ReservationState = "Enquired"
	ReservationStateOptional  ReservationState = "Optional"
	ReservationStateConfirmed ReservationState = "Confirmed"
	ReservationStateStarted   ReservationState = "Started"
	ReservationStateProcessed ReservationState = "Processed"
	ReservationStateCanceled  ReservationState = "Canceled"
	// ReservationStatePending is the fallback for states this client does
	// not know about yet.
	ReservationStatePending ReservationState = "Pending"
)

func reservationState(s string) ReservationState {
	switch ReservationState(s) {
	case ReservationStateEnquired, ReservationStateOptional, ReservationStateConfirmed,
		ReservationStateStarted, ReservationStateProcessed, ReservationStateCanceled:
		return ReservationState(s)
	}
	return ReservationStatePending
}

type PersonCounts struct {
	Adults   int
	Children int
}

type Reservation struct {
	ID                 string
	Number             string
	ServiceID          string
	CustomerID         string
	AssignedResourceID string
	RateID             string
	State              ReservationState
	StartUTC           time.Time
	EndUTC             time.Time
	PersonCounts       PersonCounts
	ChannelNumber      string
	Created            time.Time
}

type ReservationsResponse struct {
	Reservations []Reservation
	Cursor       string
}

type ReservationsRequest struct {
	StartUTC, EndUTC time.Time
	States           []ReservationState
	ServiceIDs       []string
	Cursor           string
}

func (r ReservationsRequest) body() (map[string]any, error) {
	if r.StartUTC.IsZero() || r.EndUTC.IsZero() {
		return nil, fmt.Errorf("mews: reservations interval is required")
	}
	if r.EndUTC.Before(r.StartUTC) {
		return nil, fmt.Errorf("mews: reservations interval end before start")
	}
	b := map[string]any{
		"StartUtc": r.StartUTC.UTC().Format(timeLayout),
		"EndUtc":   r.EndUTC.UTC().Format(timeLayout),
	}
	if len(r.States) > 0 {
		states := make([]string, len(r.States))
		for i, s := range r.States {
			states[i] = string(s)
		}
		b["States"] = states
	}
	if len(r.ServiceIDs) > 0 {
		b["ServiceIds"] = r.ServiceIDs
	}
	if r.Cursor != "" {
		b["Cursor"] = r.Cursor
	}
	return b, nil
}

// mapReservation requires Id and Number; Number is the human-facing key and
// its absence means a payload this client must not guess about.
func mapReservation(v any) (Reservation, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Reservation{}, wire.MissingField("reservation", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Reservation{}, wire.MissingField("reservation", "Id")
	}
	number := wire.Str(n, "Number", "")
	if number == "" {
		return Reservation{}, wire.MissingField("reservation", "Number")
	}
	return Reservation{
		ID:                 id,
		Number:             number,
		ServiceID:          wire.Str(n, "ServiceId", ""),
		CustomerID:         wire.Str(n, "CustomerId", ""),
		AssignedResourceID: wire.Str(n, "AssignedResourceId", ""),
		RateID:             wire.Str(n, "RateId", ""),
		State:              reservationState(wire.Str(n, "State", "")),
		StartUTC:           wire.Time(n, "StartUtc", timeLayout, wire.Epoch),
		EndUTC:             wire.Time(n, "EndUtc", timeLayout, wire.Epoch),
		PersonCounts:       mapPersonCounts(n["PersonCounts"]),
		ChannelNumber:      wire.Str(n, "ChannelNumber", ""),
		Created:            wire.Time(n, "CreatedUtc", timeLayout, wire.Epoch),
	}, nil
}

// mapPersonCounts defaults to zero counts when the block is missing; a
// reservation always has occupancy, so the parent must not fail.
func mapPersonCounts(v any) PersonCounts {
	n := wire.AsMap(v)
	if n == nil {
		return PersonCounts{}
	}
	return PersonCounts{
		Adults:   wire.Int(n, "AdultCount", 0),
		Children: wire.Int(n, "ChildCount", 0),
	}
}

func mapReservationsResponse(doc map[string]any) (*ReservationsResponse, error) {
	root, ok := doc["Reservations"]
	if !ok {
		return nil, wire.MissingField("reservations response", "Reservations")
	}
	items := wire.Seq(root)
	resp := &ReservationsResponse{
		Reservations: make([]Reservation, 0, len(items)),
		Cursor:       wire.Str(doc, "Cursor", ""),
	}
	for _, it := range items {
		rv, err := mapReservation(it)
		if err != nil {
			return nil, wire.Mapping("reservations response", err)
		}
		resp.Reservations = append(resp.Reservations, rv)
	}
	return resp, nil
}

type ReservationsClient struct{ c *Client }

func (rc *ReservationsClient) GetAll(ctx context.Context, req ReservationsRequest) (*ReservationsResponse, error) {
	body, err := req.body()
	if err != nil {
		return nil, err
	}
	doc, err := rc.c.post(ctx, "/api/connector/v1/reservations/getAll", body)
	if err != nil {
		return nil, err
	}
	return mapReservationsResponse(doc)
}

// All accumulates every page of the interval, passing each response's cursor
// into the next request until the vendor stops returning one.
func (rc *ReservationsClient) All(ctx context.Context, req ReservationsRequest) ([]Reservation, error) {
	var out []Reservation
	req.Cursor = ""
	for {
		page, err := rc.GetAll(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Reservations...)
		if page.Cursor == "" {
			return out, nil
		}
		req.Cursor = page.Cursor
	}
}
