package bookingmanager

import (
	"context"
	"time"
)

// API aggregates the per-resource endpoint clients behind one object.
type API struct {
	Properties   *PropertiesClient
	Bookings     *BookingsClient
	Calendar     *CalendarClient
	Availability *AvailabilityClient
}

func NewAPI(c *Client) *API {
	return &API{
		Properties:   &PropertiesClient{c: c},
		Bookings:     &BookingsClient{c: c},
		Calendar:     &CalendarClient{c: c},
		Availability: &AvailabilityClient{c: c},
	}
}

type PropertiesClient struct{ c *Client }

func (p *PropertiesClient) List(ctx context.Context, req PropertiesRequest) (*PropertiesResponse, error) {
	params, err := req.values()
	if err != nil {
		return nil, err
	}
	doc, err := p.c.call(ctx, "getProperties", params)
	if err != nil {
		return nil, err
	}
	return mapPropertiesResponse(doc)
}

func (p *PropertiesClient) Get(ctx context.Context, propertyID int) (*PropertyDetails, error) {
	params, err := PropertyRequest{PropertyID: propertyID}.values()
	if err != nil {
		return nil, err
	}
	doc, err := p.c.call(ctx, "getProperty", params)
	if err != nil {
		return nil, err
	}
	return mapPropertyResponse(doc)
}

type BookingsClient struct{ c *Client }

func (b *BookingsClient) List(ctx context.Context, req BookingsRequest) (*BookingsResponse, error) {
	params, err := req.values()
	if err != nil {
		return nil, err
	}
	doc, err := b.c.call(ctx, "getBookings", params)
	if err != nil {
		return nil, err
	}
	return mapBookingsResponse(doc)
}

// ListBetween is the positional-arguments convenience form of List; it builds
// the request struct and delegates, so behavior is identical either way.
func (b *BookingsClient) ListBetween(ctx context.Context, from, to time.Time) (*BookingsResponse, error) {
	return b.List(ctx, BookingsRequest{From: from, To: to})
}

func (b *BookingsClient) Get(ctx context.Context, bookingID int) (*BookingDetails, error) {
	params, err := BookingRequest{BookingID: bookingID}.values()
	if err != nil {
		return nil, err
	}
	doc, err := b.c.call(ctx, "getBooking", params)
	if err != nil {
		return nil, err
	}
	return mapBookingResponse(doc)
}

type CalendarClient struct{ c *Client }

func (cl *CalendarClient) Get(ctx context.Context, req CalendarRequest) (*CalendarResponse, error) {
	params, err := req.values()
	if err != nil {
		return nil, err
	}
	doc, err := cl.c.call(ctx, "getCalendar", params)
	if err != nil {
		return nil, err
	}
	return mapCalendarResponse(doc)
}

// GetForProperty builds the request struct from positional args and delegates.
func (cl *CalendarClient) GetForProperty(ctx context.Context, propertyID int, from, to time.Time) (*CalendarResponse, error) {
	return cl.Get(ctx, CalendarRequest{PropertyID: propertyID, From: from, To: to})
}

func (cl *CalendarClient) Changes(ctx context.Context, req CalendarChangesRequest) (*CalendarChangesResponse, error) {
	params, err := req.values()
	if err != nil {
		return nil, err
	}
	doc, err := cl.c.call(ctx, "getCalendarChanges", params)
	if err != nil {
		return nil, err
	}
	return mapCalendarChangesResponse(doc)
}

// ChangesSince is the positional convenience form of Changes.
func (cl *CalendarClient) ChangesSince(ctx context.Context, since time.Time) (*CalendarChangesResponse, error) {
	return cl.Changes(ctx, CalendarChangesRequest{Since: since})
}

type AvailabilityClient struct{ c *Client }

func (a *AvailabilityClient) Get(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	params, err := req.values()
	if err != nil {
		return nil, err
	}
	doc, err := a.c.call(ctx, "getAvailability", params)
	if err != nil {
		return nil, err
	}
	return mapAvailabilityResponse(doc)
}

func (a *AvailabilityClient) StayRates(ctx context.Context, propertyID int) (*StayRatesResponse, error) {
	params, err := StayRatesRequest{PropertyID: propertyID}.values()
	if err != nil {
		return nil, err
	}
	doc, err := a.c.call(ctx, "getStayRates", params)
	if err != nil {
		return nil, err
	}
	return mapStayRatesResponse(doc)
}
