package bookingmanager

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Request payload builders. Each validates its required identifiers before
// any HTTP call is made.

type PropertiesRequest struct {
	ProviderID int
	Status     PropertyStatus // optional filter
	Page       int
}

func (r PropertiesRequest) values() (url.Values, error) {
	v := url.Values{}
	if r.ProviderID > 0 {
		v.Set("providerId", strconv.Itoa(r.ProviderID))
	}
	if r.Status != "" {
		v.Set("status", string(r.Status))
	}
	if r.Page > 0 {
		v.Set("page", strconv.Itoa(r.Page))
	}
	return v, nil
}

type PropertyRequest struct {
	PropertyID int
}

func (r PropertyRequest) values() (url.Values, error) {
	if r.PropertyID <= 0 {
		return nil, fmt.Errorf("bookingmanager: property id is required")
	}
	v := url.Values{}
	v.Set("propertyId", strconv.Itoa(r.PropertyID))
	return v, nil
}

type BookingsRequest struct {
	PropertyID int // optional
	From, To   time.Time
	Status     BookingStatus // optional filter
}

func (r BookingsRequest) values() (url.Values, error) {
	if r.From.IsZero() || r.To.IsZero() {
		return nil, fmt.Errorf("bookingmanager: bookings period is required")
	}
	if r.To.Before(r.From) {
		return nil, fmt.Errorf("bookingmanager: bookings period end before start")
	}
	v := url.Values{}
	v.Set("from", r.From.Format(dateLayout))
	v.Set("to", r.To.Format(dateLayout))
	if r.PropertyID > 0 {
		v.Set("propertyId", strconv.Itoa(r.PropertyID))
	}
	if r.Status != "" {
		v.Set("status", string(r.Status))
	}
	return v, nil
}

type BookingRequest struct {
	BookingID int
}

func (r BookingRequest) values() (url.Values, error) {
	if r.BookingID <= 0 {
		return nil, fmt.Errorf("bookingmanager: booking id is required")
	}
	v := url.Values{}
	v.Set("bookingId", strconv.Itoa(r.BookingID))
	return v, nil
}

type CalendarRequest struct {
	PropertyID int
	From, To   time.Time
}

func (r CalendarRequest) values() (url.Values, error) {
	if r.PropertyID <= 0 {
		return nil, fmt.Errorf("bookingmanager: property id is required")
	}
	if r.From.IsZero() || r.To.IsZero() {
		return nil, fmt.Errorf("bookingmanager: calendar period is required")
	}
	v := url.Values{}
	v.Set("propertyId", strconv.Itoa(r.PropertyID))
	v.Set("from", r.From.Format(dateLayout))
	v.Set("to", r.To.Format(dateLayout))
	return v, nil
}

type CalendarChangesRequest struct {
	Since time.Time
}

func (r CalendarChangesRequest) values() (url.Values, error) {
	if r.Since.IsZero() {
		return nil, fmt.Errorf("bookingmanager: changes since timestamp is required")
	}
	v := url.Values{}
	v.Set("since", r.Since.Format(dateTimeLayout))
	return v, nil
}

type AvailabilityRequest struct {
	PropertyID int
	From, To   time.Time
}

func (r AvailabilityRequest) values() (url.Values, error) {
	if r.PropertyID <= 0 {
		return nil, fmt.Errorf("bookingmanager: property id is required")
	}
	if r.From.IsZero() || r.To.IsZero() {
		return nil, fmt.Errorf("bookingmanager: availability period is required")
	}
	if r.To.Before(r.From) {
		return nil, fmt.Errorf("bookingmanager: availability period end before start")
	}
	v := url.Values{}
	v.Set("propertyId", strconv.Itoa(r.PropertyID))
	v.Set("from", r.From.Format(dateLayout))
	v.Set("to", r.To.Format(dateLayout))
	return v, nil
}

type StayRatesRequest struct {
	PropertyID int
}

func (r StayRatesRequest) values() (url.Values, error) {
	if r.PropertyID <= 0 {
		return nil, fmt.Errorf("bookingmanager: property id is required")
	}
	v := url.Values{}
	v.Set("propertyId", strconv.Itoa(r.PropertyID))
	return v, nil
}
