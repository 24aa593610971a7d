package mews

// API aggregates the per-resource endpoint clients behind one object.
type API struct {
	Customers    *CustomersClient
	Reservations *ReservationsClient
	Services     *ServicesClient
	Resources    *ResourcesClient
	Rates        *RatesClient
	Restrictions *RestrictionsClient
}

func NewAPI(c *Client) *API {
	return &API{
		Customers:    &CustomersClient{c: c},
		Reservations: &ReservationsClient{c: c},
		Services:     &ServicesClient{c: c},
		Resources:    &ResourcesClient{c: c},
		Rates:        &RatesClient{c: c},
		Restrictions: &RestrictionsClient{c: c},
	}
}
