package mews

import (
	"context"
	"fmt"
	"time"

	"pmsbridge/internal/wire"
)

type Customer struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	NationalityCode string
	Created         time.Time
}

type CustomersResponse struct {
	Customers []Customer
	Cursor    string
}

type AddCustomerRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	NationalityCode string
}

func (r AddCustomerRequest) body() (map[string]any, error) {
	if r.LastName == "" {
		return nil, fmt.Errorf("mews: customer last name is required")
	}
	b := map[string]any{"LastName": r.LastName}
	if r.FirstName != "" {
		b["FirstName"] = r.FirstName
	}
	if r.Email != "" {
		b["Email"] = r.Email
	}
	if r.Phone != "" {
		b["Phone"] = r.Phone
	}
	if r.NationalityCode != "" {
		b["NationalityCode"] = r.NationalityCode
	}
	return b, nil
}

// mapCustomer requires Id; the rest defaults.
func mapCustomer(v any) (Customer, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Customer{}, wire.MissingField("customer", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Customer{}, wire.MissingField("customer", "Id")
	}
	return Customer{
		ID:              id,
		FirstName:       wire.Str(n, "FirstName", ""),
		LastName:        wire.Str(n, "LastName", ""),
		Email:           wire.Str(n, "Email", ""),
		Phone:           wire.Str(n, "Phone", ""),
		NationalityCode: wire.Str(n, "NationalityCode", ""),
		Created:         wire.Time(n, "CreatedUtc", timeLayout, wire.Epoch),
	}, nil
}

// mapCustomersResponse expects the list under "Customers" plus an optional
// pagination cursor carried forward verbatim.
func mapCustomersResponse(doc map[string]any) (*CustomersResponse, error) {
	root, ok := doc["Customers"]
	if !ok {
		return nil, wire.MissingField("customers response", "Customers")
	}
	items := wire.Seq(root)
	resp := &CustomersResponse{
		Customers: make([]Customer, 0, len(items)),
		Cursor:    wire.Str(doc, "Cursor", ""),
	}
	for _, it := range items {
		cu, err := mapCustomer(it)
		if err != nil {
			return nil, wire.Mapping("customers response", err)
		}
		resp.Customers = append(resp.Customers, cu)
	}
	return resp, nil
}

type CustomersClient struct{ c *Client }

// Search returns customers matching an email. Matching is the vendor's; the
// mapper does not filter further.
func (cc *CustomersClient) Search(ctx context.Context, email string) (*CustomersResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("mews: search email is required")
	}
	doc, err := cc.c.post(ctx, "/api/connector/v1/customers/getAll", map[string]any{
		"Emails": []string{email},
	})
	if err != nil {
		return nil, err
	}
	return mapCustomersResponse(doc)
}

// Add creates a customer. The add endpoint returns the created entity
// unwrapped at the response root.
func (cc *CustomersClient) Add(ctx context.Context, req AddCustomerRequest) (*Customer, error) {
	body, err := req.body()
	if err != nil {
		return nil, err
	}
	doc, err := cc.c.post(ctx, "/api/connector/v1/customers/add", body)
	if err != nil {
		return nil, err
	}
	cu, err := mapCustomer(doc)
	if err != nil {
		return nil, err
	}
	return &cu, nil
}

// FindOrCreate looks the customer up by email and returns the existing id
// when found, otherwise creates one and returns the new id. The sequence is
// not atomic: two concurrent callers with the same email can both miss the
// search and create duplicate customers. Known limitation, inherited from the
// vendor API having no idempotency key.
func (cc *CustomersClient) FindOrCreate(ctx context.Context, req AddCustomerRequest) (string, error) {
	if req.Email != "" {
		found, err := cc.Search(ctx, req.Email)
		if err != nil {
			return "", err
		}
		if len(found.Customers) > 0 {
			return found.Customers[0].ID, nil
		}
	}
	created, err := cc.Add(ctx, req)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// All walks the cursor pagination until the vendor stops returning one,
// accumulating every page in order.
func (cc *CustomersClient) All(ctx context.Context) ([]Customer, error) {
	var out []Customer
	cursor := ""
	for {
		body := map[string]any{}
		if cursor != "" {
			body["Cursor"] = cursor
		}
		doc, err := cc.c.post(ctx, "/api/connector/v1/customers/getAll", body)
		if err != nil {
			return nil, err
		}
		page, err := mapCustomersResponse(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Customers...)
		if page.Cursor == "" {
			return out, nil
		}
		cursor = page.Cursor
	}
}
