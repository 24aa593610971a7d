package mews

import (
	"context"
	"time"

	"pmsbridge/internal/wire"
)

// RestrictionConditions say where and when a restriction applies.
type RestrictionConditions struct {
	Type               string
	ExactRateID        string
	BaseRateID         string
	ResourceCategoryID string
	StartUTC           time.Time
	EndUTC             time.Time
	Days               []string
}

// RestrictionExceptions carve out limits inside an applied restriction.
type RestrictionExceptions struct {
	MinAdvance string
	MaxAdvance string
	MinLength  string
	MaxLength  string
	MinPrice   float64
	MaxPrice   float64
}

type Restriction struct {
	ID         string
	Conditions RestrictionConditions
	Exceptions RestrictionExceptions
}

type RestrictionsResponse struct {
	Restrictions []Restriction
	Cursor       string
}

func mapRestriction(v any) (Restriction, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Restriction{}, wire.MissingField("restriction", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Restriction{}, wire.MissingField("restriction", "Id")
	}
	return Restriction{
		ID:         id,
		Conditions: mapConditions(n["Conditions"]),
		Exceptions: mapExceptions(n["Exceptions"]),
	}, nil
}

// Conditions are contractually present; a missing block maps to zero values.
func mapConditions(v any) RestrictionConditions {
	n := wire.AsMap(v)
	if n == nil {
		return RestrictionConditions{}
	}
	c := RestrictionConditions{
		Type:               wire.Str(n, "Type", ""),
		ExactRateID:        wire.Str(n, "ExactRateId", ""),
		BaseRateID:         wire.Str(n, "BaseRateId", ""),
		ResourceCategoryID: wire.Str(n, "ResourceCategoryId", ""),
		StartUTC:           wire.Time(n, "StartUtc", timeLayout, wire.Epoch),
		EndUTC:             wire.Time(n, "EndUtc", timeLayout, wire.Epoch),
	}
	for _, d := range wire.Seq(n["Days"]) {
		if s := wire.Text(d); s != "" {
			c.Days = append(c.Days, s)
		}
	}
	return c
}

func mapExceptions(v any) RestrictionExceptions {
	n := wire.AsMap(v)
	if n == nil {
		return RestrictionExceptions{}
	}
	return RestrictionExceptions{
		MinAdvance: wire.Str(n, "MinAdvance", ""),
		MaxAdvance: wire.Str(n, "MaxAdvance", ""),
		MinLength:  wire.Str(n, "MinLength", ""),
		MaxLength:  wire.Str(n, "MaxLength", ""),
		MinPrice:   wire.Float(n, "MinPrice", 0),
		MaxPrice:   wire.Float(n, "MaxPrice", 0),
	}
}

func mapRestrictionsResponse(doc map[string]any) (*RestrictionsResponse, error) {
	root, ok := doc["Restrictions"]
	if !ok {
		return nil, wire.MissingField("restrictions response", "Restrictions")
	}
	items := wire.Seq(root)
	resp := &RestrictionsResponse{
		Restrictions: make([]Restriction, 0, len(items)),
		Cursor:       wire.Str(doc, "Cursor", ""),
	}
	for _, it := range items {
		r, err := mapRestriction(it)
		if err != nil {
			return nil, wire.Mapping("restrictions response", err)
		}
		resp.Restrictions = append(resp.Restrictions, r)
	}
	return resp, nil
}

type RestrictionsClient struct{ c *Client }

func (rc *RestrictionsClient) GetAll(ctx context.Context, serviceIDs ...string) (*RestrictionsResponse, error) {
	body := map[string]any{}
	if len(serviceIDs) > 0 {
		body["ServiceIds"] = serviceIDs
	}
	doc, err := rc.c.post(ctx, "/api/connector/v1/restrictions/getAll", body)
	if err != nil {
		return nil, err
	}
	return mapRestrictionsResponse(doc)
}

// All walks the cursor pagination, accumulating every page.
func (rc *RestrictionsClient) All(ctx context.Context, serviceIDs ...string) ([]Restriction, error) {
	var out []Restriction
	cursor := ""
	for {
		body := map[string]any{}
		if len(serviceIDs) > 0 {
			body["ServiceIds"] = serviceIDs
		}
		if cursor != "" {
			body["Cursor"] = cursor
		}
		doc, err := rc.c.post(ctx, "/api/connector/v1/restrictions/getAll", body)
		if err != nil {
			return nil, err
		}
		page, err := mapRestrictionsResponse(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Restrictions...)
		if page.Cursor == "" {
			return out, nil
		}
		cursor = page.Cursor
	}
}
