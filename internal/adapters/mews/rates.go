package mews

import (
	"context"
	"fmt"
	"time"

	"pmsbridge/internal/wire"
)

type Rate struct {
	ID         string
	ServiceID  string
	GroupID    string
	BaseRateID string
	Name       string
	ShortName  string
	IsActive   bool
	IsPublic   bool
}

type RatesResponse struct {
	Rates []Rate
}

type AgeCategory struct {
	ID         string
	ServiceID  string
	MinimalAge int
	MaximalAge int
	Names      map[string]string
}

type TaxValue struct {
	Code  string
	Value float64
}

// AmountPrice is the vendor's net/gross/tax price breakdown.
type AmountPrice struct {
	Currency   string
	NetValue   float64
	GrossValue float64
	TaxValues  []TaxValue
}

// RatePricing carries the per-day base amounts of one rate over an interval.
type RatePricing struct {
	RateID     string
	Currency   string
	Dates      []time.Time
	BasePrices []float64
	// BaseAmounts mirrors BasePrices with the full breakdown when the
	// vendor sends one.
	BaseAmounts []AmountPrice
}

func mapRate(v any) (Rate, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Rate{}, wire.MissingField("rate", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Rate{}, wire.MissingField("rate", "Id")
	}
	return Rate{
		ID:         id,
		ServiceID:  wire.Str(n, "ServiceId", ""),
		GroupID:    wire.Str(n, "GroupId", ""),
		BaseRateID: wire.Str(n, "BaseRateId", ""),
		Name:       wire.Str(n, "Name", ""),
		ShortName:  wire.Str(n, "ShortName", ""),
		IsActive:   wire.Bool(n, "IsActive", false),
		IsPublic:   wire.Bool(n, "IsPublic", false),
	}, nil
}

func mapRatesResponse(doc map[string]any) (*RatesResponse, error) {
	root, ok := doc["Rates"]
	if !ok {
		return nil, wire.MissingField("rates response", "Rates")
	}
	items := wire.Seq(root)
	resp := &RatesResponse{Rates: make([]Rate, 0, len(items))}
	for _, it := range items {
		r, err := mapRate(it)
		if err != nil {
			return nil, wire.Mapping("rates response", err)
		}
		resp.Rates = append(resp.Rates, r)
	}
	return resp, nil
}

func mapAgeCategory(v any) (AgeCategory, error) {
	n := wire.AsMap(v)
	if n == nil {
		return AgeCategory{}, wire.MissingField("age category", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return AgeCategory{}, wire.MissingField("age category", "Id")
	}
	return AgeCategory{
		ID:         id,
		ServiceID:  wire.Str(n, "ServiceId", ""),
		MinimalAge: wire.Int(n, "MinimalAge", 0),
		MaximalAge: wire.Int(n, "MaximalAge", 0),
		Names:      mapLocalized(n["Names"]),
	}, nil
}

func mapAmountPrice(v any) AmountPrice {
	n := wire.AsMap(v)
	if n == nil {
		return AmountPrice{}
	}
	p := AmountPrice{
		Currency:   wire.Str(n, "Currency", ""),
		NetValue:   wire.Float(n, "NetValue", 0),
		GrossValue: wire.Float(n, "GrossValue", 0),
	}
	for _, tv := range wire.Seq(n["TaxValues"]) {
		m := wire.AsMap(tv)
		if m == nil {
			continue
		}
		p.TaxValues = append(p.TaxValues, TaxValue{
			Code:  wire.Str(m, "Code", ""),
			Value: wire.Float(m, "Value", 0),
		})
	}
	return p
}

// mapRatePricing keeps dates and prices index-aligned; a date that fails to
// parse drops its price with it.
func mapRatePricing(rateID string, doc map[string]any) (*RatePricing, error) {
	dates, ok := doc["TimeUnitStartsUtc"]
	if !ok {
		dates = doc["DatesUtc"]
		if dates == nil {
			return nil, wire.MissingField("rate pricing", "TimeUnitStartsUtc")
		}
	}
	prices := wire.Seq(doc["BasePrices"])
	amounts := wire.Seq(doc["BaseAmountPrices"])

	p := &RatePricing{
		RateID:   rateID,
		Currency: wire.Str(doc, "Currency", ""),
	}
	for i, dv := range wire.Seq(dates) {
		ts, err := time.Parse(timeLayout, wire.Text(dv))
		if err != nil {
			continue
		}
		p.Dates = append(p.Dates, ts)
		if i < len(prices) {
			p.BasePrices = append(p.BasePrices, wire.FloatVal(prices[i], 0))
		} else {
			p.BasePrices = append(p.BasePrices, 0)
		}
		if i < len(amounts) {
			p.BaseAmounts = append(p.BaseAmounts, mapAmountPrice(amounts[i]))
		}
	}
	return p, nil
}

type PricingRequest struct {
	RateID           string
	StartUTC, EndUTC time.Time
}

func (r PricingRequest) body() (map[string]any, error) {
	if r.RateID == "" {
		return nil, fmt.Errorf("mews: pricing rate id is required")
	}
	if r.StartUTC.IsZero() || r.EndUTC.IsZero() {
		return nil, fmt.Errorf("mews: pricing interval is required")
	}
	return map[string]any{
		"RateId":   r.RateID,
		"StartUtc": r.StartUTC.UTC().Format(timeLayout),
		"EndUtc":   r.EndUTC.UTC().Format(timeLayout),
	}, nil
}

type RatesClient struct{ c *Client }

func (rc *RatesClient) GetAll(ctx context.Context, serviceIDs ...string) (*RatesResponse, error) {
	body := map[string]any{}
	if len(serviceIDs) > 0 {
		body["ServiceIds"] = serviceIDs
	}
	doc, err := rc.c.post(ctx, "/api/connector/v1/rates/getAll", body)
	if err != nil {
		return nil, err
	}
	return mapRatesResponse(doc)
}

func (rc *RatesClient) GetPricing(ctx context.Context, req PricingRequest) (*RatePricing, error) {
	body, err := req.body()
	if err != nil {
		return nil, err
	}
	doc, err := rc.c.post(ctx, "/api/connector/v1/rates/getPricing", body)
	if err != nil {
		return nil, err
	}
	return mapRatePricing(req.RateID, doc)
}

func (rc *RatesClient) AgeCategories(ctx context.Context, serviceIDs ...string) ([]AgeCategory, error) {
	body := map[string]any{}
	if len(serviceIDs) > 0 {
		body["ServiceIds"] = serviceIDs
	}
	doc, err := rc.c.post(ctx, "/api/connector/v1/ageCategories/getAll", body)
	if err != nil {
		return nil, err
	}
	root, ok := doc["AgeCategories"]
	if !ok {
		return nil, wire.MissingField("age categories response", "AgeCategories")
	}
	items := wire.Seq(root)
	out := make([]AgeCategory, 0, len(items))
	for _, it := range items {
		ac, err := mapAgeCategory(it)
		if err != nil {
			return nil, wire.Mapping("age categories response", err)
		}
		out = append(out, ac)
	}
	return out, nil
}
