package mews

import (
	"context"
	"time"

	"pmsbridge/internal/wire"
)

type Service struct {
	ID       string
	Name     string
	IsActive bool
	Type     string
	Created  time.Time
}

type ServicesResponse struct {
	Services []Service
}

func mapService(v any) (Service, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Service{}, wire.MissingField("service", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Service{}, wire.MissingField("service", "Id")
	}
	return Service{
		ID:       id,
		Name:     wire.Str(n, "Name", ""),
		IsActive: wire.Bool(n, "IsActive", false),
		Type:     wire.Str(n, "Type", ""),
		Created:  wire.Time(n, "CreatedUtc", timeLayout, wire.Epoch),
	}, nil
}

func mapServicesResponse(doc map[string]any) (*ServicesResponse, error) {
	root, ok := doc["Services"]
	if !ok {
		return nil, wire.MissingField("services response", "Services")
	}
	items := wire.Seq(root)
	resp := &ServicesResponse{Services: make([]Service, 0, len(items))}
	for _, it := range items {
		s, err := mapService(it)
		if err != nil {
			return nil, wire.Mapping("services response", err)
		}
		resp.Services = append(resp.Services, s)
	}
	return resp, nil
}

type ServicesClient struct{ c *Client }

func (sc *ServicesClient) GetAll(ctx context.Context) (*ServicesResponse, error) {
	doc, err := sc.c.post(ctx, "/api/connector/v1/services/getAll", map[string]any{})
	if err != nil {
		return nil, err
	}
	return mapServicesResponse(doc)
}
