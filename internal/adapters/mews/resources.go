package mews

import (
	"context"
	"time"

	"pmsbridge/internal/wire"
)

type Resource struct {
	ID               string
	Name             string
	ParentResourceID string
	State            string
	Created          time.Time
}

type ResourceCategory struct {
	ID        string
	ServiceID string
	Names     map[string]string
	Name      string // display name picked from Names
	Type      string
	Capacity  int
}

// ResourceCategoryAssignment links a resource into a category.
type ResourceCategoryAssignment struct {
	ID         string
	CategoryID string
	ResourceID string
}

type ResourcesResponse struct {
	Resources   []Resource
	Categories  []ResourceCategory
	Assignments []ResourceCategoryAssignment
	Cursor      string
}

func mapResource(v any) (Resource, error) {
	n := wire.AsMap(v)
	if n == nil {
		return Resource{}, wire.MissingField("resource", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return Resource{}, wire.MissingField("resource", "Id")
	}
	return Resource{
		ID:               id,
		Name:             wire.Str(n, "Name", ""),
		ParentResourceID: wire.Str(n, "ParentResourceId", ""),
		State:            wire.Str(n, "State", ""),
		Created:          wire.Time(n, "CreatedUtc", timeLayout, wire.Epoch),
	}, nil
}

func mapResourceCategory(v any) (ResourceCategory, error) {
	n := wire.AsMap(v)
	if n == nil {
		return ResourceCategory{}, wire.MissingField("resource category", "body")
	}
	id := wire.Str(n, "Id", "")
	if id == "" {
		return ResourceCategory{}, wire.MissingField("resource category", "Id")
	}
	rc := ResourceCategory{
		ID:        id,
		ServiceID: wire.Str(n, "ServiceId", ""),
		Names:     mapLocalized(n["Names"]),
		Type:      wire.Str(n, "Type", ""),
		Capacity:  wire.Int(n, "Capacity", 0),
	}
	rc.Name = displayName(rc.Names)
	return rc, nil
}

// mapLocalized flattens a {"en-US": "Name", ...} object.
func mapLocalized(v any) map[string]string {
	n := wire.AsMap(v)
	if len(n) == 0 {
		return nil
	}
	out := make(map[string]string, len(n))
	for k, lv := range n {
		if s := wire.Text(lv); s != "" {
			out[k] = s
		}
	}
	return out
}

// displayName prefers en-US, falls back to any value.
func displayName(names map[string]string) string {
	if s, ok := names["en-US"]; ok {
		return s
	}
	for _, s := range names {
		return s
	}
	return ""
}

func mapAssignment(v any) (ResourceCategoryAssignment, bool) {
	n := wire.AsMap(v)
	if n == nil {
		return ResourceCategoryAssignment{}, false
	}
	a := ResourceCategoryAssignment{
		ID:         wire.Str(n, "Id", ""),
		CategoryID: wire.Str(n, "CategoryId", ""),
		ResourceID: wire.Str(n, "ResourceId", ""),
	}
	if a.CategoryID == "" || a.ResourceID == "" {
		return ResourceCategoryAssignment{}, false
	}
	return a, true
}

// mapResourcesResponse maps the combined resources payload. Resources are the
// mandatory list; categories and assignments are extensions and individually
// skippable when malformed.
func mapResourcesResponse(doc map[string]any) (*ResourcesResponse, error) {
	root, ok := doc["Resources"]
	if !ok {
		return nil, wire.MissingField("resources response", "Resources")
	}
	items := wire.Seq(root)
	resp := &ResourcesResponse{
		Resources: make([]Resource, 0, len(items)),
		Cursor:    wire.Str(doc, "Cursor", ""),
	}
	for _, it := range items {
		r, err := mapResource(it)
		if err != nil {
			return nil, wire.Mapping("resources response", err)
		}
		resp.Resources = append(resp.Resources, r)
	}
	for _, it := range wire.Seq(doc["ResourceCategories"]) {
		if rc, err := mapResourceCategory(it); err == nil {
			resp.Categories = append(resp.Categories, rc)
		}
	}
	for _, it := range wire.Seq(doc["ResourceCategoryAssignments"]) {
		if a, ok := mapAssignment(it); ok {
			resp.Assignments = append(resp.Assignments, a)
		}
	}
	return resp, nil
}

type ResourcesClient struct{ c *Client }

func (rc *ResourcesClient) GetAll(ctx context.Context) (*ResourcesResponse, error) {
	doc, err := rc.c.post(ctx, "/api/connector/v1/resources/getAll", map[string]any{
		"Extent": map[string]any{
			"Resources":                   true,
			"ResourceCategories":          true,
			"ResourceCategoryAssignments": true,
		},
	})
	if err != nil {
		return nil, err
	}
	return mapResourcesResponse(doc)
}
