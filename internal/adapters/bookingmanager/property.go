package bookingmanager

import (
	"time"

	"pmsbridge/internal/wire"
)

type PropertyStatus string

const (
	PropertyStatusLive     PropertyStatus = "live"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusArchived PropertyStatus = "archived"
	// PropertyStatusError is the fallback for status strings the vendor
	// has never documented.
	PropertyStatusError PropertyStatus = "error"
)

func propertyStatus(s string) PropertyStatus {
	switch PropertyStatus(s) {
	case PropertyStatusLive, PropertyStatusInactive, PropertyStatusArchived:
		return PropertyStatus(s)
	}
	return PropertyStatusError
}

type Provider struct {
	ID         int
	Name       string
	Identifier string
}

type Location struct {
	Country string
	Region  string
	City    string
	Address string
	Zip     string
	Lat     float64
	Lng     float64
}

// Supplies are the vendor's boolean "what is provided" bundle. Flags arrive
// as numbers and anything non-zero counts as set.
type Supplies struct {
	Linen     bool
	Towels    bool
	Cleaning  bool
	Utilities bool
}

type ServiceInfo struct {
	CheckInFrom   string
	CheckInUntil  string
	CheckOutUntil string
	ContactPhone  string
	KeyPickup     bool
}

type Tax struct {
	Total float64
	Vat   float64
	City  float64
	Other float64
}

type Content struct {
	Headline    string
	Description string
	HouseRules  string
}

type PropertyImage struct {
	URL     string
	Caption string
	Order   int
}

type PropertyDetails struct {
	ExternalID int
	Name       string
	Identifier string
	Status     PropertyStatus

	Provider Provider
	Location Location
	Supplies Supplies
	Service  ServiceInfo
	Tax      Tax
	Content  Content
	Images   []PropertyImage

	Bedrooms     int
	Bathrooms    int
	Toilets      int
	MaxOccupancy int

	Pool           bool
	PetsAllowed    bool
	SmokingAllowed bool

	Created time.Time
	Updated time.Time
}

type PropertiesResponse struct {
	Properties []PropertyDetails
}

// mapProperty builds a PropertyDetails from one <property> node. The id is
// the only mandatory field; nested blocks default to zero values when the
// vendor omits them.
func mapProperty(v any) (PropertyDetails, error) {
	n := wire.AsMap(v)
	if n == nil {
		return PropertyDetails{}, wire.MissingField("property", "body")
	}
	attrs := wire.Attrs(n)

	id := wire.Int(attrs, "id", wire.Int(n, "id", 0))
	if id <= 0 {
		return PropertyDetails{}, wire.MissingField("property", "id")
	}

	p := PropertyDetails{
		ExternalID: id,
		Name:       wire.Str(n, "name", wire.Str(attrs, "name", "")),
		Identifier: wire.Str(n, "identifier", ""),
		Status:     propertyStatus(wire.Str(attrs, "status", wire.Str(n, "status", ""))),

		Provider: mapProvider(n["provider"]),
		Location: mapLocation(n["location"]),
		Supplies: mapSupplies(n["supplies"]),
		Service:  mapServiceInfo(n["service"]),
		Tax:      mapTax(n["tax"]),
		Content:  mapContent(n["content"]),
		Images:   mapImages(n["images"]),

		Bedrooms:     wire.Int(n, "bedrooms", 0),
		Bathrooms:    wire.Int(n, "bathrooms", 0),
		Toilets:      wire.Int(n, "toilets", 0),
		MaxOccupancy: wire.Int(n, "max_occupancy", 0),

		Pool:           wire.Bool(n, "pool", false),
		PetsAllowed:    wire.Bool(n, "pets_allowed", false),
		SmokingAllowed: wire.Bool(n, "smoking_allowed", false),

		Created: wire.Time(n, "created", dateTimeLayout, wire.Epoch),
		Updated: wire.Time(n, "updated", dateTimeLayout, wire.Epoch),
	}
	return p, nil
}

// mapProvider never fails: the provider block is contractually mandatory, so
// a missing node yields a zero-valued Provider instead of dropping the parent.
func mapProvider(v any) Provider {
	n := wire.AsMap(v)
	if n == nil {
		return Provider{}
	}
	attrs := wire.Attrs(n)
	return Provider{
		ID:         wire.Int(attrs, "id", wire.Int(n, "id", 0)),
		Name:       wire.Str(n, "name", wire.Text(v)),
		Identifier: wire.Str(n, "identifier", ""),
	}
}

func mapLocation(v any) Location {
	n := wire.AsMap(v)
	if n == nil {
		return Location{}
	}
	return Location{
		Country: wire.Str(n, "country", ""),
		Region:  wire.Str(n, "region", ""),
		City:    wire.Str(n, "city", ""),
		Address: wire.Str(n, "address", ""),
		Zip:     wire.Str(n, "zip", ""),
		Lat:     wire.Float(n, "lat", 0),
		Lng:     wire.Float(n, "lng", 0),
	}
}

func mapSupplies(v any) Supplies {
	n := wire.AsMap(v)
	if n == nil {
		return Supplies{}
	}
	return Supplies{
		Linen:     wire.Bool(n, "linen", false),
		Towels:    wire.Bool(n, "towels", false),
		Cleaning:  wire.Bool(n, "cleaning", false),
		Utilities: wire.Bool(n, "utilities", false),
	}
}

func mapServiceInfo(v any) ServiceInfo {
	n := wire.AsMap(v)
	if n == nil {
		return ServiceInfo{}
	}
	return ServiceInfo{
		CheckInFrom:   wire.Str(n, "checkin_from", ""),
		CheckInUntil:  wire.Str(n, "checkin_until", ""),
		CheckOutUntil: wire.Str(n, "checkout_until", ""),
		ContactPhone:  wire.Str(n, "contact_phone", ""),
		KeyPickup:     wire.Bool(n, "key_pickup", false),
	}
}

// mapTax reads the tax block. The "other" amount was called "tourist" in
// older API versions; when other is zero or absent the legacy field wins.
func mapTax(v any) Tax {
	n := wire.AsMap(v)
	if n == nil {
		return Tax{}
	}
	attrs := wire.Attrs(n)
	other := wire.Float(n, "other", 0)
	if other == 0 {
		other = wire.Float(n, "tourist", 0)
	}
	return Tax{
		Total: wire.Float(attrs, "total", wire.Float(n, "total", 0)),
		Vat:   wire.Float(n, "vat", 0),
		City:  wire.Float(n, "city", 0),
		Other: other,
	}
}

func mapContent(v any) Content {
	n := wire.AsMap(v)
	if n == nil {
		return Content{}
	}
	return Content{
		Headline:    wire.Str(n, "headline", ""),
		Description: wire.Str(n, "description", ""),
		HouseRules:  wire.Str(n, "house_rules", ""),
	}
}

// mapImages lifts the single-vs-sequence ambiguity and skips entries without
// a URL rather than failing the whole property.
func mapImages(v any) []PropertyImage {
	wrapper := wire.AsMap(v)
	var items []any
	if wrapper != nil {
		items = wire.Seq(wrapper["image"])
	} else {
		items = wire.Seq(v)
	}
	out := make([]PropertyImage, 0, len(items))
	for _, it := range items {
		m := wire.AsMap(it)
		if m == nil {
			// `<image>https://…</image>` leaf form
			if u := wire.Text(it); u != "" {
				out = append(out, PropertyImage{URL: u, Order: len(out)})
			}
			continue
		}
		attrs := wire.Attrs(m)
		url := wire.Str(attrs, "url", wire.Str(m, "url", wire.Text(it)))
		if url == "" {
			continue
		}
		out = append(out, PropertyImage{
			URL:     url,
			Caption: wire.Str(m, "caption", wire.Str(attrs, "caption", "")),
			Order:   wire.Int(attrs, "order", wire.Int(m, "order", len(out))),
		})
	}
	return out
}

// mapPropertiesResponse expects a <properties> root wrapping repeated
// <property> elements. A missing root is a structural mismatch and fails.
func mapPropertiesResponse(doc map[string]any) (*PropertiesResponse, error) {
	root, ok := doc["properties"]
	if !ok {
		return nil, wire.MissingField("properties response", "properties root")
	}
	n := wire.AsMap(root)
	var items []any
	if n != nil {
		items = wire.Seq(n["property"])
	}
	resp := &PropertiesResponse{Properties: make([]PropertyDetails, 0, len(items))}
	for _, it := range items {
		p, err := mapProperty(it)
		if err != nil {
			return nil, wire.Mapping("properties response", err)
		}
		resp.Properties = append(resp.Properties, p)
	}
	return resp, nil
}

func mapPropertyResponse(doc map[string]any) (*PropertyDetails, error) {
	root, ok := doc["property"]
	if !ok {
		// some deployments wrap the single entity in <properties>
		if list, err := mapPropertiesResponse(doc); err == nil && len(list.Properties) == 1 {
			return &list.Properties[0], nil
		}
		return nil, wire.MissingField("property response", "property root")
	}
	p, err := mapProperty(root)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
