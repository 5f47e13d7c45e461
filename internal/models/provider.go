package models

// ServiceType identifies the kind of service a provider offers.
type ServiceType string

const (
	// ServiceTypeInspector represents tractor inspectors.
	ServiceTypeInspector ServiceType = "inspector"
	// ServiceTypeHaulier represents machinery hauliers.
	ServiceTypeHaulier ServiceType = "haulier"
)

// Valid reports whether the service type is one of the known kinds.
func (t ServiceType) Valid() bool {
	return t == ServiceTypeInspector || t == ServiceTypeHaulier
}

// Provider is a service provider record as read from the provider catalog.
// The engine treats it as read-only; ownership stays with the data layer.
type Provider struct {
	ID           string      `json:"id"`
	Type         ServiceType `json:"type"`
	Name         string      `json:"name"`
	ContactEmail string      `json:"contact_email,omitempty"`
	ContactPhone string      `json:"contact_phone,omitempty"`
	Address      string      `json:"address"`
	Postcode     string      `json:"postcode"`
	Country      string      `json:"country"`
	Coordinates  Coordinates `json:"coordinates"`
	Rating       *float64    `json:"rating,omitempty"` // nil when the provider has no reviews yet.
	PriceRange   string      `json:"price_range,omitempty"`
	Active       bool        `json:"active"`
	SpecialtyIDs []string    `json:"specialty_ids"`
}

// Specialty is a filter tag attached to providers: a tractor brand for
// inspectors, a cargo type for hauliers.
type Specialty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
