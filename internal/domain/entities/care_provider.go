package entities

// ProviderKind discriminates between individual doctors and institutions.
type ProviderKind string

const (
	ProviderKindDoctor   ProviderKind = "doctor"
	ProviderKindHospital ProviderKind = "hospital"
)

// Valid reports whether the kind is one of the known values.
func (k ProviderKind) Valid() bool {
	return k == ProviderKindDoctor || k == ProviderKindHospital
}

// CareProvider represents a normalized doctor or hospital entry produced from
// a raw place record.
type CareProvider struct {
	ID                  string         `json:"id"`
	Kind                ProviderKind   `json:"kind"`
	DisplayName         string         `json:"display_name"`
	Title               string         `json:"title,omitempty"`
	Specialty           string         `json:"specialty"`
	Affiliation         string         `json:"affiliation"`
	Address             string         `json:"address"`
	Phone               string         `json:"phone"`
	Location            Location       `json:"location"`
	Rating              *float64       `json:"rating,omitempty"`
	ReviewCount         *int           `json:"review_count,omitempty"`
	WorkingHours        []WorkingHours `json:"working_hours"`
	DistanceKm          *float64       `json:"distance_km,omitempty"`
	AcceptsAppointments bool           `json:"accepts_appointments"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WorkingHours is one weekday entry of a provider's schedule.
type WorkingHours struct {
	Day    string `json:"day"`
	Start  string `json:"start"`
	End    string `json:"end"`
	IsOpen bool   `json:"is_open"`
}
