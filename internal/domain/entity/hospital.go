package entity

// AppointmentType is the consultation modality of an availability slot.
type AppointmentType string

const (
	AppointmentTypeOnline  AppointmentType = "online"
	AppointmentTypeOffline AppointmentType = "offline"
)

// IsValid reports whether t is online or offline.
func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeOnline || t == AppointmentTypeOffline
}

// AvailabilitySlot is a doctor-declared offering on a date.
type AvailabilitySlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Availability splits a doctor's slots by modality.
type Availability struct {
	Offline []AvailabilitySlot `json:"offline"`
	Online  []AvailabilitySlot `json:"online"`
}

type Doctor struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Available    bool         `json:"available"`
	Availability Availability `json:"availability"`
}

type Department struct {
	Name    string   `json:"name"`
	Doctors []Doctor `json:"doctors"`
}

// Hospital is either a catalog entry with bookable departments or a bare
// search result from the places provider.
type Hospital struct {
	PlaceID          string       `json:"place_id,omitempty"`
	Name             string       `json:"name"`
	Vicinity         string       `json:"vicinity"`
	Rating           float64      `json:"rating"`
	UserRatingsTotal int          `json:"user_ratings_total"`
	Latitude         float64      `json:"latitude,omitempty"`
	Longitude        float64      `json:"longitude,omitempty"`
	Departments      []Department `json:"departments,omitempty"`
}

// Location is a geographic coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
