package model

// User represents a cached random user in the system. It is the
// presentation-facing record: every field except ID and FullName is
// optional and zero-valued when the remote profile did not carry it.
type User struct {
	// ID is the stable identifier of the user (the remote login uuid).
	ID string `json:"id"`

	// FullName is the display name. Never empty: it collapses to
	// "Unknown" when the remote profile carries no name parts.
	FullName string `json:"full_name"`

	// Gender is the remote gender value ("male"/"female") when present.
	Gender string `json:"gender,omitempty"`

	// Email is the user email.
	Email string `json:"email,omitempty"`

	// Phone is the landline phone number.
	Phone string `json:"phone,omitempty"`

	// Cell is the mobile phone number.
	Cell string `json:"cell,omitempty"`

	// Age in years. Zero means unknown.
	Age int `json:"age,omitempty"`

	// DateOfBirth is the ISO-8601 date-of-birth string as sent by the source.
	DateOfBirth string `json:"date_of_birth,omitempty"`

	// Country is the user country.
	Country string `json:"country,omitempty"`

	// City is the user city.
	City string `json:"city,omitempty"`

	// Street is the street name and number joined by a single space.
	Street string `json:"street,omitempty"`

	// PictureURL is the URL of the large profile picture.
	PictureURL string `json:"picture_url,omitempty"`

	// Nat is the two-letter nationality code.
	Nat string `json:"nat,omitempty"`
}

// UserEvent collects a user change. It can represent creation, replacement
// and deletion of a cached user.
type UserEvent struct {
	// ID is the event id.
	ID string `json:"id"`

	// Before is the user state before the event. It will be nil when the
	// uuid was not cached yet.
	Before *User `json:"before,omitempty"`

	// After is the user state after the event. It will be nil in case of deletions.
	After *User `json:"after,omitempty"`
}
