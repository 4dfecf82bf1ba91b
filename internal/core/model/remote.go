package model

import (
	"strconv"
	"strings"
)

// RemoteUser is one profile as decoded from the random-user endpoint.
// Every field is optional on the wire; only the login uuid is mandatory
// for the profile to be usable.
type RemoteUser struct {
	Gender   *string         `json:"gender"`
	Name     *RemoteName     `json:"name"`
	Location *RemoteLocation `json:"location"`
	Email    *string         `json:"email"`
	Login    *RemoteLogin    `json:"login"`
	Dob      *RemoteDob      `json:"dob"`
	Phone    *string         `json:"phone"`
	Cell     *string         `json:"cell"`
	Picture  *RemotePicture  `json:"picture"`
	Nat      *string         `json:"nat"`
}

// RemoteName is the name block of a remote profile.
type RemoteName struct {
	Title *string `json:"title"`
	First *string `json:"first"`
	Last  *string `json:"last"`
}

// RemoteLocation is the location block of a remote profile.
type RemoteLocation struct {
	Street  *RemoteStreet `json:"street"`
	City    *string       `json:"city"`
	State   *string       `json:"state"`
	Country *string       `json:"country"`
}

// RemoteStreet is the street sub-block of a remote location.
type RemoteStreet struct {
	Number *int    `json:"number"`
	Name   *string `json:"name"`
}

// RemoteLogin is the login block of a remote profile. Only the uuid is consumed.
type RemoteLogin struct {
	UUID     *string `json:"uuid"`
	Username *string `json:"username"`
}

// RemoteDob is the date-of-birth block of a remote profile.
type RemoteDob struct {
	Date *string `json:"date"`
	Age  *int    `json:"age"`
}

// RemotePicture is the picture URL set of a remote profile.
type RemotePicture struct {
	Large     *string `json:"large"`
	Medium    *string `json:"medium"`
	Thumbnail *string `json:"thumbnail"`
}

// SourceInfo is the metadata block of a random-user response. It is decoded
// for debugging purposes only.
type SourceInfo struct {
	Seed    *string `json:"seed"`
	Results *int    `json:"results"`
	Page    *int    `json:"page"`
	Version *string `json:"version"`
}

// User converts the remote profile into the domain record. It returns
// false when the login uuid is absent; the uuid is the only hard
// requirement for persistence. The conversion is pure.
func (r RemoteUser) User() (User, bool) {
	if r.Login == nil || r.Login.UUID == nil || *r.Login.UUID == "" {
		return User{}, false
	}

	user := User{
		ID:       *r.Login.UUID,
		FullName: fullName(r.Name),
		Gender:   deref(r.Gender),
		Email:    deref(r.Email),
		Phone:    deref(r.Phone),
		Cell:     deref(r.Cell),
		Nat:      deref(r.Nat),
	}
	if r.Dob != nil {
		user.DateOfBirth = deref(r.Dob.Date)
		if r.Dob.Age != nil {
			user.Age = *r.Dob.Age
		}
	}
	if r.Location != nil {
		user.Country = deref(r.Location.Country)
		user.City = deref(r.Location.City)
		user.Street = street(r.Location.Street)
	}
	if r.Picture != nil {
		user.PictureURL = deref(r.Picture.Large)
	}
	return user, true
}

// fullName joins title, first and last names with single spaces, skipping
// absent parts, and collapses to "Unknown" when nothing remains.
func fullName(name *RemoteName) string {
	var parts []string
	if name != nil {
		for _, p := range []*string{name.Title, name.First, name.Last} {
			if p == nil {
				continue
			}
			if v := strings.TrimSpace(*p); v != "" {
				parts = append(parts, v)
			}
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}

// street joins the street name and number with a single space. An empty
// result stays empty (absent), never a lone separator.
func street(s *RemoteStreet) string {
	if s == nil {
		return ""
	}
	var parts []string
	if s.Name != nil && strings.TrimSpace(*s.Name) != "" {
		parts = append(parts, strings.TrimSpace(*s.Name))
	}
	if s.Number != nil {
		parts = append(parts, strconv.Itoa(*s.Number))
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
