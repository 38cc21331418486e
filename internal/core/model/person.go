package model

import "time"

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// AvatarColor returns the deterministic display color for a gender.
func (g Gender) AvatarColor() string {
	switch g {
	case GenderMale:
		return "#4A90D9"
	case GenderFemale:
		return "#D96A9C"
	default:
		return "#9B9B9B"
	}
}

// Person is a record in the entity store. Direct relations are held as plain
// id references (empty string = no relation) and resolved via lookup at
// traversal time, never as embedded pointers.
type Person struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	Gender       Gender     `json:"gender" gorm:"size:10"`
	BirthYear    *int       `json:"birth_year,omitempty"`
	DeathYear    *int       `json:"death_year,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath  *time.Time `json:"date_of_death,omitempty"`
	Location     string     `json:"location,omitempty" gorm:"size:200"`
	ProfilePhoto string     `json:"profile_photo,omitempty" gorm:"size:500"`
	FatherID     string     `json:"father_id,omitempty" gorm:"size:36;index"`
	MotherID     string     `json:"mother_id,omitempty" gorm:"size:36;index"`
	SpouseID     string     `json:"spouse_id,omitempty" gorm:"size:36;index"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (p Person) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

func (p Person) AvatarColor() string {
	return p.Gender.AvatarColor()
}
