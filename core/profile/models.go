package profile

import (
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gradnet/backend/core"
)

// Mentor filter selectors
const (
	MentorAll        = "all"
	MentorsOnly      = "mentors"
	NonMentorsOnly   = "non-mentors"
	GraduationAllVal = "all"
)

type Profile struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	GraduationYear  *int      `json:"graduation_year"`
	Degree          string    `json:"degree,omitempty"`
	Major           string    `json:"major,omitempty"`
	CurrentCompany  string    `json:"current_company,omitempty"`
	CurrentPosition string    `json:"current_position,omitempty"`
	Location        string    `json:"location,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	LinkedinURL     string    `json:"linkedin_url,omitempty"`
	IsMentor        bool      `json:"is_mentor"`
	IsAdmin         bool      `json:"is_admin"`
	PictureURL      string    `json:"profile_picture,omitempty"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

// UpsertProfile defines what a user may provide to create or modify their own
// Profile. GraduationYear arrives as free text and is parsed to an int or null.
type UpsertProfile struct {
	FullName        string `json:"full_name" validate:"required"`
	GraduationYear  string `json:"graduation_year" validate:"gradyear"`
	Degree          string `json:"degree"`
	Major           string `json:"major"`
	CurrentCompany  string `json:"current_company"`
	CurrentPosition string `json:"current_position"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
	LinkedinURL     string `json:"linkedin_url" validate:"omitempty,url"`
	IsMentor        bool   `json:"is_mentor"`
}

func (up *UpsertProfile) Validate(validate *validator.Validate, _ ut.Translator) error {
	up.FullName = core.CleanString(up.FullName)
	up.GraduationYear = core.CleanString(up.GraduationYear)
	up.Degree = core.CleanString(up.Degree)
	up.Major = core.CleanString(up.Major)
	up.CurrentCompany = core.CleanString(up.CurrentCompany)
	up.CurrentPosition = core.CleanString(up.CurrentPosition)
	up.Location = core.CleanString(up.Location)
	up.LinkedinURL = core.CleanString(up.LinkedinURL)
	return validate.Struct(up)
}

// Year parses the submitted graduation year; empty input maps to null.
// Validate must have accepted the value first.
func (up UpsertProfile) Year() *int {
	if up.GraduationYear == "" {
		return nil
	}
	year, err := strconv.Atoi(up.GraduationYear)
	if err != nil {
		return nil
	}
	return &year
}

// DirectoryFilter holds the directory search criteria.
type DirectoryFilter struct {
	Search string `query:"search"`
	Year   string `query:"year"`
	Mentor string `query:"mentor"`
}

func (f *DirectoryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Year = core.CleanString(f.Year, true /* lower */)
	f.Mentor = core.CleanString(f.Mentor, true /* lower */)
	if f.Year == "" {
		f.Year = GraduationAllVal
	}
	if f.Mentor == "" {
		f.Mentor = MentorAll
	}
}

func (f *DirectoryFilter) IsEmpty() bool {
	return f.Search == "" && (f.Year == "" || f.Year == GraduationAllVal) &&
		(f.Mentor == "" || f.Mentor == MentorAll)
}
