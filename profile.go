package profiled

import (
	"context"
	"encoding/json"
)

// Profile is the structured record extracted from one subject's page.
// Optional scalar fields are nil when they could not be resolved.
type Profile struct {
	FullName       *string         `json:"full_name"`
	Headline       *string         `json:"headline"`
	Location       *string         `json:"location"`
	About          *string         `json:"about"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Certifications []Certification `json:"certifications"`

	// Skills is pipe-delimited. An empty string means none were found.
	Skills string `json:"skills"`
}

// NewProfile returns an empty profile with non-nil entry lists so that it
// serializes with empty arrays rather than nulls.
func NewProfile() *Profile {
	return &Profile{
		Experiences:    []Experience{},
		Educations:     []Education{},
		Certifications: []Certification{},
	}
}

// IsEmpty reports whether no field of the profile was resolved.
func (p *Profile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.FullName == nil && p.Headline == nil && p.Location == nil && p.About == nil &&
		len(p.Experiences) == 0 && len(p.Educations) == 0 && len(p.Certifications) == 0 &&
		p.Skills == ""
}

// Experience is one work-experience entry.
// Title and Company are never equal; such items are dropped during parsing.
type Experience struct {
	Title     string  `json:"title"`
	Company   string  `json:"company"`
	DateRange string  `json:"date_range"`
	Location  *string `json:"location"`
}

// Education is one education entry.
// School and Degree are never equal; such items are dropped during parsing.
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	DateRange string `json:"date_range"`
}

// Certification is one license or certification entry.
// Name is always non-empty; the remaining fields are best-effort.
type Certification struct {
	Name         string  `json:"name"`
	Authority    *string `json:"authority"`
	Issued       *string `json:"issued"`
	CredentialID *string `json:"credential_id"`
}

// Scraper produces a profile for a subject identified by its vanity name.
type Scraper interface {
	// Scrape extracts the profile of the subject at the vanity path segment.
	// Returns EINVALID for a malformed vanity name, EUNAUTHORIZED when no
	// session credential is configured, and EUNAVAILABLE when no document
	// context could be acquired. Field-level failures never surface as errors.
	Scrape(ctx context.Context, vanity string) (*Profile, error)
}

// Response is the boundary envelope returned to callers of the service.
type Response struct {
	Data    *Profile
	Message string
}

// NewResponse wraps the outcome of a scrape in the boundary envelope.
func NewResponse(p *Profile, err error) Response {
	if err != nil {
		return Response{Message: "Error: " + ErrorMessage(err)}
	}
	return Response{Data: p, Message: "ok"}
}

// MarshalJSON encodes the envelope, writing an empty object when there is no data.
func (r Response) MarshalJSON() ([]byte, error) {
	var data any = struct{}{}
	if r.Data != nil {
		data = r.Data
	}
	return json.Marshal(struct {
		Data    any    `json:"data"`
		Message string `json:"message"`
	}{data, r.Message})
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value s points to, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
