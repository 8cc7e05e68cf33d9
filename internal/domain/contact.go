package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field length limits for contact submissions (in characters).
const (
	MaxNameLen    = 100
	MaxEmailLen   = 255
	MaxMessageLen = 2000
	MaxPhoneLen   = 20
	MaxCompanyLen = 100
	MaxPurposeLen = 100
)

// StatusNew is the lifecycle marker assigned at insert time. Later
// transitions (read, archived, ...) belong to the dashboard, not to
// the submission pipeline.
const StatusNew = "new"

// Purpose is an inquiry category offered by the contact form. The set
// below mirrors the form's dropdown; free-text values are still
// accepted, only the length bound is enforced.
type Purpose string

const (
	PurposeFrontend   Purpose = "frontend"
	PurposeFullstack  Purpose = "fullstack"
	PurposeBackend    Purpose = "backend"
	PurposeSEO        Purpose = "seo"
	PurposeUIUX       Purpose = "ui-ux"
	PurposeConsulting Purpose = "consulting"
	PurposeFreelance  Purpose = "freelance"
	PurposeFulltime   Purpose = "fulltime"
	PurposeOther      Purpose = "other"
)

func (p Purpose) String() string { return string(p) }

// IsKnown reports whether the purpose is one of the form's predefined
// categories.
func (p Purpose) IsKnown() bool {
	switch p {
	case PurposeFrontend, PurposeFullstack, PurposeBackend, PurposeSEO,
		PurposeUIUX, PurposeConsulting, PurposeFreelance, PurposeFulltime, PurposeOther:
		return true
	}
	return false
}

// Permissive local@domain.tld shape. Anything stricter rejects real
// addresses; anything looser lets through strings with no domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission is one contact-form payload submitted by a site
// visitor. ID and CreatedAt are assigned by the store at insert time
// and are immutable afterwards.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Phone     string
	Company   string
	Purpose   string
	Status    string
	CreatedAt time.Time
}

// Normalize trims surrounding whitespace from every caller-supplied
// field. It must run before Validate so that length bounds and
// required-field checks see the trimmed values.
func (c *ContactSubmission) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Message = strings.TrimSpace(c.Message)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	c.Purpose = strings.TrimSpace(c.Purpose)
}

// Validate checks field presence, length bounds, and email shape.
// It is pure and fail-fast: the first violation is returned wrapped
// in ErrValidation. No invalid submission may reach the store.
func (c *ContactSubmission) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if nameLen := len([]rune(c.Name)); nameLen > MaxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters (got %d)", ErrValidation, MaxNameLen, nameLen)
	}
	if c.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if emailLen := len([]rune(c.Email)); emailLen > MaxEmailLen {
		return fmt.Errorf("%w: email exceeds %d characters (got %d)", ErrValidation, MaxEmailLen, emailLen)
	}
	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: email %q is not a valid address", ErrValidation, c.Email)
	}
	if c.Message == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	if msgLen := len([]rune(c.Message)); msgLen > MaxMessageLen {
		return fmt.Errorf("%w: message exceeds %d characters (got %d)", ErrValidation, MaxMessageLen, msgLen)
	}
	if phoneLen := len([]rune(c.Phone)); phoneLen > MaxPhoneLen {
		return fmt.Errorf("%w: phone exceeds %d characters (got %d)", ErrValidation, MaxPhoneLen, phoneLen)
	}
	if companyLen := len([]rune(c.Company)); companyLen > MaxCompanyLen {
		return fmt.Errorf("%w: company exceeds %d characters (got %d)", ErrValidation, MaxCompanyLen, companyLen)
	}
	if purposeLen := len([]rune(c.Purpose)); purposeLen > MaxPurposeLen {
		return fmt.Errorf("%w: purpose exceeds %d characters (got %d)", ErrValidation, MaxPurposeLen, purposeLen)
	}
	return nil
}
