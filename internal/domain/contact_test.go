package domain

import (
	"errors"
	"strings"
	"testing"
)

func validSubmission() ContactSubmission {
	return ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	}
}

func TestContactSubmissionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ContactSubmission)
		wantErr string
	}{
		{name: "minimal valid", mutate: func(c *ContactSubmission) {}},
		{
			name: "all optional fields",
			mutate: func(c *ContactSubmission) {
				c.Phone = "+256700000000"
				c.Company = "Acme Ltd"
				c.Purpose = "freelance"
			},
		},
		{
			name:    "missing name",
			mutate:  func(c *ContactSubmission) { c.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing email",
			mutate:  func(c *ContactSubmission) { c.Email = "" },
			wantErr: "email is required",
		},
		{
			name:    "missing message",
			mutate:  func(c *ContactSubmission) { c.Message = "" },
			wantErr: "message is required",
		},
		{
			name:    "email without at sign",
			mutate:  func(c *ContactSubmission) { c.Email = "not-an-email" },
			wantErr: "not a valid address",
		},
		{
			name:    "email without tld",
			mutate:  func(c *ContactSubmission) { c.Email = "jane@example" },
			wantErr: "not a valid address",
		},
		{
			name:   "short but complete email",
			mutate: func(c *ContactSubmission) { c.Email = "a@b.co" },
		},
		{
			name:   "name at limit",
			mutate: func(c *ContactSubmission) { c.Name = strings.Repeat("a", MaxNameLen) },
		},
		{
			name:    "name over limit",
			mutate:  func(c *ContactSubmission) { c.Name = strings.Repeat("a", MaxNameLen+1) },
			wantErr: "name exceeds",
		},
		{
			name:   "message at limit",
			mutate: func(c *ContactSubmission) { c.Message = strings.Repeat("m", MaxMessageLen) },
		},
		{
			name:    "message over limit",
			mutate:  func(c *ContactSubmission) { c.Message = strings.Repeat("m", MaxMessageLen+1) },
			wantErr: "message exceeds",
		},
		{
			name: "email over limit",
			mutate: func(c *ContactSubmission) {
				c.Email = strings.Repeat("e", MaxEmailLen-10) + "@example.com"
			},
			wantErr: "email exceeds",
		},
		{
			name:    "phone over limit",
			mutate:  func(c *ContactSubmission) { c.Phone = strings.Repeat("1", MaxPhoneLen+1) },
			wantErr: "phone exceeds",
		},
		{
			name:    "company over limit",
			mutate:  func(c *ContactSubmission) { c.Company = strings.Repeat("c", MaxCompanyLen+1) },
			wantErr: "company exceeds",
		},
		{
			name:    "purpose over limit",
			mutate:  func(c *ContactSubmission) { c.Purpose = strings.Repeat("p", MaxPurposeLen+1) },
			wantErr: "purpose exceeds",
		},
		{
			// The purpose list is advisory, not an enum constraint.
			name:   "unknown purpose accepted",
			mutate: func(c *ContactSubmission) { c.Purpose = "carrier-pigeon" },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub := validSubmission()
			tt.mutate(&sub)

			err := sub.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestContactSubmissionValidateIsIdempotent(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.Email = "not-an-email"

	first := sub.Validate()
	second := sub.Validate()

	if first == nil || second == nil {
		t.Fatal("Validate() should reject a malformed email on every call")
	}
	if first.Error() != second.Error() {
		t.Fatalf("Validate() not idempotent: %q vs %q", first, second)
	}
}

func TestContactSubmissionNormalize(t *testing.T) {
	t.Parallel()

	sub := ContactSubmission{
		Name:    "  Jane Doe ",
		Email:   " jane@example.com ",
		Message: "\nHello\t",
		Phone:   " +256700000000 ",
		Company: " Acme ",
		Purpose: " other ",
	}
	sub.Normalize()

	if sub.Name != "Jane Doe" {
		t.Fatalf("Name = %q, want trimmed", sub.Name)
	}
	if sub.Email != "jane@example.com" {
		t.Fatalf("Email = %q, want trimmed", sub.Email)
	}
	if sub.Message != "Hello" {
		t.Fatalf("Message = %q, want trimmed", sub.Message)
	}
	if sub.Phone != "+256700000000" || sub.Company != "Acme" || sub.Purpose != "other" {
		t.Fatalf("optional fields not trimmed: %+v", sub)
	}
}

func TestNormalizeThenValidateRejectsWhitespaceOnly(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.Name = "   "
	sub.Normalize()

	if err := sub.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation for whitespace-only name", err)
	}
}

func TestPurposeIsKnown(t *testing.T) {
	t.Parallel()

	for _, p := range []Purpose{
		PurposeFrontend, PurposeFullstack, PurposeBackend, PurposeSEO,
		PurposeUIUX, PurposeConsulting, PurposeFreelance, PurposeFulltime, PurposeOther,
	} {
		if !p.IsKnown() {
			t.Fatalf("IsKnown() = false for predefined purpose %q", p)
		}
	}

	if Purpose("telegram").IsKnown() {
		t.Fatal("IsKnown() = true for unknown purpose")
	}
}
