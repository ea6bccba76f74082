package web

import (
	"context"
	"strings"
	"testing"
)

func TestValidateFields(t *testing.T) {
	v := &Validator{}

	tests := []struct {
		name                 string
		formName, email, msg string
		wantErrs             []string
	}{
		{
			name:     "all valid",
			formName: "Ada Lovelace", email: "ada@example.com", msg: "Hello there",
			wantErrs: nil,
		},
		{
			name:     "missing name",
			formName: "", email: "ada@example.com", msg: "Hello",
			wantErrs: []string{"Name is required"},
		},
		{
			name:     "name too short",
			formName: "A", email: "ada@example.com", msg: "Hello",
			wantErrs: []string{"Name must be at least 2 characters long"},
		},
		{
			name:     "name too long",
			formName: strings.Repeat("a", 101), email: "ada@example.com", msg: "Hello",
			wantErrs: []string{"Name is too long (maximum 100 characters)"},
		},
		{
			name:     "missing email",
			formName: "Ada", email: "", msg: "Hello",
			wantErrs: []string{"Email address is required"},
		},
		{
			name:     "malformed email",
			formName: "Ada", email: "not-an-email", msg: "Hello",
			wantErrs: []string{"Invalid email format. Please enter a valid email address."},
		},
		{
			name:     "email without tld",
			formName: "Ada", email: "ada@localhost", msg: "Hello",
			wantErrs: []string{"Invalid email format. Please enter a valid email address."},
		},
		{
			name:     "missing message",
			formName: "Ada", email: "ada@example.com", msg: "",
			wantErrs: []string{"Message is required"},
		},
		{
			name:     "blank message",
			formName: "Ada", email: "ada@example.com", msg: "   ",
			wantErrs: []string{"Message cannot be empty"},
		},
		{
			name:     "message too long",
			formName: "Ada", email: "ada@example.com", msg: strings.Repeat("x", 2001),
			wantErrs: []string{"Message is too long (maximum 2000 characters)"},
		},
		{
			name:     "multibyte name counts characters not bytes",
			formName: "éé", email: "ada@example.com", msg: "Hello",
			wantErrs: nil,
		},
		{
			name:     "single multibyte character name too short",
			formName: "é", email: "ada@example.com", msg: "Hello",
			wantErrs: []string{"Name must be at least 2 characters long"},
		},
		{
			name:     "long multibyte message within character limit",
			formName: "Ada", email: "ada@example.com", msg: strings.Repeat("你", 2000),
			wantErrs: nil,
		},
		{
			name:     "multibyte message over character limit",
			formName: "Ada", email: "ada@example.com", msg: strings.Repeat("你", 2001),
			wantErrs: []string{"Message is too long (maximum 2000 characters)"},
		},
		{
			name:     "multiple failures reported together",
			formName: "", email: "", msg: "",
			wantErrs: []string{"Name is required", "Email address is required", "Message is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.formName, tt.email, tt.msg)
			if len(got) != len(tt.wantErrs) {
				t.Fatalf("Validate() = %v, want %v", got, tt.wantErrs)
			}
			for i := range got {
				if got[i] != tt.wantErrs[i] {
					t.Errorf("error %d = %q, want %q", i, got[i], tt.wantErrs[i])
				}
			}
		})
	}
}

func TestStrictEmailDomainCheck(t *testing.T) {
	checked := ""
	v := &Validator{
		Strict: true,
		CheckDomain: func(_ context.Context, domain string) bool {
			checked = domain
			return domain == "example.com"
		},
	}

	errs := v.Validate(context.Background(), "Ada", "ada@Example.COM", "Hello")
	if len(errs) != 0 {
		t.Errorf("known domain rejected: %v", errs)
	}
	if checked != "example.com" {
		t.Errorf("domain passed to checker = %q, want lowercased %q", checked, "example.com")
	}

	errs = v.Validate(context.Background(), "Ada", "ada@nope.example", "Hello")
	if len(errs) != 1 || !strings.Contains(errs[0], "does not exist") {
		t.Errorf("unknown domain should be rejected, got %v", errs)
	}
}

func TestNonStrictSkipsDomainCheck(t *testing.T) {
	called := false
	v := &Validator{
		Strict:      false,
		CheckDomain: func(_ context.Context, _ string) bool { called = true; return false },
	}

	errs := v.Validate(context.Background(), "Ada", "ada@example.com", "Hello")
	if len(errs) != 0 {
		t.Errorf("non-strict validation rejected a well-formed email: %v", errs)
	}
	if called {
		t.Errorf("domain checker must not run when strict validation is off")
	}
}
