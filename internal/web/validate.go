// Package web serves the portfolio landing page and the contact form API.
package web

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 100
	messageMaxLen = 2000

	mxLookupTimeout = 5 * time.Second
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// DomainCheckFunc reports whether a mail domain exists and can receive
// mail.
type DomainCheckFunc func(ctx context.Context, domain string) bool

// ResolverDomainCheck returns a DomainCheckFunc backed by DNS MX lookups.
// A domain that does not resolve, has no MX records, or times out is
// rejected.
func ResolverDomainCheck(r *net.Resolver) DomainCheckFunc {
	if r == nil {
		r = net.DefaultResolver
	}
	return func(ctx context.Context, domain string) bool {
		ctx, cancel := context.WithTimeout(ctx, mxLookupTimeout)
		defer cancel()
		mx, err := r.LookupMX(ctx, domain)
		return err == nil && len(mx) > 0
	}
}

// Validator checks contact form fields. With Strict set and a CheckDomain
// func present, email domains are verified to actually accept mail; this
// blocks typo domains before an SMTP send is attempted.
type Validator struct {
	Strict      bool
	CheckDomain DomainCheckFunc
}

// Validate returns all field errors for a submission, empty when the
// submission is acceptable. Messages are user-facing.
func (v *Validator) Validate(ctx context.Context, name, email, message string) []string {
	var errs []string

	// Limits count characters, not bytes, so multibyte names and messages
	// measure the way the user sees them.
	switch {
	case name == "":
		errs = append(errs, "Name is required")
	case utf8.RuneCountInString(strings.TrimSpace(name)) < nameMinLen:
		errs = append(errs, "Name must be at least 2 characters long")
	case utf8.RuneCountInString(name) > nameMaxLen:
		errs = append(errs, "Name is too long (maximum 100 characters)")
	}

	if email == "" {
		errs = append(errs, "Email address is required")
	} else if msg := v.validateEmail(ctx, strings.TrimSpace(email)); msg != "" {
		errs = append(errs, msg)
	}

	switch {
	case message == "":
		errs = append(errs, "Message is required")
	case strings.TrimSpace(message) == "":
		errs = append(errs, "Message cannot be empty")
	case utf8.RuneCountInString(message) > messageMaxLen:
		errs = append(errs, "Message is too long (maximum 2000 characters)")
	}

	return errs
}

// validateEmail returns a user-facing error message, or "" when the address
// passes.
func (v *Validator) validateEmail(ctx context.Context, email string) string {
	if !emailPattern.MatchString(email) {
		return "Invalid email format. Please enter a valid email address."
	}
	if !v.Strict || v.CheckDomain == nil {
		return ""
	}
	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	if !v.CheckDomain(ctx, domain) {
		return "This email address does not exist or cannot receive emails. Please check for typos and try again."
	}
	return ""
}
