package views

import (
	"fmt"
	"net/mail"
	"sort"
	"strconv"
	"strings"

	"wbsplanner/internal/i18n"
)

// ValidationError lists the fields that failed, with the message for each.
// Nothing is sent to the server while a form has one.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", n, e.Fields[n]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// validator collects field errors in form order.
type validator struct {
	locale i18n.Locale
	fields map[string]string
}

func newValidator(l i18n.Locale) *validator {
	return &validator{locale: l, fields: map[string]string{}}
}

func (v *validator) fail(field, key string) {
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = v.locale.T(key)
	}
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.fail(field, i18n.Required)
		return false
	}
	return true
}

func (v *validator) email(field, value string) {
	if !v.required(field, value) {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.fail(field, i18n.InvalidEmail)
	}
}

// choice checks value against allowed; empty is accepted unless the field is required.
func (v *validator) choice(field, value string, allowed func(string) bool) {
	if value == "" {
		return
	}
	if !allowed(value) {
		v.fail(field, i18n.InvalidChoice)
	}
}

// number parses an optional float and checks min and max.
func (v *validator) number(field, value string, min, max float64) float64 {
	if strings.TrimSpace(value) == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < min || f > max {
		v.fail(field, i18n.OutOfRange)
		return 0
	}
	return f
}

// id parses an optional positive integer.
func (v *validator) id(field, value string) *int {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		v.fail(field, i18n.OutOfRange)
		return nil
	}
	return &n
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
