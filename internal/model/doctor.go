package model

import (
	"sort"
	"strings"
)

// DoctorID identifies a doctor record; assigned by storage on create
type DoctorID int64

// Doctor is one entry in the doctor directory
type Doctor struct {
	ID            DoctorID
	DoctorName    string
	Contact       string
	Address       string
	Timing        string
	AvailableDays string
}

// MinContactDigits is the fewest digits a contact number may carry
const MinContactDigits = 10

// Validate checks that every field is filled in and the contact has enough digits.
// It returns a *ValidationError naming each bad field, or nil.
func (d *Doctor) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(d.DoctorName) == "" {
		fields["doctorName"] = "Doctor name is required"
	}
	if strings.TrimSpace(d.Contact) == "" {
		fields["contact"] = "Contact number is required"
	} else if countDigits(d.Contact) < MinContactDigits {
		fields["contact"] = "Please enter a valid phone number (at least 10 digits)"
	}
	if strings.TrimSpace(d.Address) == "" {
		fields["address"] = "Address is required"
	}
	if strings.TrimSpace(d.Timing) == "" {
		fields["timing"] = "Timing is required"
	}
	if strings.TrimSpace(d.AvailableDays) == "" {
		fields["availableDays"] = "Available days are required"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Normalize trims surrounding whitespace from every text field
func (d *Doctor) Normalize() {
	d.DoctorName = strings.TrimSpace(d.DoctorName)
	d.Contact = strings.TrimSpace(d.Contact)
	d.Address = strings.TrimSpace(d.Address)
	d.Timing = strings.TrimSpace(d.Timing)
	d.AvailableDays = strings.TrimSpace(d.AvailableDays)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ValidationError reports per-field problems with a submitted record
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
