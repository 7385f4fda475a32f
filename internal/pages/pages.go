// Package pages declares the AirBear forms: which fields each page collects,
// how they are labelled, and where the page lives.
//
// Definitions are immutable values built at package init. Each request gets
// its own form.Controller through Definition.NewController.
package pages

import (
	"slices"

	"github.com/aanand-mishra/airbear/internal/form"
)

// Form names, also used as the {form} segment of /api/forms/{form}.
const (
	LoginName    = "login"
	RegisterName = "register"
	BookRideName = "book-ride"
)

// Definition describes one form page.
type Definition struct {
	Name        string
	Path        string
	Title       string
	Subtitle    string
	SubmitLabel string
	Fields      []form.FieldDescriptor
}

// NewController returns a fresh controller for the page's fields.
func (d Definition) NewController(mode form.Mode) *form.Controller {
	return form.New(d.Name, d.Fields, mode)
}

// locations are the pickup and destination points a ride can be booked
// between.
var locations = []string{
	"Downtown Plaza",
	"University Campus",
	"Shopping District",
	"Riverside Park",
	"Business Center",
	"Airport Terminal",
	"Train Station",
	"Beach Boardwalk",
}

var (
	Login = Definition{
		Name:        LoginName,
		Path:        "/login",
		Title:       "Welcome Back",
		Subtitle:    "Sign in to your AirBear account",
		SubmitLabel: "Login",
		Fields: []form.FieldDescriptor{
			{Name: "email", Label: "Email", Kind: form.KindEmail, Required: true, Placeholder: "your@email.com"},
			{Name: "password", Label: "Password", Kind: form.KindPassword, Required: true, Placeholder: "Enter your password"},
		},
	}

	Register = Definition{
		Name:        RegisterName,
		Path:        "/register",
		Title:       "Join AirBear",
		Subtitle:    "Create your eco-friendly ride account",
		SubmitLabel: "Register",
		Fields: []form.FieldDescriptor{
			{Name: "name", Label: "Full Name", Kind: form.KindText, Required: true, Placeholder: "John Doe"},
			{Name: "email", Label: "Email", Kind: form.KindEmail, Required: true, Placeholder: "your@email.com"},
			{Name: "password", Label: "Password", Kind: form.KindPassword, Required: true, Placeholder: "Create a strong password"},
			{Name: "dateOfBirth", Label: "Date of Birth", Kind: form.KindDate, Required: true},
			{Name: "acceptTerms", Label: "I agree to the Terms of Service and Privacy Policy", Kind: form.KindBool, Required: true},
		},
	}

	BookRide = Definition{
		Name:        BookRideName,
		Path:        "/book-ride",
		Title:       "Book Your Eco Ride",
		Subtitle:    "Choose your locations and let's get you moving sustainably!",
		SubmitLabel: "Check Out",
		Fields: []form.FieldDescriptor{
			{Name: "startLocation", Label: "Pickup Location", Kind: form.KindSelect, Required: true, Placeholder: "Select pickup location", Options: Locations()},
			{Name: "endLocation", Label: "Destination", Kind: form.KindSelect, Required: true, Placeholder: "Select destination", Options: Locations()},
		},
	}
)

// Locations returns a copy of the bookable locations in display order.
func Locations() []string {
	return slices.Clone(locations)
}

// All returns every form page in menu order.
func All() []Definition {
	return []Definition{Login, Register, BookRide}
}

// Lookup finds a definition by form name.
func Lookup(name string) (Definition, bool) {
	i := slices.IndexFunc(All(), func(d Definition) bool { return d.Name == name })
	if i < 0 {
		return Definition{}, false
	}
	return All()[i], true
}
