package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var fieldLabels = map[string]string{
	"Name":            "Name",
	"Email":           "Email",
	"Password":        "Password",
	"ConfirmPassword": "Password confirmation",
	"AcceptTerms":     "Terms",
	"Bio":             "Bio",
	"Avatar":          "Avatar",
	"Title":           "Title",
	"Description":     "Description",
	"Date":            "Date",
	"Location":        "Location",
	"Capacity":        "Capacity",
	"Category":        "Category",
	"Image":           "Image",
}

// FieldErrors maps a validator failure to form field names and the message
// shown next to each input. Non-validator errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := formName(fe.StructField())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

// FirstFieldError collapses err to a single ValidationError.
func FirstFieldError(err error, order ...string) *ValidationError {
	fields := FieldErrors(err)
	for _, f := range order {
		if msg, ok := fields[f]; ok {
			return &ValidationError{Field: f, Message: msg}
		}
	}
	for f, msg := range fields {
		return &ValidationError{Field: f, Message: msg}
	}
	return &ValidationError{Message: MsgGeneric}
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.StructField()]
	if !ok {
		label = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		if fe.StructField() == "AcceptTerms" {
			return "You must accept the terms and conditions"
		}
		return label + " is required"
	case "email":
		return "Email is invalid"
	case "eqfield":
		return "Passwords do not match"
	case "url":
		return label + " must be a valid URL"
	case "category":
		return "Please choose a valid category"
	case "eventstatus":
		return "Please choose a valid status"
	case "sortkey":
		return "Please choose a valid sort order"
	case "min":
		if isNumeric(fe) {
			return fmt.Sprintf("%s must be at least %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if isNumeric(fe) {
			return fmt.Sprintf("%s cannot exceed %s", label, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	}
	return label + " is invalid"
}

func isNumeric(fe validator.FieldError) bool {
	switch fe.Kind().String() {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return true
	}
	return false
}

func formName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return strings.TrimSpace(string(r))
}
