package submission

import (
	"math"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
)

const (
	errTextRequired   = "this field is required"
	errInvalidChoice  = "select a valid choice"
	errMalformedText  = "a text answer was expected"
	errMalformedList  = "a list of choices was expected"
	errMalformedFile  = "an uploaded file was expected"
	errFileNotAllowed = "this file type is not allowed"
)

// ValidateResponses checks a Response Map against a Form's schema and returns
// the cleaned map that may be persisted. This is the authoritative check: it
// runs regardless of what any client-side rendering already verified.
// Keys that do not correspond to a schema field are dropped.
func ValidateResponses(fields []form.Field, responses ResponseMap) (ResponseMap, error) {
	clean := make(ResponseMap, len(fields))
	var fldErrs []core.FieldError

	fail := func(id, msg string) {
		fldErrs = append(fldErrs, core.FieldError{Field: id, Error: msg})
	}

	for _, fld := range fields {
		val, present := responses[fld.ID]

		switch fld.Type {
		case form.FieldText, form.FieldParagraph:
			if present && val.Kind != KindText {
				fail(fld.ID, errMalformedText)
				continue
			}
			text := core.CleanString(val.Text)
			if text == "" {
				if fld.Required {
					fail(fld.ID, errTextRequired)
				}
				continue
			}
			clean[fld.ID] = TextValue(text)

		case form.FieldRadio, form.FieldSelect:
			if present && val.Kind != KindText {
				fail(fld.ID, errMalformedText)
				continue
			}
			choice := core.CleanString(val.Text)
			if choice == "" { // the select placeholder state counts as no answer
				if fld.Required {
					fail(fld.ID, errTextRequired)
				}
				continue
			}
			if !containsOption(fld.Options, choice) {
				fail(fld.ID, errInvalidChoice)
				continue
			}
			clean[fld.ID] = TextValue(choice)

		case form.FieldCheckbox:
			if present && val.Kind != KindChoices {
				fail(fld.ID, errMalformedList)
				continue
			}
			if len(val.Choices) == 0 {
				if fld.Required {
					fail(fld.ID, errTextRequired)
				}
				continue
			}
			// selection order is preserved as submitted
			valid := true
			for _, choice := range val.Choices {
				if !containsOption(fld.Options, choice) {
					fail(fld.ID, errInvalidChoice)
					valid = false
					break
				}
			}
			if valid {
				clean[fld.ID] = ChoicesValue(val.Choices...)
			}

		case form.FieldUpload:
			if present && val.Kind != KindFile {
				fail(fld.ID, errMalformedFile)
				continue
			}
			if val.File.URL == "" { // a merely "chosen" file is not a completed upload
				if fld.Required {
					fail(fld.ID, errTextRequired)
				}
				continue
			}
			if val.File.Name != "" && !form.AllowedFile(val.File.Name, fld.AcceptedFileTypes) {
				fail(fld.ID, errFileNotAllowed)
				continue
			}
			clean[fld.ID] = FileValue(val.File.URL, val.File.Name)
		}
	}

	if fldErrs != nil {
		return nil, core.NewValidationError(nil, fldErrs...)
	}
	return clean, nil
}

func containsOption(options []string, choice string) bool {
	for _, opt := range options {
		if opt == choice {
			return true
		}
	}
	return false
}

// CompletionPercent is the renderer's progress affordance: the share of fields
// holding a non-empty value under the per-type rule, as a rounded percentage.
// It gates nothing.
func CompletionPercent(fields []form.Field, responses ResponseMap) int {
	if len(fields) == 0 {
		return 100
	}
	var filled int
	for _, fld := range fields {
		if val, ok := responses[fld.ID]; ok && !val.IsEmpty() {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}
