package submission

import (
	"reflect"
	"testing"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
)

func testFields() []form.Field {
	return []form.Field{
		{ID: "name", Type: form.FieldText, Label: "Full Name", Required: true},
		{ID: "bio", Type: form.FieldParagraph, Label: "About you"},
		{ID: "track", Type: form.FieldRadio, Label: "Track", Required: true,
			Options: []string{"Backend", "Frontend"}},
		{ID: "year", Type: form.FieldSelect, Label: "Year",
			Options: []string{"1", "2", "3", "4"}},
		{ID: "langs", Type: form.FieldCheckbox, Label: "Languages", Required: true,
			Options: []string{"Go", "Python", "Rust"}},
		{ID: "resume", Type: form.FieldUpload, Label: "Resume", Required: true,
			AcceptedFileTypes: []form.FileCategory{form.FilePDF}},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("error = %T (%v); want *core.ValidationError", err, err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, fe := range vErr.Fields {
		flds[fe.Field] = fe.Error
	}
	return flds
}

func TestValidateResponses(t *testing.T) {
	complete := ResponseMap{
		"name":   TextValue("Ada Lovelace"),
		"track":  TextValue("Backend"),
		"langs":  ChoicesValue("Go", "Rust"),
		"resume": FileValue("https://ik.example.com/osatria/forms/resume.pdf", "resume.pdf"),
	}

	t.Run("complete submission passes", func(t *testing.T) {
		clean, err := ValidateResponses(testFields(), complete)
		if err != nil {
			t.Fatalf("ValidateResponses() failed: %v", err)
		}
		if want := ChoicesValue("Go", "Rust"); !reflect.DeepEqual(clean["langs"], want) {
			t.Errorf("langs = %+v; want %+v (order preserved)", clean["langs"], want)
		}
		if _, ok := clean["bio"]; ok {
			t.Error("empty optional answer should be absent from the clean map")
		}
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		responses := ResponseMap{}
		for k, v := range complete {
			responses[k] = v
		}
		responses["ghost"] = TextValue("boo")

		clean, err := ValidateResponses(testFields(), responses)
		if err != nil {
			t.Fatalf("ValidateResponses() failed: %v", err)
		}
		if _, ok := clean["ghost"]; ok {
			t.Error("unknown key survived validation")
		}
	})

	t.Run("missing required fields are collected per field", func(t *testing.T) {
		_, err := ValidateResponses(testFields(), ResponseMap{})
		flds := fieldErrors(t, err)
		for _, id := range []string{"name", "track", "langs", "resume"} {
			if flds[id] != errTextRequired {
				t.Errorf("%s error = %q; want %q", id, flds[id], errTextRequired)
			}
		}
		if _, ok := flds["bio"]; ok {
			t.Error("optional field should not error when missing")
		}
	})

	t.Run("whitespace-only text counts as empty", func(t *testing.T) {
		responses := ResponseMap{"name": TextValue("   ")}
		_, err := ValidateResponses(testFields()[:1], responses)
		if flds := fieldErrors(t, err); flds["name"] != errTextRequired {
			t.Errorf("name error = %q; want %q", flds["name"], errTextRequired)
		}
	})

	t.Run("choice outside options is rejected", func(t *testing.T) {
		responses := ResponseMap{"track": TextValue("Mobile")}
		_, err := ValidateResponses(testFields()[2:3], responses)
		if flds := fieldErrors(t, err); flds["track"] != errInvalidChoice {
			t.Errorf("track error = %q; want %q", flds["track"], errInvalidChoice)
		}
	})

	t.Run("select placeholder counts as unanswered", func(t *testing.T) {
		// year is optional: the empty placeholder is simply no answer
		clean, err := ValidateResponses(testFields()[3:4], ResponseMap{"year": TextValue("")})
		if err != nil {
			t.Fatalf("ValidateResponses() failed: %v", err)
		}
		if _, ok := clean["year"]; ok {
			t.Error("placeholder answer should be absent from the clean map")
		}
	})

	t.Run("checkbox entry outside options is rejected", func(t *testing.T) {
		responses := ResponseMap{"langs": ChoicesValue("Go", "COBOL")}
		_, err := ValidateResponses(testFields()[4:5], responses)
		if flds := fieldErrors(t, err); flds["langs"] != errInvalidChoice {
			t.Errorf("langs error = %q; want %q", flds["langs"], errInvalidChoice)
		}
	})

	t.Run("chosen but not uploaded file counts as missing", func(t *testing.T) {
		responses := ResponseMap{"resume": FileValue("", "resume.pdf")}
		_, err := ValidateResponses(testFields()[5:6], responses)
		if flds := fieldErrors(t, err); flds["resume"] != errTextRequired {
			t.Errorf("resume error = %q; want %q", flds["resume"], errTextRequired)
		}
	})

	t.Run("disallowed file extension is rejected", func(t *testing.T) {
		responses := ResponseMap{"resume": FileValue("https://ik.example.com/x.png", "photo.png")}
		_, err := ValidateResponses(testFields()[5:6], responses)
		if flds := fieldErrors(t, err); flds["resume"] != errFileNotAllowed {
			t.Errorf("resume error = %q; want %q", flds["resume"], errFileNotAllowed)
		}
	})

	t.Run("wrong value shape is rejected", func(t *testing.T) {
		responses := ResponseMap{"name": ChoicesValue("Ada")}
		_, err := ValidateResponses(testFields()[:1], responses)
		if flds := fieldErrors(t, err); flds["name"] != errMalformedText {
			t.Errorf("name error = %q; want %q", flds["name"], errMalformedText)
		}
	})
}

func TestCompletionPercent(t *testing.T) {
	fields := testFields()

	tests := []struct {
		name      string
		fields    []form.Field
		responses ResponseMap
		want      int
	}{
		{"no fields", nil, nil, 100},
		{"nothing answered", fields, ResponseMap{}, 0},
		{"half answered", fields, ResponseMap{
			"name":  TextValue("Ada"),
			"track": TextValue("Backend"),
			"langs": ChoicesValue("Go"),
		}, 50},
		{"rounded", fields[:3], ResponseMap{
			"name": TextValue("Ada"),
		}, 33},
		{"blank answers do not count", fields, ResponseMap{
			"name": TextValue("  "),
			"bio":  TextValue(""),
		}, 0},
		{"all answered", fields, ResponseMap{
			"name":   TextValue("Ada"),
			"bio":    TextValue("..."),
			"track":  TextValue("Backend"),
			"year":   TextValue("2"),
			"langs":  ChoicesValue("Go"),
			"resume": FileValue("https://ik.example.com/r.pdf", "r.pdf"),
		}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercent(tt.fields, tt.responses); got != tt.want {
				t.Errorf("CompletionPercent() = %d; want %d", got, tt.want)
			}
		})
	}
}
