package submission

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Value
	}{
		{"string", `"Backend"`, TextValue("Backend")},
		{"array", `["Go","Rust"]`, ChoicesValue("Go", "Rust")},
		{"object", `{"url":"https://ik.example.com/r.pdf","name":"r.pdf"}`,
			FileValue("https://ik.example.com/r.pdf", "r.pdf")},
		{"null", `null`, TextValue("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Value
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.data, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v; want %+v", got, tt.want)
			}
		})
	}

	var v Value
	if err := json.Unmarshal([]byte(`42`), &v); err == nil {
		t.Error("number should not unmarshal into a Value")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"text keeps its string shape", TextValue("Backend"), `"Backend"`},
		{"choices keep their array shape", ChoicesValue("Go"), `["Go"]`},
		{"nil choices marshal as empty array", Value{Kind: KindChoices}, `[]`},
		{"file keeps its object shape", FileValue("https://ik.example.com/r.pdf", "r.pdf"),
			`{"url":"https://ik.example.com/r.pdf","name":"r.pdf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.val)
			if err != nil {
				t.Fatalf("Marshal(%+v) failed: %v", tt.val, err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s; want %s", got, tt.want)
			}
		})
	}
}

func TestResponseMapRoundTrip(t *testing.T) {
	responses := ResponseMap{
		"name":   TextValue("Ada"),
		"langs":  ChoicesValue("Go", "Rust"),
		"resume": FileValue("https://ik.example.com/r.pdf", "r.pdf"),
	}

	data, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back ResponseMap
	if err = json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(back, responses) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, responses)
	}
}

func TestValueIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"blank text", TextValue("  "), true},
		{"text", TextValue("x"), false},
		{"no choices", Value{Kind: KindChoices}, true},
		{"choices", ChoicesValue("Go"), false},
		{"chosen but not uploaded", FileValue("", "r.pdf"), true},
		{"uploaded", FileValue("https://ik.example.com/r.pdf", ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty(%+v) = %v; want %v", tt.val, got, tt.want)
			}
		})
	}
}
