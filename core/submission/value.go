package submission

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/osatria/portal/core"
)

// ValueKind tags the shape a response Value carries.
type ValueKind string

const (
	KindText    ValueKind = "text"    // text, paragraph, radio, select
	KindChoices ValueKind = "choices" // checkbox
	KindFile    ValueKind = "file"    // upload
)

// FileRef is the durable handle returned by the upload host.
type FileRef struct {
	URL  string `json:"url" bson:"url"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Value is one answer in a Response Map. The shape depends on the field type,
// so it is modelled as an explicit tagged variant instead of an interface{}
// that must be type-sniffed at every use site. On the wire it keeps the
// natural shapes: a string, an array of strings, or a {url, name} object.
type Value struct {
	Kind    ValueKind
	Text    string
	Choices []string
	File    FileRef
}

func TextValue(s string) Value         { return Value{Kind: KindText, Text: s} }
func ChoicesValue(ss ...string) Value  { return Value{Kind: KindChoices, Choices: ss} }
func FileValue(url, name string) Value { return Value{Kind: KindFile, File: FileRef{URL: url, Name: name}} }

// IsEmpty reports whether the value counts as "not answered" under the
// per-kind rule: blank text, no choices, or no completed upload.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindChoices:
		return len(v.Choices) == 0
	case KindFile:
		return v.File.URL == ""
	default:
		return core.CleanString(v.Text) == ""
	}
}

var errMalformedValue = errors.New("malformed response value")

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindChoices:
		if v.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Choices)
	case KindFile:
		return json.Marshal(v.File)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errMalformedValue
	}
	switch data[0] {
	case '"':
		v.Kind = KindText
		return json.Unmarshal(data, &v.Text)
	case '[':
		v.Kind = KindChoices
		return json.Unmarshal(data, &v.Choices)
	case '{':
		v.Kind = KindFile
		return json.Unmarshal(data, &v.File)
	case 'n': // null -> empty text
		*v = TextValue("")
		return nil
	}
	return errMalformedValue
}

func (v Value) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.Kind {
	case KindChoices:
		choices := v.Choices
		if choices == nil {
			choices = []string{}
		}
		return bson.MarshalValue(choices)
	case KindFile:
		return bson.MarshalValue(v.File)
	default:
		return bson.MarshalValue(v.Text)
	}
}

func (v *Value) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		v.Kind = KindText
		return raw.Unmarshal(&v.Text)
	case bsontype.Array:
		v.Kind = KindChoices
		return raw.Unmarshal(&v.Choices)
	case bsontype.EmbeddedDocument:
		v.Kind = KindFile
		return raw.Unmarshal(&v.File)
	case bsontype.Null:
		*v = TextValue("")
		return nil
	}
	return errMalformedValue
}

// ResponseMap holds the in-progress or completed answers keyed by Field id.
type ResponseMap map[string]Value
