package form

import (
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/osatria/portal/core"
)

// FieldType is the kind of question a Field represents.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldParagraph FieldType = "paragraph"
	FieldRadio     FieldType = "radio"
	FieldCheckbox  FieldType = "checkbox"
	FieldSelect    FieldType = "select"
	FieldUpload    FieldType = "upload"
)

var AllFieldTypes = []FieldType{FieldText, FieldParagraph, FieldRadio, FieldCheckbox, FieldSelect, FieldUpload}

func (t FieldType) IsValid() bool {
	for _, ft := range AllFieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// HasOptions reports whether the type carries an options list.
func (t FieldType) HasOptions() bool {
	return t == FieldRadio || t == FieldCheckbox || t == FieldSelect
}

// Field is the schema for one question.
// Auxiliary fields are type-correlated: `options` exists only for choice types,
// `acceptedFileTypes` only for uploads. NormalizeFields enforces this before persistence.
type Field struct {
	ID                string         `json:"id" bson:"id"`
	Type              FieldType      `json:"type" bson:"type"`
	Label             string         `json:"label" bson:"label"`
	Required          bool           `json:"required" bson:"required"`
	Options           []string       `json:"options,omitempty" bson:"options,omitempty"`
	AcceptedFileTypes []FileCategory `json:"acceptedFileTypes,omitempty" bson:"acceptedFileTypes,omitempty"`
}

// Form is a named, ordered set of Fields, identified by a unique slug.
// The slug is immutable once the Form exists: Submissions reference it.
type Form struct {
	Slug        string    `json:"slug" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Fields      []Field   `json:"fields" bson:"fields"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"` // UTC
}

// FieldByID returns the Field with the given id, if any.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.ID == id {
			return fld, true
		}
	}
	return Field{}, false
}

// NormalizeFields prepares a field list for persistence:
// - assigns a fresh id to fields that have none;
// - trims labels;
// - for choice types, trims options and drops empty ones;
// - for all other types, omits options entirely;
// - for uploads, drops invalid/duplicate file categories; omitted for other types.
// Normalizing an already-normalized list is a no-op.
func NormalizeFields(fields []Field) []Field {
	normed := make([]Field, 0, len(fields))
	for _, fld := range fields {
		if fld.ID == "" {
			fld.ID = uuid.New().String()
		}
		fld.Label = core.CleanString(fld.Label)

		if fld.Type.HasOptions() {
			opts := make([]string, 0, len(fld.Options))
			for _, opt := range fld.Options {
				if opt = core.CleanString(opt); opt != "" {
					opts = append(opts, opt)
				}
			}
			if len(opts) == 0 {
				opts = nil
			}
			fld.Options = opts
		} else {
			fld.Options = nil
		}

		if fld.Type == FieldUpload {
			seen := make(map[FileCategory]bool, len(fld.AcceptedFileTypes))
			cats := make([]FileCategory, 0, len(fld.AcceptedFileTypes))
			for _, cat := range fld.AcceptedFileTypes {
				if cat.IsValid() && !seen[cat] {
					seen[cat] = true
					cats = append(cats, cat)
				}
			}
			if len(cats) == 0 {
				cats = nil
			}
			fld.AcceptedFileTypes = cats
		} else {
			fld.AcceptedFileTypes = nil
		}

		normed = append(normed, fld)
	}
	return normed
}

// NewField returns a Field of the given type with a fresh id and
// type-appropriate empty defaults, as the builder creates them.
func NewField(typ FieldType) Field {
	fld := Field{ID: uuid.New().String(), Type: typ}
	if typ.HasOptions() {
		fld.Options = []string{""}
	} else if typ == FieldUpload {
		fld.AcceptedFileTypes = []FileCategory{}
	}
	return fld
}

// NewForm contains information needed to create a new Form.
type NewForm struct {
	Slug        string  `json:"slug" validate:"omitempty,slug"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

func (nf *NewForm) Validate(validate *validator.Validate, translator ut.Translator, svc ServiceInterface) error {
	nf.Slug = core.CleanString(nf.Slug, true /* lower */)
	nf.Title = core.CleanString(nf.Title)

	if err := validate.Struct(nf); err != nil {
		return err
	}
	if err := validateFieldTypes(nf.Fields); err != nil {
		return err
	}

	if nf.Slug == "" {
		nf.Slug = core.Slugify(nf.Title)
	}
	if nf.Slug == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "slug", Error: "a slug could not be derived from the title"})
	}
	return svc.CheckSlugUniqueness(nf.Slug)
}

// UpdateForm defines what may be modified on an existing Form.
// The slug is absent on purpose: editing it would orphan existing Submissions.
type UpdateForm struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

func (uf *UpdateForm) Validate(validate *validator.Validate, origFrm Form) error {
	title := core.CleanString(uf.Title)
	if title != "" {
		uf.Title = title
	} else {
		uf.Title = origFrm.Title
	}

	if err := validate.Struct(uf); err != nil {
		return err
	}
	return validateFieldTypes(uf.Fields)
}

func validateFieldTypes(fields []Field) error {
	var fldErrs []core.FieldError
	for i, fld := range fields {
		if !fld.Type.IsValid() {
			fldErrs = append(fldErrs, core.FieldError{
				Field: "fields[" + strconv.Itoa(i) + "].type",
				Error: "unknown field type",
			})
		}
	}
	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}
