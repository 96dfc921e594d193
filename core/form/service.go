package form

import (
	"errors"
	"time"

	"github.com/osatria/portal/core"
)

var (
	// errors
	ErrNotFound   = errors.New("form not found")
	ErrSlugExists = errors.New("a form with this slug already exists")
)

type (
	Repository interface {
		CheckSlugUniqueness(slug string) error
		CreateForm(frm Form) (Form, error)
		GetFormBySlug(slug string) (Form, error)
		QueryAllForms() ([]Form, error)
		// UpdateForm replaces title, description and the whole field sequence;
		// the slug and CreatedAt are never touched.
		UpdateForm(frm Form) (Form, error)
		DeleteFormBySlug(slug string) error
	}

	ServiceInterface interface {
		CheckSlugUniqueness(slug string) error
		Create(nf NewForm) (Form, error)
		GetBySlug(slug string) (Form, error)
		QueryAll() ([]Form, error)
		Update(slug string, uf UpdateForm) (Form, error)
		Delete(slug string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckSlugUniqueness(slug string) error {
	if err := svc.repo.CheckSlugUniqueness(slug); err != nil {
		if err == ErrSlugExists {
			return core.NewValidationError(err, core.FieldError{Field: "slug", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nf NewForm) (Form, error) {
	now := time.Now().UTC()
	frm := Form{
		Slug:        nf.Slug,
		Title:       nf.Title,
		Description: core.CleanString(nf.Description),
		Fields:      NormalizeFields(nf.Fields),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateForm(frm)
}

func (svc *Service) GetBySlug(slug string) (Form, error) {
	return svc.repo.GetFormBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *Service) QueryAll() ([]Form, error) {
	return svc.repo.QueryAllForms()
}

func (svc *Service) Update(slug string, uf UpdateForm) (Form, error) {
	frm := Form{
		Slug:        slug,
		Title:       uf.Title,
		Description: core.CleanString(uf.Description),
		Fields:      NormalizeFields(uf.Fields),
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateForm(frm)
}

// Delete removes the Form only. Dependent Submissions are the caller's
// responsibility: remove them first (the store has no foreign keys).
func (svc *Service) Delete(slug string) error {
	return svc.repo.DeleteFormBySlug(slug)
}
