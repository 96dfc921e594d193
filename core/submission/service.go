package submission

import (
	"errors"
	"net/mail"
	"time"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
)

var (
	// errors
	ErrNotFound = errors.New("submission not found")
	// ErrAlreadySubmitted is returned by the store when the unique
	// (formSlug, userEmail) index rejects a second insert. It closes the race
	// between two concurrent sessions that both passed the Gate.
	ErrAlreadySubmitted = errors.New("a submission for this form already exists")
)

type (
	Repository interface {
		// HasSubmission filters on exact equality of both formSlug and userEmail.
		HasSubmission(email, slug string) (bool, error)
		CreateSubmission(sub Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		QuerySubmissionsBySlug(slug string) ([]Submission, error)
		QueryAllSubmissions() ([]Submission, error)
		DeleteSubmissionByID(id string) error
		DeleteSubmissionsBySlug(slug string) error
	}

	ServiceInterface interface {
		HasSubmitted(email, slug string) (bool, error)
		Submit(frm form.Form, ns NewSubmission) (Submission, error)
		GetByID(id string) (Submission, error)
		QueryBySlug(slug string) ([]Submission, error)
		QueryAll() ([]Submission, error)
		Delete(id string) error
		DeleteForForm(slug string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// HasSubmitted is the Submission Gate: it decides, before a form is rendered,
// whether the user already has a Submission for it. A store failure propagates
// to the caller; it must never be read as "not submitted".
func (svc *Service) HasSubmitted(email, slug string) (bool, error) {
	return svc.repo.HasSubmission(
		core.CleanString(email, true /* lower */),
		core.CleanString(slug, true /* lower */),
	)
}

// Submit is the Submission Writer: it validates the Response Map against the
// schema and persists exactly one immutable record. Validation here is
// authoritative; the renderer's own checks are a UX convenience only.
func (svc *Service) Submit(frm form.Form, ns NewSubmission) (Submission, error) {
	responses, err := ValidateResponses(frm.Fields, ns.Responses)
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		FormSlug:    ns.FormSlug,
		UserID:      ns.UserID,
		UserEmail:   ns.UserEmail,
		UserName:    ns.UserName,
		Responses:   responses,
		SubmittedAt: time.Now().UTC(),
	}
	sub, err = svc.repo.CreateSubmission(sub)
	if err != nil {
		return Submission{}, err
	}

	svc.sendReceipt(sub, frm)
	return sub, nil
}

func (svc *Service) GetByID(id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(id)
}

func (svc *Service) QueryBySlug(slug string) ([]Submission, error) {
	return svc.repo.QuerySubmissionsBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *Service) QueryAll() ([]Submission, error) {
	return svc.repo.QueryAllSubmissions()
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteSubmissionByID(id)
}

// DeleteForForm removes every Submission referencing the slug. Called before a
// Form is deleted; the store itself enforces no referential integrity.
func (svc *Service) DeleteForForm(slug string) error {
	return svc.repo.DeleteSubmissionsBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *Service) sendReceipt(sub Submission, frm form.Form) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: sub.UserName, Address: sub.UserEmail}},
		Subject:      "Submission received: " + frm.Title,
		TemplateName: "submission-received",
		TemplateData: struct {
			UserName  string
			FormTitle string
		}{sub.UserName, frm.Title},
	})
}
