package submission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osatria/portal/core"
)

// Submission is an immutable record of one user's completed Response Map for
// one Form. It is created exactly once and never updated in place.
type Submission struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	FormSlug    string      `json:"formSlug" bson:"formSlug"`
	UserID      string      `json:"userId" bson:"userId"`
	UserEmail   string      `json:"userEmail" bson:"userEmail"`
	UserName    string      `json:"userName" bson:"userName"`
	Responses   ResponseMap `json:"responses" bson:"responses"`
	SubmittedAt time.Time   `json:"submittedAt" bson:"submittedAt"` // UTC, server-assigned
}

// NewSubmission contains information needed to record a Submission.
// The identity triple comes from the authenticated session verbatim;
// it is never re-derived later.
type NewSubmission struct {
	FormSlug  string      `json:"-" validate:"required"`
	UserID    string      `json:"-" validate:"required"`
	UserEmail string      `json:"-" validate:"required,email"`
	UserName  string      `json:"-"`
	Responses ResponseMap `json:"responses"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.FormSlug = core.CleanString(ns.FormSlug, true /* lower */)
	ns.UserEmail = core.CleanString(ns.UserEmail, true /* lower */)
	ns.UserName = core.CleanString(ns.UserName)
	if ns.UserName == "" {
		ns.UserName = ns.UserEmail
	}
	return validate.Struct(ns)
}
