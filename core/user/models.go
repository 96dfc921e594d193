package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osatria/portal/core"
)

// Roles
const (
	RoleAdmin       = "admin"
	RoleMaintainer  = "maintainer"
	RoleContributor = "contributor"
)

var AllRoles = []string{RoleAdmin, RoleMaintainer, RoleContributor}

// User is a program participant, keyed by the identity provider's uid.
// The record accumulates program state (role, points) that the provider
// knows nothing about.
type User struct {
	UID            string    `json:"uid" bson:"_id"`
	Email          string    `json:"email" bson:"email"`
	DisplayName    string    `json:"displayName" bson:"displayName"`
	GithubUsername string    `json:"githubUsername,omitempty" bson:"githubUsername,omitempty"`
	PhotoURL       string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role           string    `json:"role" bson:"role"`
	Points         int       `json:"points" bson:"points"`
	CreatedAt      time.Time `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt      time.Time `json:"updated_at" bson:"updatedAt"` // UTC
}

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsMaintainer() bool { return u.Role == RoleMaintainer }

// Identity is the {uid, email, displayName} triple supplied by the external
// identity provider for the current session. It is trusted verbatim.
type Identity struct {
	UID            string `json:"uid"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	GithubUsername string `json:"githubUsername,omitempty"`
	PhotoURL       string `json:"photoURL,omitempty"`
}

// UpdateUserRole defines the admin role-change payload.
type UpdateUserRole struct {
	Role string `json:"role" validate:"required,oneof=admin maintainer contributor"`
}

func (ur *UpdateUserRole) Validate(validate *validator.Validate) error {
	ur.Role = core.CleanString(ur.Role, true /* lower */)
	return validate.Struct(ur)
}

// AddUserPoints defines the admin points-adjustment payload.
type AddUserPoints struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason"`
}

func (ap *AddUserPoints) Validate(validate *validator.Validate) error {
	ap.Reason = core.CleanString(ap.Reason)
	return validate.Struct(ap)
}
