package repo

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osatria/portal/core"
)

// Tiers rank how much a repository contribution is worth.
const (
	TierGold   = "gold"
	TierSilver = "silver"
	TierBronze = "bronze"
)

var AllTiers = []string{TierGold, TierSilver, TierBronze}

// Repository is a participating open-source project. Contributors pick one
// from the catalogue; maintainers see the ones assigned to them.
type Repository struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	Owner              string    `json:"owner" bson:"owner"`
	Name               string    `json:"name" bson:"name"`
	Description        string    `json:"description,omitempty" bson:"description,omitempty"`
	HTMLURL            string    `json:"htmlUrl" bson:"htmlUrl"`
	Tier               string    `json:"tier" bson:"tier"`
	MaintainerID       string    `json:"maintainerId,omitempty" bson:"maintainerId,omitempty"`
	MaintainerUsername string    `json:"maintainerUsername,omitempty" bson:"maintainerUsername,omitempty"`
	CreatedAt          time.Time `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt          time.Time `json:"updated_at" bson:"updatedAt"` // UTC
}

// FullName is the canonical "owner/name" form used for display and dedup.
func (r *Repository) FullName() string { return r.Owner + "/" + r.Name }

// NewRepository contains information needed to register a Repository.
type NewRepository struct {
	Owner              string `json:"owner" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Description        string `json:"description"`
	HTMLURL            string `json:"htmlUrl" validate:"omitempty,url"`
	Tier               string `json:"tier" validate:"required,oneof=gold silver bronze"`
	MaintainerUsername string `json:"maintainerUsername"`
}

func (nr *NewRepository) Validate(validate *validator.Validate) error {
	nr.Owner = core.CleanString(nr.Owner, true /* lower */)
	nr.Name = core.CleanString(nr.Name, true /* lower */)
	nr.Description = core.CleanString(nr.Description)
	nr.HTMLURL = core.CleanString(nr.HTMLURL)
	nr.Tier = core.CleanString(nr.Tier, true /* lower */)
	nr.MaintainerUsername = core.CleanString(nr.MaintainerUsername, true /* lower */)
	if nr.HTMLURL == "" {
		nr.HTMLURL = "https://github.com/" + nr.Owner + "/" + nr.Name
	}
	return validate.Struct(nr)
}

// UpdateRepository defines what information may be provided to modify an
// existing Repository. All fields are optional; zero values are ignored.
type UpdateRepository struct {
	Description string `json:"description"`
	HTMLURL     string `json:"htmlUrl" validate:"omitempty,url"`
	Tier        string `json:"tier" validate:"omitempty,oneof=gold silver bronze"`
}

func (ur *UpdateRepository) Validate(validate *validator.Validate) error {
	ur.Description = core.CleanString(ur.Description)
	ur.HTMLURL = core.CleanString(ur.HTMLURL)
	ur.Tier = core.CleanString(ur.Tier, true /* lower */)
	return validate.Struct(ur)
}

// WhitelistEntry marks a GitHub username as a recognized maintainer. Entries
// are consulted when deciding which repositories a user may manage.
type WhitelistEntry struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	GithubUsername string    `json:"githubUsername" bson:"githubUsername"`
	AddedBy        string    `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"createdAt"` // UTC
}

// NewWhitelistEntry contains information needed to whitelist a maintainer.
type NewWhitelistEntry struct {
	GithubUsername string `json:"githubUsername" validate:"required"`
	AddedBy        string `json:"-"`
}

func (nw *NewWhitelistEntry) Validate(validate *validator.Validate) error {
	nw.GithubUsername = core.CleanString(nw.GithubUsername, true /* lower */)
	return validate.Struct(nw)
}
