package repo

import (
	"errors"
	"time"

	"github.com/osatria/portal/core"
)

var (
	// errors
	ErrNotFound           = errors.New("repository not found")
	ErrRepoExists         = errors.New("a repository with this owner and name already exists")
	ErrAlreadyWhitelisted = errors.New("this username is already whitelisted")
)

type (
	// Store persists Repository records. It is not called Repository to keep
	// that name for the domain entity itself.
	Store interface {
		CheckRepoUniqueness(owner, name string) error
		CreateRepo(rp Repository) (Repository, error)
		GetRepoByID(id string) (Repository, error)
		QueryAllRepos() ([]Repository, error)
		QueryReposByMaintainerID(uid string) ([]Repository, error)
		QueryReposByMaintainerUsername(ghUsername string) ([]Repository, error)
		UpdateRepo(rp Repository) (Repository, error)
		DeleteRepoByID(id string) error

		CreateWhitelistEntry(we WhitelistEntry) (WhitelistEntry, error)
		GetWhitelistEntry(ghUsername string) (WhitelistEntry, error)
		QueryWhitelist() ([]WhitelistEntry, error)
		DeleteWhitelistEntry(id string) error
	}

	ServiceInterface interface {
		Create(nr NewRepository) (Repository, error)
		GetByID(id string) (Repository, error)
		QueryAll() ([]Repository, error)
		QueryByMaintainer(uid, ghUsername string) ([]Repository, error)
		Update(id string, ur UpdateRepository) (Repository, error)
		AssignMaintainer(id, uid, ghUsername string) (Repository, error)
		Delete(id string) error

		Whitelist(nw NewWhitelistEntry) (WhitelistEntry, error)
		QueryWhitelist() ([]WhitelistEntry, error)
		IsWhitelisted(ghUsername string) (bool, error)
		RemoveFromWhitelist(id string) error
	}

	Service struct {
		store Store
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(nr NewRepository) (Repository, error) {
	if err := svc.store.CheckRepoUniqueness(nr.Owner, nr.Name); err != nil {
		if err == ErrRepoExists {
			return Repository{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: err.Error()})
		}
		return Repository{}, err
	}

	now := time.Now().UTC()
	return svc.store.CreateRepo(Repository{
		Owner:              nr.Owner,
		Name:               nr.Name,
		Description:        nr.Description,
		HTMLURL:            nr.HTMLURL,
		Tier:               nr.Tier,
		MaintainerUsername: nr.MaintainerUsername,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}

func (svc *Service) GetByID(id string) (Repository, error) {
	return svc.store.GetRepoByID(id)
}

func (svc *Service) QueryAll() ([]Repository, error) {
	return svc.store.QueryAllRepos()
}

// QueryByMaintainer returns the repositories a maintainer manages, matched
// either by their user id (explicit assignment) or by their GitHub username
// (assignment made before they ever signed in). Duplicates are merged.
func (svc *Service) QueryByMaintainer(uid, ghUsername string) ([]Repository, error) {
	byID, err := svc.store.QueryReposByMaintainerID(uid)
	if err != nil {
		return nil, err
	}

	ghUsername = core.CleanString(ghUsername, true /* lower */)
	if ghUsername == "" {
		return byID, nil
	}
	byUsername, err := svc.store.QueryReposByMaintainerUsername(ghUsername)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(byID))
	for _, rp := range byID {
		seen[rp.ID] = true
	}
	for _, rp := range byUsername {
		if !seen[rp.ID] {
			byID = append(byID, rp)
		}
	}
	return byID, nil
}

func (svc *Service) Update(id string, ur UpdateRepository) (Repository, error) {
	rp, err := svc.store.GetRepoByID(id)
	if err != nil {
		return Repository{}, err
	}

	if ur.Description != "" {
		rp.Description = ur.Description
	}
	if ur.HTMLURL != "" {
		rp.HTMLURL = ur.HTMLURL
	}
	if ur.Tier != "" {
		rp.Tier = ur.Tier
	}
	rp.UpdatedAt = time.Now().UTC()
	return svc.store.UpdateRepo(rp)
}

// AssignMaintainer binds a repository to a maintainer. Either the user id or
// the GitHub username may be empty; whichever is present is recorded.
func (svc *Service) AssignMaintainer(id, uid, ghUsername string) (Repository, error) {
	rp, err := svc.store.GetRepoByID(id)
	if err != nil {
		return Repository{}, err
	}
	rp.MaintainerID = core.CleanString(uid)
	rp.MaintainerUsername = core.CleanString(ghUsername, true /* lower */)
	rp.UpdatedAt = time.Now().UTC()
	return svc.store.UpdateRepo(rp)
}

func (svc *Service) Delete(id string) error {
	return svc.store.DeleteRepoByID(id)
}

func (svc *Service) Whitelist(nw NewWhitelistEntry) (WhitelistEntry, error) {
	if _, err := svc.store.GetWhitelistEntry(nw.GithubUsername); err == nil {
		return WhitelistEntry{}, core.NewValidationError(nil,
			core.FieldError{Field: "githubUsername", Error: ErrAlreadyWhitelisted.Error()})
	} else if err != ErrNotFound {
		return WhitelistEntry{}, err
	}

	return svc.store.CreateWhitelistEntry(WhitelistEntry{
		GithubUsername: nw.GithubUsername,
		AddedBy:        nw.AddedBy,
		CreatedAt:      time.Now().UTC(),
	})
}

func (svc *Service) QueryWhitelist() ([]WhitelistEntry, error) {
	return svc.store.QueryWhitelist()
}

// IsWhitelisted reports whether a GitHub username is a recognized maintainer.
// A store failure propagates; it must not be read as "not whitelisted".
func (svc *Service) IsWhitelisted(ghUsername string) (bool, error) {
	_, err := svc.store.GetWhitelistEntry(core.CleanString(ghUsername, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *Service) RemoveFromWhitelist(id string) error {
	return svc.store.DeleteWhitelistEntry(id)
}
