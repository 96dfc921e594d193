package inmemdb

import (
	"sync"

	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
)

// DB is an in-memory document store used by tests and local development.
// Each table guards itself with the shared mutex; the maps are keyed the same
// way the real store keys its collections.
type DB struct {
	form       *formTable
	submission *submissionTable
	user       *userTable
	repo       *repoTable
	whitelist  *whitelistTable
}

type formTable struct {
	mutex sync.RWMutex
	table map[string]*form.Form // key: slug
}

type submissionTable struct {
	mutex sync.RWMutex
	table map[string]*submission.Submission // key: id
	// gate mirrors the unique (formSlug, userEmail) index
	gate map[[2]string]string // key: {slug, email}; value: submission id
}

type userTable struct {
	mutex sync.RWMutex
	table map[string]*user.User // key: uid
}

type repoTable struct {
	mutex sync.RWMutex
	table map[string]*repo.Repository // key: id
}

type whitelistTable struct {
	mutex sync.RWMutex
	table map[string]*repo.WhitelistEntry // key: id
}

func NewDB() *DB {
	return &DB{
		form:       &formTable{table: make(map[string]*form.Form)},
		submission: &submissionTable{table: make(map[string]*submission.Submission), gate: make(map[[2]string]string)},
		user:       &userTable{table: make(map[string]*user.User)},
		repo:       &repoTable{table: make(map[string]*repo.Repository)},
		whitelist:  &whitelistTable{table: make(map[string]*repo.WhitelistEntry)},
	}
}
