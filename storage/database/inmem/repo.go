package inmemdb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/osatria/portal/core/repo"
)

type repoStore struct {
	db        *repoTable
	whitelist *whitelistTable
}

func NewRepoStore(db *DB) repo.Store {
	return &repoStore{db: db.repo, whitelist: db.whitelist}
}

func (store *repoStore) query() []repo.Repository {
	repos := make([]repo.Repository, 0, len(store.db.table))
	for _, rp := range store.db.table {
		repos = append(repos, *rp)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].FullName() < repos[j].FullName() })
	return repos
}

func (store *repoStore) CheckRepoUniqueness(owner, name string) error {
	store.db.mutex.RLock()
	defer store.db.mutex.RUnlock()

	for _, rp := range store.query() {
		if rp.Owner == owner && rp.Name == name {
			return repo.ErrRepoExists
		}
	}
	return nil
}

func (store *repoStore) CreateRepo(rp repo.Repository) (repo.Repository, error) {
	store.db.mutex.Lock()
	defer store.db.mutex.Unlock()

	rp.ID = uuid.New().String()
	store.db.table[rp.ID] = &rp
	return rp, nil
}

func (store *repoStore) GetRepoByID(id string) (repo.Repository, error) {
	store.db.mutex.RLock()
	defer store.db.mutex.RUnlock()

	if rp, ok := store.db.table[id]; ok {
		return *rp, nil
	}
	return repo.Repository{}, repo.ErrNotFound
}

func (store *repoStore) QueryAllRepos() ([]repo.Repository, error) {
	store.db.mutex.RLock()
	defer store.db.mutex.RUnlock()
	return store.query(), nil
}

func (store *repoStore) QueryReposByMaintainerID(uid string) ([]repo.Repository, error) {
	store.db.mutex.RLock()
	defer store.db.mutex.RUnlock()

	var repos []repo.Repository
	for _, rp := range store.query() {
		if uid != "" && rp.MaintainerID == uid {
			repos = append(repos, rp)
		}
	}
	return repos, nil
}

func (store *repoStore) QueryReposByMaintainerUsername(ghUsername string) ([]repo.Repository, error) {
	store.db.mutex.RLock()
	defer store.db.mutex.RUnlock()

	var repos []repo.Repository
	for _, rp := range store.query() {
		if ghUsername != "" && rp.MaintainerUsername == ghUsername {
			repos = append(repos, rp)
		}
	}
	return repos, nil
}

func (store *repoStore) UpdateRepo(rp repo.Repository) (repo.Repository, error) {
	store.db.mutex.Lock()
	defer store.db.mutex.Unlock()

	if _, ok := store.db.table[rp.ID]; !ok {
		return repo.Repository{}, repo.ErrNotFound
	}
	store.db.table[rp.ID] = &rp
	return rp, nil
}

func (store *repoStore) DeleteRepoByID(id string) error {
	store.db.mutex.Lock()
	defer store.db.mutex.Unlock()

	if _, ok := store.db.table[id]; !ok {
		return repo.ErrNotFound
	}
	delete(store.db.table, id)
	return nil
}

func (store *repoStore) CreateWhitelistEntry(we repo.WhitelistEntry) (repo.WhitelistEntry, error) {
	store.whitelist.mutex.Lock()
	defer store.whitelist.mutex.Unlock()

	for _, entry := range store.whitelist.table {
		if entry.GithubUsername == we.GithubUsername {
			return repo.WhitelistEntry{}, repo.ErrAlreadyWhitelisted
		}
	}
	we.ID = uuid.New().String()
	store.whitelist.table[we.ID] = &we
	return we, nil
}

func (store *repoStore) GetWhitelistEntry(ghUsername string) (repo.WhitelistEntry, error) {
	store.whitelist.mutex.RLock()
	defer store.whitelist.mutex.RUnlock()

	for _, entry := range store.whitelist.table {
		if entry.GithubUsername == ghUsername {
			return *entry, nil
		}
	}
	return repo.WhitelistEntry{}, repo.ErrNotFound
}

func (store *repoStore) QueryWhitelist() ([]repo.WhitelistEntry, error) {
	store.whitelist.mutex.RLock()
	defer store.whitelist.mutex.RUnlock()

	entries := make([]repo.WhitelistEntry, 0, len(store.whitelist.table))
	for _, entry := range store.whitelist.table {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].GithubUsername < entries[j].GithubUsername })
	return entries, nil
}

func (store *repoStore) DeleteWhitelistEntry(id string) error {
	store.whitelist.mutex.Lock()
	defer store.whitelist.mutex.Unlock()

	if _, ok := store.whitelist.table[id]; !ok {
		return repo.ErrNotFound
	}
	delete(store.whitelist.table, id)
	return nil
}
