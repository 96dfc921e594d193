package inmemdb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/osatria/portal/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) query() []submission.Submission {
	subs := make([]submission.Submission, 0, len(repo.db.table))
	for _, sub := range repo.db.table {
		subs = append(subs, *sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].SubmittedAt.Before(subs[j].SubmittedAt) })
	return subs
}

func (repo *submissionRepository) HasSubmission(email, slug string) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	_, ok := repo.db.gate[[2]string{slug, email}]
	return ok, nil
}

func (repo *submissionRepository) CreateSubmission(sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := [2]string{sub.FormSlug, sub.UserEmail}
	if _, ok := repo.db.gate[key]; ok {
		return submission.Submission{}, submission.ErrAlreadySubmitted
	}

	sub.ID = uuid.New().String()
	repo.db.table[sub.ID] = &sub
	repo.db.gate[key] = sub.ID
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.table[id]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) QuerySubmissionsBySlug(slug string) ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var subs []submission.Submission
	for _, sub := range repo.query() {
		if sub.FormSlug == slug {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) QueryAllSubmissions() ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *submissionRepository) DeleteSubmissionByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sub, ok := repo.db.table[id]
	if !ok {
		return submission.ErrNotFound
	}
	delete(repo.db.gate, [2]string{sub.FormSlug, sub.UserEmail})
	delete(repo.db.table, id)
	return nil
}

func (repo *submissionRepository) DeleteSubmissionsBySlug(slug string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, sub := range repo.db.table {
		if sub.FormSlug == slug {
			delete(repo.db.gate, [2]string{sub.FormSlug, sub.UserEmail})
			delete(repo.db.table, id)
		}
	}
	return nil
}
