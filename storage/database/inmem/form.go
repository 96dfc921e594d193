package inmemdb

import (
	"sort"

	"github.com/osatria/portal/core/form"
)

type formRepository struct {
	db *formTable
}

func NewFormRepository(db *DB) form.Repository {
	return &formRepository{db: db.form}
}

func (repo *formRepository) query() []form.Form {
	forms := make([]form.Form, 0, len(repo.db.table))
	for _, frm := range repo.db.table {
		forms = append(forms, *frm)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].CreatedAt.Before(forms[j].CreatedAt) })
	return forms
}

func (repo *formRepository) CheckSlugUniqueness(slug string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[slug]; ok {
		return form.ErrSlugExists
	}
	return nil
}

func (repo *formRepository) CreateForm(frm form.Form) (form.Form, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[frm.Slug]; ok {
		return form.Form{}, form.ErrSlugExists
	}
	repo.db.table[frm.Slug] = &frm
	return frm, nil
}

func (repo *formRepository) GetFormBySlug(slug string) (form.Form, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if frm, ok := repo.db.table[slug]; ok {
		return *frm, nil
	}
	return form.Form{}, form.ErrNotFound
}

func (repo *formRepository) QueryAllForms() ([]form.Form, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *formRepository) UpdateForm(frm form.Form) (form.Form, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[frm.Slug]
	if !ok {
		return form.Form{}, form.ErrNotFound
	}
	frm.CreatedAt = orig.CreatedAt
	repo.db.table[frm.Slug] = &frm
	return frm, nil
}

func (repo *formRepository) DeleteFormBySlug(slug string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[slug]; !ok {
		return form.ErrNotFound
	}
	delete(repo.db.table, slug)
	return nil
}
