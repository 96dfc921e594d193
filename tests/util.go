package testutil

import (
	"testing"
	"time"

	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	uid, name, email, ghUsername, role string,
	points int,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr, err := repo.CreateUser(user.User{
		UID:            uid,
		Email:          email,
		DisplayName:    name,
		GithubUsername: ghUsername,
		Role:           role,
		Points:         points,
		CreatedAt:      tstamp,
		UpdatedAt:      tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateForm(
	t *testing.T,
	repo form.Repository,
	slug, title string,
	fields ...form.Field,
) form.Form {
	t.Helper()

	now := time.Now().UTC()
	frm, err := repo.CreateForm(form.Form{
		Slug:      slug,
		Title:     title,
		Fields:    form.NormalizeFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateForm() failed: %v", err)
	}
	return frm
}

func CreateSubmission(
	t *testing.T,
	repo submission.Repository,
	slug, uid, email, name string,
	responses submission.ResponseMap,
) submission.Submission {
	t.Helper()

	sub, err := repo.CreateSubmission(submission.Submission{
		FormSlug:    slug,
		UserID:      uid,
		UserEmail:   email,
		UserName:    name,
		Responses:   responses,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
