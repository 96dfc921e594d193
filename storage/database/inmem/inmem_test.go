package inmemdb

import (
	"testing"

	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
	"github.com/osatria/portal/tests"
)

func TestFormRepository_slugUniqueness(t *testing.T) {
	db := NewDB()
	frmRepo := NewFormRepository(db)
	testutil.CreateForm(t, frmRepo, "ospp-2026", "Open Source Program 2026")

	if err := frmRepo.CheckSlugUniqueness("ospp-2026"); err != form.ErrSlugExists {
		t.Errorf("CheckSlugUniqueness() = %v; want %v", err, form.ErrSlugExists)
	}
	if err := frmRepo.CheckSlugUniqueness("ospp-2027"); err != nil {
		t.Errorf("CheckSlugUniqueness() = %v; want nil", err)
	}
	if _, err := frmRepo.CreateForm(form.Form{Slug: "ospp-2026", Title: "dup"}); err != form.ErrSlugExists {
		t.Errorf("CreateForm(dup) = %v; want %v", err, form.ErrSlugExists)
	}
}

func TestFormRepository_updatePreservesCreatedAt(t *testing.T) {
	db := NewDB()
	frmRepo := NewFormRepository(db)
	frm := testutil.CreateForm(t, frmRepo, "ospp-2026", "Open Source Program 2026")

	updated, err := frmRepo.UpdateForm(form.Form{Slug: frm.Slug, Title: "Renamed"})
	if err != nil {
		t.Fatalf("UpdateForm() failed: %v", err)
	}
	if !updated.CreatedAt.Equal(frm.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", frm.CreatedAt, updated.CreatedAt)
	}
}

func TestSubmissionRepository_gate(t *testing.T) {
	db := NewDB()
	subRepo := NewSubmissionRepository(db)

	ok, err := subRepo.HasSubmission("ada@atria.edu", "ospp-2026")
	if err != nil || ok {
		t.Fatalf("HasSubmission() = %v, %v; want false, nil", ok, err)
	}

	testutil.CreateSubmission(t, subRepo, "ospp-2026", "u1", "ada@atria.edu", "Ada",
		submission.ResponseMap{"name": submission.TextValue("Ada")})

	ok, err = subRepo.HasSubmission("ada@atria.edu", "ospp-2026")
	if err != nil || !ok {
		t.Errorf("HasSubmission() = %v, %v; want true, nil", ok, err)
	}

	// exact equality on both keys
	if ok, _ = subRepo.HasSubmission("ada@atria.edu", "ospp-2027"); ok {
		t.Error("different slug should not match")
	}
	if ok, _ = subRepo.HasSubmission("grace@atria.edu", "ospp-2026"); ok {
		t.Error("different email should not match")
	}
}

func TestSubmissionRepository_duplicateInsertRejected(t *testing.T) {
	db := NewDB()
	subRepo := NewSubmissionRepository(db)
	testutil.CreateSubmission(t, subRepo, "ospp-2026", "u1", "ada@atria.edu", "Ada", nil)

	_, err := subRepo.CreateSubmission(submission.Submission{
		FormSlug: "ospp-2026", UserID: "u1", UserEmail: "ada@atria.edu",
	})
	if err != submission.ErrAlreadySubmitted {
		t.Errorf("CreateSubmission(dup) = %v; want %v", err, submission.ErrAlreadySubmitted)
	}
}

func TestSubmissionRepository_deleteFreesGate(t *testing.T) {
	db := NewDB()
	subRepo := NewSubmissionRepository(db)
	sub := testutil.CreateSubmission(t, subRepo, "ospp-2026", "u1", "ada@atria.edu", "Ada", nil)

	if err := subRepo.DeleteSubmissionByID(sub.ID); err != nil {
		t.Fatalf("DeleteSubmissionByID() failed: %v", err)
	}
	if ok, _ := subRepo.HasSubmission("ada@atria.edu", "ospp-2026"); ok {
		t.Error("gate still set after delete")
	}
	if _, err := subRepo.CreateSubmission(submission.Submission{
		FormSlug: "ospp-2026", UserID: "u1", UserEmail: "ada@atria.edu",
	}); err != nil {
		t.Errorf("re-submitting after delete failed: %v", err)
	}
}

func TestUserRepository_leaderboard(t *testing.T) {
	db := NewDB()
	usrRepo := NewUserRepository(db)
	testutil.CreateUser(t, usrRepo, "u1", "Ada", "ada@atria.edu", "ada", user.RoleContributor, 30)
	testutil.CreateUser(t, usrRepo, "u2", "Grace", "grace@atria.edu", "grace", user.RoleContributor, 0)
	testutil.CreateUser(t, usrRepo, "u3", "Linus", "linus@atria.edu", "linus", user.RoleContributor, 50)
	testutil.CreateUser(t, usrRepo, "u4", "Ken", "ken@atria.edu", "ken", user.RoleContributor, 10)

	users, err := usrRepo.QueryLeaderboard(2)
	if err != nil {
		t.Fatalf("QueryLeaderboard() failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d; want 2", len(users))
	}
	if users[0].UID != "u3" || users[1].UID != "u1" {
		t.Errorf("order = %s, %s; want u3, u1", users[0].UID, users[1].UID)
	}

	// zero-point users never appear
	users, _ = usrRepo.QueryLeaderboard(10)
	for _, usr := range users {
		if usr.Points == 0 {
			t.Errorf("%s has 0 points and should be filtered out", usr.UID)
		}
	}
}

func TestUserRepository_pointsNeverNegative(t *testing.T) {
	db := NewDB()
	usrRepo := NewUserRepository(db)
	testutil.CreateUser(t, usrRepo, "u1", "Ada", "ada@atria.edu", "ada", user.RoleContributor, 5)

	usr, err := usrRepo.AddUserPoints("u1", -20)
	if err != nil {
		t.Fatalf("AddUserPoints() failed: %v", err)
	}
	if usr.Points != 0 {
		t.Errorf("points = %d; want 0", usr.Points)
	}
}

func TestUserService_ensureUser(t *testing.T) {
	db := NewDB()
	svc := user.NewService(NewUserRepository(db))

	idn := user.Identity{UID: "u1", Email: "Ada@Atria.edu", DisplayName: "Ada", GithubUsername: "AdaL"}
	usr, err := svc.EnsureUser(idn)
	if err != nil {
		t.Fatalf("EnsureUser() failed: %v", err)
	}
	if usr.Role != user.RoleContributor {
		t.Errorf("role = %s; want %s", usr.Role, user.RoleContributor)
	}
	if usr.Email != "ada@atria.edu" || usr.GithubUsername != "adal" {
		t.Errorf("identity not normalized: %+v", usr)
	}

	// a later sight refreshes the profile but never touches role or points
	if _, err = svc.SetRole("u1", user.RoleMaintainer); err != nil {
		t.Fatalf("SetRole() failed: %v", err)
	}
	if _, err = svc.AddPoints("u1", 40); err != nil {
		t.Fatalf("AddPoints() failed: %v", err)
	}
	idn.DisplayName = "Ada Lovelace"
	usr, err = svc.EnsureUser(idn)
	if err != nil {
		t.Fatalf("EnsureUser() failed: %v", err)
	}
	if usr.DisplayName != "Ada Lovelace" {
		t.Errorf("displayName = %q; want refresh", usr.DisplayName)
	}
	if usr.Role != user.RoleMaintainer || usr.Points != 40 {
		t.Errorf("role/points reset on re-ensure: %+v", usr)
	}
}

func TestRepoStore_whitelist(t *testing.T) {
	db := NewDB()
	svc := repo.NewService(NewRepoStore(db))

	entry, err := svc.Whitelist(repo.NewWhitelistEntry{GithubUsername: "adal", AddedBy: "admin"})
	if err != nil {
		t.Fatalf("Whitelist() failed: %v", err)
	}

	if ok, _ := svc.IsWhitelisted("adal"); !ok {
		t.Error("IsWhitelisted(adal) = false; want true")
	}
	if ok, _ := svc.IsWhitelisted("nobody"); ok {
		t.Error("IsWhitelisted(nobody) = true; want false")
	}

	if _, err = svc.Whitelist(repo.NewWhitelistEntry{GithubUsername: "adal"}); err == nil {
		t.Error("duplicate whitelist entry should be rejected")
	}

	if err = svc.RemoveFromWhitelist(entry.ID); err != nil {
		t.Fatalf("RemoveFromWhitelist() failed: %v", err)
	}
	if ok, _ := svc.IsWhitelisted("adal"); ok {
		t.Error("entry still whitelisted after removal")
	}
}

func TestRepoService_queryByMaintainer(t *testing.T) {
	db := NewDB()
	store := NewRepoStore(db)
	svc := repo.NewService(store)

	byID, err := store.CreateRepo(repo.Repository{Owner: "atria", Name: "portal", Tier: repo.TierGold, MaintainerID: "u1"})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}
	byUsername, err := store.CreateRepo(repo.Repository{Owner: "atria", Name: "docs", Tier: repo.TierBronze, MaintainerUsername: "adal"})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}
	both, err := store.CreateRepo(repo.Repository{Owner: "atria", Name: "infra", Tier: repo.TierSilver, MaintainerID: "u1", MaintainerUsername: "adal"})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}
	if _, err = store.CreateRepo(repo.Repository{Owner: "atria", Name: "other", Tier: repo.TierSilver, MaintainerID: "u2"}); err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}

	repos, err := svc.QueryByMaintainer("u1", "AdaL")
	if err != nil {
		t.Fatalf("QueryByMaintainer() failed: %v", err)
	}
	if len(repos) != 3 {
		t.Fatalf("len = %d; want 3 (merged, de-duplicated)", len(repos))
	}
	seen := map[string]bool{}
	for _, rp := range repos {
		if seen[rp.ID] {
			t.Errorf("%s returned twice", rp.FullName())
		}
		seen[rp.ID] = true
	}
	for _, want := range []repo.Repository{byID, byUsername, both} {
		if !seen[want.ID] {
			t.Errorf("%s missing from result", want.FullName())
		}
	}
}
