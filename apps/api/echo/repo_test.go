package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/user"
	"github.com/osatria/portal/tests"
)

func Test_repoApi_catalogue(t *testing.T) {
	env := setup(t)

	portal, err := env.repoStore.CreateRepo(repo.Repository{
		Owner: "atria", Name: "portal", HTMLURL: "https://github.com/atria/portal", Tier: repo.TierGold,
	})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}

	// the catalogue is public
	req, rec := newRequest(http.MethodGet, "/api/repositories")
	env.server.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []repo.Repository{portal})}
	checkCodeAndData(t, tt, rec)
}

func Test_repoApi_maintainerRepositories(t *testing.T) {
	env := setup(t)

	mine, err := env.repoStore.CreateRepo(repo.Repository{
		Owner: "atria", Name: "portal", Tier: repo.TierGold, MaintainerID: "m1",
	})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}
	byUsername, err := env.repoStore.CreateRepo(repo.Repository{
		Owner: "atria", Name: "docs", Tier: repo.TierBronze, MaintainerUsername: "adal",
	})
	if err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}
	if _, err = env.repoStore.CreateRepo(repo.Repository{
		Owner: "atria", Name: "other", Tier: repo.TierSilver, MaintainerID: "someone-else",
	}); err != nil {
		t.Fatalf("CreateRepo() failed: %v", err)
	}

	maintainer := testutil.CreateUser(t, env.userRepo, "m1", "Ada", "ada@atria.edu", "adal", user.RoleMaintainer, 0)
	maintainerToken := getToken(t, maintainer)
	contributor := testutil.CreateUser(t, env.userRepo, "u1", "Grace", "grace@atria.edu", "graceh", user.RoleContributor, 0)
	contributorToken := getToken(t, contributor)

	t.Run("contributors are forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/maintainer/repositories", contributorToken)
		env.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("maintainers see assignments by uid and by username", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/maintainer/repositories", maintainerToken)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var repos []repo.Repository
		if err := json.Unmarshal(rec.Body.Bytes(), &repos); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(repos) != 2 {
			t.Fatalf("len = %d; want 2: %+v", len(repos), repos)
		}
		got := map[string]bool{repos[0].ID: true, repos[1].ID: true}
		if !got[mine.ID] || !got[byUsername.ID] {
			t.Errorf("repos = %+v; want %s and %s", repos, mine.FullName(), byUsername.FullName())
		}
	})
}

func Test_repoApi_adminRepositories(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.userRepo, "a1", "Root", "root@atria.edu", "root", user.RoleAdmin, 0)
	adminToken := getToken(t, admin)

	var created repo.Repository

	t.Run("create defaults the html url", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"owner": "Atria", "name": "Portal", "tier": "gold"})
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/repositories", adminToken, body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if created.Owner != "atria" || created.Name != "portal" {
			t.Errorf("owner/name not normalized: %+v", created)
		}
		if created.HTMLURL != "https://github.com/atria/portal" {
			t.Errorf("htmlUrl = %q", created.HTMLURL)
		}
	})

	t.Run("duplicate owner and name is rejected", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"owner": "atria", "name": "portal", "tier": "silver"})
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/repositories", adminToken, body)
		env.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "a repository with this owner and name already exists"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown tier is rejected", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"owner": "atria", "name": "infra", "tier": "platinum"})
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/repositories", adminToken, body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d; want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("assign maintainer", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"uid": "m1", "githubUsername": "AdaL"})
		req, rec := newAuthRequest(http.MethodPut, "/api/admin/repositories/"+created.ID+"/maintainer", adminToken, body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var rp repo.Repository
		if err := json.Unmarshal(rec.Body.Bytes(), &rp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if rp.MaintainerID != "m1" || rp.MaintainerUsername != "adal" {
			t.Errorf("maintainer not recorded: %+v", rp)
		}
	})

	t.Run("update changes only the provided fields", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"tier": "silver"})
		req, rec := newAuthRequest(http.MethodPut, "/api/admin/repositories/"+created.ID, adminToken, body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var rp repo.Repository
		if err := json.Unmarshal(rec.Body.Bytes(), &rp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if rp.Tier != repo.TierSilver || rp.Owner != "atria" || rp.MaintainerID != "m1" {
			t.Errorf("update clobbered fields: %+v", rp)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/api/admin/repositories/"+created.ID, adminToken)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		req, rec = newAuthRequest(http.MethodDelete, "/api/admin/repositories/"+created.ID, adminToken)
		env.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "repository not found"})}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_repoApi_whitelist(t *testing.T) {
	env := setup(t)
	admin := testutil.CreateUser(t, env.userRepo, "a1", "Root", "root@atria.edu", "root", user.RoleAdmin, 0)
	adminToken := getToken(t, admin)

	var entry repo.WhitelistEntry

	t.Run("add", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"githubUsername": "AdaL"})
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/whitelist", adminToken, body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if entry.GithubUsername != "adal" || entry.AddedBy != "a1" {
			t.Errorf("entry = %+v", entry)
		}
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"githubUsername": "adal"})
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/whitelist", adminToken, body)
		env.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"githubUsername": "this username is already whitelisted"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("list and remove", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/admin/whitelist", adminToken)
		env.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []repo.WhitelistEntry{entry})}
		checkCodeAndData(t, tt, rec)

		req, rec = newAuthRequest(http.MethodDelete, "/api/admin/whitelist/"+entry.ID, adminToken)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}

		ok, err := env.repoSvc.IsWhitelisted("adal")
		if err != nil || ok {
			t.Errorf("IsWhitelisted() = %v, %v; want false, nil", ok, err)
		}
	})
}
