package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
	emailsvc "github.com/osatria/portal/services/email"
	uploadsvc "github.com/osatria/portal/services/upload"
	inmemdb "github.com/osatria/portal/storage/database/inmem"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testEnv struct {
	server Server

	formRepo       form.Repository
	submissionRepo submission.Repository
	userRepo       user.Repository
	repoStore      repo.Store

	formSvc       form.ServiceInterface
	submissionSvc submission.ServiceInterface
	userSvc       user.ServiceInterface
	repoSvc       repo.ServiceInterface
}

type testLogger struct {
	std *log.Logger
}

func (l testLogger) Enable(bool)                        {}
func (l testLogger) Debug(msg string, _ ...interface{}) { l.std.Println(msg) }
func (l testLogger) Info(msg string, _ ...interface{})  { l.std.Println(msg) }
func (l testLogger) Warn(msg string, _ ...interface{})  { l.std.Println(msg) }
func (l testLogger) Error(msg string, _ ...interface{}) { l.std.Println(msg) }
func (l testLogger) Fatal(msg string, _ ...interface{}) { l.std.Fatalln(msg) }

func setup(t *testing.T) *testEnv {
	t.Helper()

	// deterministic error payloads
	core.Conf.Debug = false
	core.Conf.TestMode = true

	db := inmemdb.NewDB()
	env := &testEnv{
		formRepo:       inmemdb.NewFormRepository(db),
		submissionRepo: inmemdb.NewSubmissionRepository(db),
		userRepo:       inmemdb.NewUserRepository(db),
		repoStore:      inmemdb.NewRepoStore(db),
	}
	env.formSvc = form.NewService(env.formRepo)
	env.submissionSvc = submission.NewService(env.submissionRepo, emailsvc.NewConsoleServiceMock())
	env.userSvc = user.NewService(env.userRepo)
	env.repoSvc = repo.NewService(env.repoStore)

	env.server = NewServer(&Options{
		DisableReqLogs: true,
		FormSvc:        env.formSvc,
		SubmissionSvc:  env.submissionSvc,
		UserSvc:        env.userSvc,
		RepoSvc:        env.repoSvc,
		UploadSvc:      uploadsvc.NewImageKitService(),
		Logger:         testLogger{std: log.New(os.Stdout, "TEST : ", log.LstdFlags)},
	})
	return env
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
