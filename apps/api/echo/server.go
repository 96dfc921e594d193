package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
	uploadsvc "github.com/osatria/portal/services/upload"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		FormSvc       form.ServiceInterface
		SubmissionSvc submission.ServiceInterface
		UserSvc       user.ServiceInterface
		RepoSvc       repo.ServiceInterface
		UploadSvc     *uploadsvc.ImageKitService

		Logger core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	initValidators()
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func initValidators() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")
	validate = validator.New()
	core.InitValidators(validate, translator)
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, func() { _ = s.Stop(context.Background()) })
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerFormAPI(api, jwt, s.opts)
	registerUserAPI(api, jwt, s.opts)
	registerRepoAPI(api, jwt, s.opts)
	registerUploadAPI(api, jwt, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.AppName+" API!")
}
