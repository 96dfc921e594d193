package main

import (
	"log"
	"os"

	echoapi "github.com/osatria/portal/apps/api/echo"
	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/submission"
	"github.com/osatria/portal/core/user"
	emailsvc "github.com/osatria/portal/services/email"
	logsvc "github.com/osatria/portal/services/logger"
	uploadsvc "github.com/osatria/portal/services/upload"
	"github.com/osatria/portal/storage/database/mongodb"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!(core.Conf.Debug || core.Conf.TestMode))

	// set up DB
	db, err := mongodb.Open(core.Conf)
	errAndDie(err)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	formSvc := form.NewService(mongodb.NewFormRepository(db))
	submissionSvc := submission.NewService(mongodb.NewSubmissionRepository(db), mailSvc)
	userSvc := user.NewService(mongodb.NewUserRepository(db))
	repoSvc := repo.NewService(mongodb.NewRepoStore(db))

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       core.Conf.Server.Host,
			FormSvc:       formSvc,
			SubmissionSvc: submissionSvc,
			UserSvc:       userSvc,
			RepoSvc:       repoSvc,
			UploadSvc:     uploadsvc.NewImageKitService(),
			Logger:        logger,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
