package main

import (
	"log"
	"os"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/user"
	"github.com/osatria/portal/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := mongodb.Open(core.Conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		usrSvc:  user.NewService(mongodb.NewUserRepository(db)),
		repoSvc: repo.NewService(mongodb.NewRepoStore(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
