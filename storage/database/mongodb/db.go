package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osatria/portal/core"
)

// collections
const (
	colForms       = "forms"
	colSubmissions = "submissions"
	colUsers       = "users"
	colRepos       = "repositories"
	colWhitelist   = "maintainer_whitelist"
)

func Open(conf *core.Config) (*mongo.Database, error) {
	ctx, cancel := opCtx()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err = ping(client); err != nil {
		return nil, err
	}

	db := client.Database(conf.Database.Name)
	if err = ensureIndexes(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		ctx, cancel := opCtx()
		err = client.Ping(ctx, nil)
		cancel()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// ensureIndexes creates the indexes the application's invariants rest on; most
// importantly the unique (formSlug, userEmail) index that makes a duplicate
// submission a write-time conflict rather than a read-time guess.
func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := opCtx()
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection(colSubmissions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "formSlug", Value: 1}, {Key: "userEmail", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "creating submissions index")
	}

	_, err = db.Collection(colRepos).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "creating repositories index")
	}

	_, err = db.Collection(colWhitelist).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "githubUsername", Value: 1}},
		Options: unique,
	})
	return errors.Wrap(err, "creating whitelist index")
}

// opCtx returns the per-operation context. Store methods deliberately keep
// their signatures context-free; the deadline comes from configuration.
func opCtx() (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if core.Conf != nil && core.Conf.Database.Timeout > 0 {
		timeout = core.Conf.Database.Timeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// wrapErr maps driver errors onto the store error taxonomy: an authorization
// failure must surface as permission denied, never as a not-found.
func wrapErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 13 { // Unauthorized
		return core.NewPermissionError(errors.Wrap(err, msg))
	}
	return errors.Wrap(err, msg)
}
