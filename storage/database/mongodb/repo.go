package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osatria/portal/core/repo"
)

type repoStore struct {
	col       *mongo.Collection
	whitelist *mongo.Collection
}

func NewRepoStore(db *mongo.Database) repo.Store {
	return &repoStore{
		col:       db.Collection(colRepos),
		whitelist: db.Collection(colWhitelist),
	}
}

func (store *repoStore) CheckRepoUniqueness(owner, name string) error {
	ctx, cancel := opCtx()
	defer cancel()

	n, err := store.col.CountDocuments(ctx, bson.M{"owner": owner, "name": name})
	if err != nil {
		return wrapErr(err, "checking repository uniqueness")
	}
	if n > 0 {
		return repo.ErrRepoExists
	}
	return nil
}

func (store *repoStore) CreateRepo(rp repo.Repository) (repo.Repository, error) {
	ctx, cancel := opCtx()
	defer cancel()

	rp.ID = primitive.NewObjectID().Hex()
	if _, err := store.col.InsertOne(ctx, rp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.Repository{}, repo.ErrRepoExists
		}
		return repo.Repository{}, wrapErr(err, "creating repository")
	}
	return rp, nil
}

func (store *repoStore) GetRepoByID(id string) (repo.Repository, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var rp repo.Repository
	if err := store.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rp); err != nil {
		if err == mongo.ErrNoDocuments {
			return repo.Repository{}, repo.ErrNotFound
		}
		return repo.Repository{}, wrapErr(err, "getting repository")
	}
	return rp, nil
}

func (store *repoStore) query(filter bson.M) ([]repo.Repository, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}})
	cur, err := store.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "querying repositories")
	}
	var repos []repo.Repository
	if err = cur.All(ctx, &repos); err != nil {
		return nil, wrapErr(err, "decoding repositories")
	}
	return repos, nil
}

func (store *repoStore) QueryAllRepos() ([]repo.Repository, error) {
	return store.query(bson.M{})
}

func (store *repoStore) QueryReposByMaintainerID(uid string) ([]repo.Repository, error) {
	if uid == "" {
		return nil, nil
	}
	return store.query(bson.M{"maintainerId": uid})
}

func (store *repoStore) QueryReposByMaintainerUsername(ghUsername string) ([]repo.Repository, error) {
	if ghUsername == "" {
		return nil, nil
	}
	return store.query(bson.M{"maintainerUsername": ghUsername})
}

func (store *repoStore) UpdateRepo(rp repo.Repository) (repo.Repository, error) {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := store.col.ReplaceOne(ctx, bson.M{"_id": rp.ID}, rp)
	if err != nil {
		return repo.Repository{}, wrapErr(err, "updating repository")
	}
	if res.MatchedCount == 0 {
		return repo.Repository{}, repo.ErrNotFound
	}
	return rp, nil
}

func (store *repoStore) DeleteRepoByID(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := store.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err, "deleting repository")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (store *repoStore) CreateWhitelistEntry(we repo.WhitelistEntry) (repo.WhitelistEntry, error) {
	ctx, cancel := opCtx()
	defer cancel()

	we.ID = primitive.NewObjectID().Hex()
	if _, err := store.whitelist.InsertOne(ctx, we); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.WhitelistEntry{}, repo.ErrAlreadyWhitelisted
		}
		return repo.WhitelistEntry{}, wrapErr(err, "whitelisting maintainer")
	}
	return we, nil
}

func (store *repoStore) GetWhitelistEntry(ghUsername string) (repo.WhitelistEntry, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var we repo.WhitelistEntry
	if err := store.whitelist.FindOne(ctx, bson.M{"githubUsername": ghUsername}).Decode(&we); err != nil {
		if err == mongo.ErrNoDocuments {
			return repo.WhitelistEntry{}, repo.ErrNotFound
		}
		return repo.WhitelistEntry{}, wrapErr(err, "getting whitelist entry")
	}
	return we, nil
}

func (store *repoStore) QueryWhitelist() ([]repo.WhitelistEntry, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"githubUsername": 1})
	cur, err := store.whitelist.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err, "querying whitelist")
	}
	var entries []repo.WhitelistEntry
	if err = cur.All(ctx, &entries); err != nil {
		return nil, wrapErr(err, "decoding whitelist")
	}
	return entries, nil
}

func (store *repoStore) DeleteWhitelistEntry(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := store.whitelist.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err, "deleting whitelist entry")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
