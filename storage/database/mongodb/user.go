package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osatria/portal/core/user"
)

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{col: db.Collection(colUsers)}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	if _, err := repo.col.InsertOne(ctx, usr); err != nil {
		return user.User{}, wrapErr(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) getOne(filter bson.M) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var usr user.User
	if err := repo.col.FindOne(ctx, filter).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, wrapErr(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByUID(uid string) (user.User, error) {
	return repo.getOne(bson.M{"_id": uid})
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getOne(bson.M{"email": email})
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cur, err := repo.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err, "querying users")
	}
	var users []user.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err, "decoding users")
	}
	return users, nil
}

func (repo *userRepository) QueryLeaderboard(limit int) ([]user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"points": -1}).
		SetLimit(int64(limit))
	cur, err := repo.col.Find(ctx, bson.M{"points": bson.M{"$gt": 0}}, opts)
	if err != nil {
		return nil, wrapErr(err, "querying leaderboard")
	}
	var users []user.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err, "decoding leaderboard")
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": usr.UID}, usr)
	if err != nil {
		return user.User{}, wrapErr(err, "updating user")
	}
	if res.MatchedCount == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) AddUserPoints(uid string, delta int) (user.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var usr user.User
	err := repo.col.FindOneAndUpdate(ctx, bson.M{"_id": uid}, bson.M{"$inc": bson.M{"points": delta}}, opts).Decode(&usr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, wrapErr(err, "adding user points")
	}
	if usr.Points < 0 { // points never go negative
		err = repo.col.FindOneAndUpdate(ctx, bson.M{"_id": uid, "points": bson.M{"$lt": 0}},
			bson.M{"$set": bson.M{"points": 0}}, opts).Decode(&usr)
		if err != nil && err != mongo.ErrNoDocuments {
			return user.User{}, wrapErr(err, "clamping user points")
		}
		usr.Points = 0
	}
	return usr, nil
}
