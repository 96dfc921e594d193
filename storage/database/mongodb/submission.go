package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osatria/portal/core/submission"
)

type submissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) submission.Repository {
	return &submissionRepository{col: db.Collection(colSubmissions)}
}

func (repo *submissionRepository) HasSubmission(email, slug string) (bool, error) {
	ctx, cancel := opCtx()
	defer cancel()

	// exact equality on both keys; the unique index serves this lookup
	n, err := repo.col.CountDocuments(ctx, bson.M{"formSlug": slug, "userEmail": email})
	if err != nil {
		return false, wrapErr(err, "checking for existing submission")
	}
	return n > 0, nil
}

func (repo *submissionRepository) CreateSubmission(sub submission.Submission) (submission.Submission, error) {
	ctx, cancel := opCtx()
	defer cancel()

	sub.ID = primitive.NewObjectID().Hex()
	if _, err := repo.col.InsertOne(ctx, sub); err != nil {
		// the unique (formSlug, userEmail) index closed the gate race
		if mongo.IsDuplicateKeyError(err) {
			return submission.Submission{}, submission.ErrAlreadySubmitted
		}
		return submission.Submission{}, wrapErr(err, "creating submission")
	}
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var sub submission.Submission
	if err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, wrapErr(err, "getting submission")
	}
	return sub, nil
}

func (repo *submissionRepository) query(filter bson.M) ([]submission.Submission, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"submittedAt": 1})
	cur, err := repo.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "querying submissions")
	}
	var subs []submission.Submission
	if err = cur.All(ctx, &subs); err != nil {
		return nil, wrapErr(err, "decoding submissions")
	}
	return subs, nil
}

func (repo *submissionRepository) QuerySubmissionsBySlug(slug string) ([]submission.Submission, error) {
	return repo.query(bson.M{"formSlug": slug})
}

func (repo *submissionRepository) QueryAllSubmissions() ([]submission.Submission, error) {
	return repo.query(bson.M{})
}

func (repo *submissionRepository) DeleteSubmissionByID(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err, "deleting submission")
	}
	if res.DeletedCount == 0 {
		return submission.ErrNotFound
	}
	return nil
}

func (repo *submissionRepository) DeleteSubmissionsBySlug(slug string) error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := repo.col.DeleteMany(ctx, bson.M{"formSlug": slug})
	return wrapErr(err, "deleting submissions")
}
