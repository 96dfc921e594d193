package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osatria/portal/core/form"
)

type formRepository struct {
	col *mongo.Collection
}

func NewFormRepository(db *mongo.Database) form.Repository {
	return &formRepository{col: db.Collection(colForms)}
}

func (repo *formRepository) CheckSlugUniqueness(slug string) error {
	ctx, cancel := opCtx()
	defer cancel()

	n, err := repo.col.CountDocuments(ctx, bson.M{"_id": slug})
	if err != nil {
		return wrapErr(err, "checking slug uniqueness")
	}
	if n > 0 {
		return form.ErrSlugExists
	}
	return nil
}

func (repo *formRepository) CreateForm(frm form.Form) (form.Form, error) {
	ctx, cancel := opCtx()
	defer cancel()

	if _, err := repo.col.InsertOne(ctx, frm); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return form.Form{}, form.ErrSlugExists
		}
		return form.Form{}, wrapErr(err, "creating form")
	}
	return frm, nil
}

func (repo *formRepository) GetFormBySlug(slug string) (form.Form, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var frm form.Form
	if err := repo.col.FindOne(ctx, bson.M{"_id": slug}).Decode(&frm); err != nil {
		if err == mongo.ErrNoDocuments {
			return form.Form{}, form.ErrNotFound
		}
		return form.Form{}, wrapErr(err, "getting form")
	}
	return frm, nil
}

func (repo *formRepository) QueryAllForms() ([]form.Form, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cur, err := repo.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err, "querying forms")
	}
	var forms []form.Form
	if err = cur.All(ctx, &forms); err != nil {
		return nil, wrapErr(err, "decoding forms")
	}
	return forms, nil
}

func (repo *formRepository) UpdateForm(frm form.Form) (form.Form, error) {
	ctx, cancel := opCtx()
	defer cancel()

	// CreatedAt stays untouched; the whole field sequence is replaced
	update := bson.M{"$set": bson.M{
		"title":       frm.Title,
		"description": frm.Description,
		"fields":      frm.Fields,
		"updatedAt":   frm.UpdatedAt,
	}}
	res, err := repo.col.UpdateOne(ctx, bson.M{"_id": frm.Slug}, update)
	if err != nil {
		return form.Form{}, wrapErr(err, "updating form")
	}
	if res.MatchedCount == 0 {
		return form.Form{}, form.ErrNotFound
	}
	return repo.GetFormBySlug(frm.Slug)
}

func (repo *formRepository) DeleteFormBySlug(slug string) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := repo.col.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return wrapErr(err, "deleting form")
	}
	if res.DeletedCount == 0 {
		return form.ErrNotFound
	}
	return nil
}
