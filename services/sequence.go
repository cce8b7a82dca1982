package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/models"
)

// NextSequence returns the next human-facing number for an entity type. One
// counter document per collection, bumped with an atomic $inc so concurrent
// creations can never collide. The upsert makes the first number 1.
func NextSequence(ctx context.Context, name string) (int64, error) {
	res := db.OpenCollection(db.CounterCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var counter models.SequenceCounter
	if err := res.Decode(&counter); err != nil {
		return 0, apperr.Internal(err)
	}
	return counter.Seq, nil
}
