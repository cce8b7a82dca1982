package migrations

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"caretrack/config/db"
	"caretrack/logger"
)

// SeedSequenceCounters initializes the counters collection from the current
// max number per entity type so databases written before the atomic-counter
// scheme keep their numbering. Existing counters are left untouched.
func SeedSequenceCounters(ctx context.Context) error {
	for coll, field := range map[string]string{
		db.PatientCollection:       "patientNumber",
		db.DoctorCollection:        "doctorNumber",
		db.StaffCollection:         "staffNumber",
		db.MedicalRecordCollection: "recordNumber",
		db.TestReportCollection:    "reportNumber",
		db.BillCollection:          "billNumber",
	} {
		if err := seedCounter(ctx, coll, field); err != nil {
			return err
		}
	}
	return nil
}

func seedCounter(ctx context.Context, coll, field string) error {
	counters := db.OpenCollection(db.CounterCollection)

	n, err := counters.CountDocuments(ctx, bson.M{"_id": coll})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var doc bson.M
	err = db.OpenCollection(coll).
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: field, Value: -1}})).
		Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	var max int64
	if raw, ok := doc[field]; ok {
		switch v := raw.(type) {
		case int32:
			max = int64(v)
		case int64:
			max = v
		case float64:
			max = int64(v)
		}
	}

	_, err = counters.InsertOne(ctx, bson.M{"_id": coll, "seq": max})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return err
	}

	logger.L.Info("seeded sequence counter", zap.String("collection", coll), zap.Int64("seq", max))
	return nil
}
