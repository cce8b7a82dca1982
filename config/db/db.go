// Package db owns the MongoDB connection shared by services, jobs, and
// migrations.
package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"caretrack/config"
)

const (
	UserCollection          = "users"
	PatientCollection       = "patients"
	DoctorCollection        = "doctors"
	StaffCollection         = "staff"
	MedicalRecordCollection = "medical_records"
	TestReportCollection    = "test_reports"
	BillCollection          = "bills"
	CounterCollection       = "counters"
)

var (
	Client *mongo.Client
	DB     *mongo.Database

	// TxnEnabled is flipped off when the deployment turns out not to support
	// multi-document transactions (standalone servers without a replica set).
	TxnEnabled = true
)

func Connect(ctx context.Context, cfg *config.Config) error {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	DB = client.Database(cfg.DatabaseName)
	TxnEnabled = cfg.TxnEnabled
	return nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func OpenCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// EnsureIndexes creates the unique indexes backing the credential and the
// human-facing number invariants. Safe to call on every boot.
func EnsureIndexes(ctx context.Context) error {
	unique := func(coll, field string) error {
		_, err := OpenCollection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}

	for coll, field := range map[string]string{
		UserCollection:          "loginId",
		PatientCollection:       "patientNumber",
		DoctorCollection:        "doctorNumber",
		StaffCollection:         "staffNumber",
		MedicalRecordCollection: "recordNumber",
		TestReportCollection:    "reportNumber",
		BillCollection:          "billNumber",
	} {
		if err := unique(coll, field); err != nil {
			return err
		}
	}
	return nil
}

// RunTransaction executes fn inside a multi-document transaction. Linkage
// operations (create child + append reference to parent) rely on this so a
// failed parent update never leaves an orphaned child. When the server does
// not support transactions the statements run sequentially instead; nothing
// has been applied at the point the capability error surfaces, so the retry
// is safe.
func RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !TxnEnabled {
		return fn(ctx)
	}

	session, err := Client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && txnUnsupported(err) {
		TxnEnabled = false
		return fn(ctx)
	}
	return err
}

func txnUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 { // IllegalOperation
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
