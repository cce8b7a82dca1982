package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"caretrack/config/db"
)

// useMockDB points the shared database handle at the mock deployment.
// Transactions run in fallback mode so primed responses stay in order.
func useMockDB(mt *mtest.T) {
	db.Client = mt.Client
	db.DB = mt.DB
	db.TxnEnabled = false
	Cfg = testConfig()
}

func counterResponse(name string, seq int64) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: name},
			{Key: "seq", Value: seq},
		}},
	)
}

func TestNextSequence_Monotonic(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sequential creates count 1..N", func(mt *mtest.T) {
		useMockDB(mt)

		for i := int64(1); i <= 3; i++ {
			mt.AddMockResponses(counterResponse(db.PatientCollection, i))
		}

		for want := int64(1); want <= 3; want++ {
			got, err := NextSequence(context.Background(), db.PatientCollection)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	mt.Run("store failure surfaces as internal", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Message: "interrupted",
		}))

		_, err := NextSequence(context.Background(), db.BillCollection)
		assert.Error(t, err)
	})
}
