package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/models"
	"caretrack/role"
)

func validStaffInput(staffRole string) CreateStaffInput {
	return CreateStaffInput{
		LoginID:       "nur-4001",
		Password:      "florence",
		Name:          "Priya Nair",
		Age:           29,
		Gender:        "Female",
		Address:       "4 Hill Crest",
		Role:          staffRole,
		ContactNumber: "9000000002",
		Department:    "ICU",
	}
}

func TestCreateStaff(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("defaults attendance to present", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(
			countResponse("caretrack.users", 0),
			counterResponse(db.StaffCollection, 4),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		staff, err := CreateStaff(context.Background(), validStaffInput(role.Nurse))
		require.NoError(t, err)
		assert.Equal(t, int64(4), staff.StaffNumber)
		assert.Equal(t, models.AttendancePresent, staff.AttendanceStatus)
	})

	mt.Run("rejects non-staff roles before touching the store", func(mt *mtest.T) {
		useMockDB(mt)

		for _, r := range []string{role.Patient, role.Doctor, "Janitor", ""} {
			_, err := CreateStaff(context.Background(), validStaffInput(r))
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "role %q", r)
		}
	})
}

func TestFetchStaffByNumber(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.staff", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "staffNumber", Value: int64(4)},
			{Key: "name", Value: "Priya Nair"},
			{Key: "role", Value: role.Nurse},
			{Key: "attendanceStatus", Value: models.AttendancePresent},
		}))

		staff, err := FetchStaffByNumber(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, role.Nurse, staff.Role)
	})

	mt.Run("not found", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.staff", mtest.FirstBatch))

		_, err := FetchStaffByNumber(context.Background(), 404)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
