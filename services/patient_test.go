package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/models"
)

func countResponse(ns string, n int32) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func validPatientInput() CreatePatientInput {
	return CreatePatientInput{
		LoginID:         "pat-2001",
		Password:        "hunter22",
		Name:            "Asha Rao",
		Age:             34,
		Gender:          "Female",
		ContactNumber:   "9876543210",
		Address:         "12 Lake View Road",
		BloodGroup:      "O+",
		AdmissionStatus: models.AdmissionOutPatient,
	}
}

func patientDoc(id primitive.ObjectID, number int64, name string) bson.D {
	now := time.Now().Truncate(time.Millisecond)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "patientNumber", Value: number},
		{Key: "name", Value: name},
		{Key: "age", Value: int32(34)},
		{Key: "gender", Value: "Female"},
		{Key: "contactNumber", Value: "9876543210"},
		{Key: "address", Value: "12 Lake View Road"},
		{Key: "bloodGroup", Value: "O+"},
		{Key: "admissionStatus", Value: models.AdmissionOutPatient},
		{Key: "medicalHistory", Value: bson.A{}},
		{Key: "bills", Value: bson.A{}},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestCreatePatient(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("happy path assigns the next number", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(
			countResponse("caretrack.users", 0),
			counterResponse(db.PatientCollection, 7),
			mtest.CreateSuccessResponse(), // patient insert
			mtest.CreateSuccessResponse(), // account insert
		)

		patient, err := CreatePatient(context.Background(), validPatientInput())
		require.NoError(t, err)
		assert.Equal(t, int64(7), patient.PatientNumber)
		assert.Equal(t, "Asha Rao", patient.Name)
		assert.False(t, patient.ID.IsZero())
		assert.NotNil(t, patient.MedicalHistory)
		assert.NotNil(t, patient.Bills)
	})

	mt.Run("taken login id short-circuits before any write", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(countResponse("caretrack.users", 1))

		_, err := CreatePatient(context.Background(), validPatientInput())
		assert.Equal(t, apperr.KindDuplicateCredential, apperr.KindOf(err))
	})

	mt.Run("unique index backstops the precheck race", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(
			countResponse("caretrack.users", 0),
			counterResponse(db.PatientCollection, 8),
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "dup key"}),
		)

		_, err := CreatePatient(context.Background(), validPatientInput())
		assert.Equal(t, apperr.KindDuplicateCredential, apperr.KindOf(err))
	})
}

func TestFetchPatientByNumber(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("populates history and bills", func(mt *mtest.T) {
		useMockDB(mt)

		recordID := primitive.NewObjectID()
		billID := primitive.NewObjectID()
		doc := patientDoc(primitive.NewObjectID(), 7, "Asha Rao")
		doc[9].Value = bson.A{recordID}
		doc[10].Value = bson.A{billID}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "caretrack.patients", mtest.FirstBatch, doc),
			mtest.CreateCursorResponse(0, "caretrack.medical_records", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: recordID},
				{Key: "recordNumber", Value: int64(3)},
				{Key: "patientNumber", Value: int64(7)},
				{Key: "diagnosis", Value: "Seasonal flu"},
			}),
			mtest.CreateCursorResponse(0, "caretrack.bills", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: billID},
				{Key: "billNumber", Value: int64(2)},
				{Key: "patientNumber", Value: int64(7)},
				{Key: "totalAmount", Value: 1200.50},
				{Key: "paymentStatus", Value: models.PaymentPending},
			}),
		)

		detail, err := FetchPatientByNumber(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), detail.PatientNumber)
		require.Len(t, detail.MedicalHistory, 1)
		assert.Equal(t, "Seasonal flu", detail.MedicalHistory[0].Diagnosis)
		require.Len(t, detail.Bills, 1)
		assert.Equal(t, models.PaymentPending, detail.Bills[0].PaymentStatus)
	})

	mt.Run("unknown number", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.patients", mtest.FirstBatch))

		_, err := FetchPatientByNumber(context.Background(), 404)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestFetchAllPatients(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns an empty slice when nothing matches", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.patients", mtest.FirstBatch))

		patients, err := FetchAllPatients(context.Background(), PatientFilter{Name: "zz"})
		require.NoError(t, err)
		assert.NotNil(t, patients)
		assert.Empty(t, patients)
	})

	mt.Run("sorted by patient number", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.patients", mtest.FirstBatch,
			patientDoc(primitive.NewObjectID(), 1, "Asha Rao"),
			patientDoc(primitive.NewObjectID(), 2, "Vikram Shah"),
		))

		patients, err := FetchAllPatients(context.Background(), PatientFilter{})
		require.NoError(t, err)
		require.Len(t, patients, 2)
		assert.Equal(t, int64(1), patients[0].PatientNumber)
		assert.Equal(t, "Vikram Shah", patients[1].Name)
	})
}
