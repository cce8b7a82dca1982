package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"caretrack/apperr"
	"caretrack/config/db"
)

var pdfStub = []byte("%PDF-1.7\nstub body")

func validUploadInput(recordID primitive.ObjectID) UploadReportInput {
	return UploadReportInput{
		PatientID:       7,
		DoctorID:        3,
		MedicalRecordID: recordID.Hex(),
		TestName:        "Complete Blood Count",
		TestResult:      "Within normal limits",
		Filename:        "cbc.pdf",
		ContentType:     "application/pdf",
		Data:            pdfStub,
	}
}

func TestUploadTestReport_Validation(t *testing.T) {
	Cfg = testConfig()
	recordID := primitive.NewObjectID()

	t.Run("missing test name", func(t *testing.T) {
		in := validUploadInput(recordID)
		in.TestName = ""
		_, err := UploadTestReport(context.Background(), in)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("empty file", func(t *testing.T) {
		in := validUploadInput(recordID)
		in.Data = nil
		_, err := UploadTestReport(context.Background(), in)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("non-pdf content type", func(t *testing.T) {
		in := validUploadInput(recordID)
		in.ContentType = "image/png"
		in.Filename = "scan.png"
		_, err := UploadTestReport(context.Background(), in)
		assert.Equal(t, apperr.KindUnsupportedMediaType, apperr.KindOf(err))
	})

	t.Run("content type with charset parameter passes the gate", func(t *testing.T) {
		in := validUploadInput(recordID)
		in.ContentType = "application/pdf; charset=binary"
		in.MedicalRecordID = "bad-hex" // stop before the store
		_, err := UploadTestReport(context.Background(), in)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("oversized payload", func(t *testing.T) {
		in := validUploadInput(recordID)
		in.Data = bytes.Repeat([]byte("a"), int(Cfg.MaxReportSize)+1)
		_, err := UploadTestReport(context.Background(), in)
		assert.Equal(t, apperr.KindPayloadTooLarge, apperr.KindOf(err))
	})
}

func TestUploadTestReport(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stores the blob and links the record", func(mt *mtest.T) {
		useMockDB(mt)

		recordID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "caretrack.medical_records", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: recordID},
				{Key: "recordNumber", Value: int64(3)},
				{Key: "patientNumber", Value: int64(7)},
				{Key: "testReports", Value: bson.A{}},
			}),
			counterResponse(db.TestReportCollection, 5),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		report, err := UploadTestReport(context.Background(), validUploadInput(recordID))
		require.NoError(t, err)
		assert.Equal(t, int64(5), report.ReportNumber)
		assert.Equal(t, "cbc.pdf", report.PDFFile.Filename)
		assert.Equal(t, pdfStub, report.PDFFile.Data)
	})

	mt.Run("unknown medical record", func(mt *mtest.T) {
		useMockDB(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.medical_records", mtest.FirstBatch))

		_, err := UploadTestReport(context.Background(), validUploadInput(primitive.NewObjectID()))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestFetchReportPDF(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored blob", func(mt *mtest.T) {
		useMockDB(mt)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.test_reports", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: reportID},
			{Key: "reportNumber", Value: int64(5)},
			{Key: "testName", Value: "Complete Blood Count"},
			{Key: "pdfFile", Value: bson.D{
				{Key: "filename", Value: "cbc.pdf"},
				{Key: "contentType", Value: "application/pdf"},
				{Key: "data", Value: primitive.Binary{Data: pdfStub}},
			}},
		}))

		pdf, err := FetchReportPDF(context.Background(), reportID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "cbc.pdf", pdf.Filename)
		assert.Equal(t, pdfStub, pdf.Data)
	})

	mt.Run("report without a blob reads as missing", func(mt *mtest.T) {
		useMockDB(mt)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "caretrack.test_reports", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: reportID},
			{Key: "reportNumber", Value: int64(6)},
		}))

		_, err := FetchReportPDF(context.Background(), reportID.Hex())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		useMockDB(mt)

		_, err := FetchReportPDF(context.Background(), "zz")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
