package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/metrics"
	"caretrack/models"
)

type UploadReportInput struct {
	PatientID       int64
	DoctorID        int64
	MedicalRecordID string
	TestName        string
	TestResult      string
	Filename        string
	ContentType     string
	Data            []byte
}

// UploadTestReport stores a PDF test report and attaches it to its medical
// record in one transactional unit. Only application/pdf up to the configured
// size bound is accepted.
func UploadTestReport(ctx context.Context, in UploadReportInput) (models.TestReport, error) {
	if in.TestName == "" || in.MedicalRecordID == "" {
		return models.TestReport{}, apperr.New(apperr.KindValidation, "testName and medicalRecordId are required")
	}
	if len(in.Data) == 0 {
		return models.TestReport{}, apperr.New(apperr.KindValidation, "pdfFile is required")
	}
	if !strings.HasPrefix(in.ContentType, "application/pdf") {
		return models.TestReport{}, apperr.New(apperr.KindUnsupportedMediaType, "only PDF uploads are accepted")
	}
	if int64(len(in.Data)) > Cfg.MaxReportSize {
		return models.TestReport{}, apperr.New(apperr.KindPayloadTooLarge, "report exceeds the maximum upload size")
	}

	recordID, err := primitive.ObjectIDFromHex(in.MedicalRecordID)
	if err != nil {
		return models.TestReport{}, apperr.New(apperr.KindValidation, "invalid medical record id")
	}

	var record models.MedicalRecord
	err = db.OpenCollection(db.MedicalRecordCollection).
		FindOne(ctx, bson.M{"_id": recordID}).
		Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.TestReport{}, apperr.New(apperr.KindNotFound, "medical record not found")
		}
		return models.TestReport{}, apperr.Internal(err)
	}

	number, err := NextSequence(ctx, db.TestReportCollection)
	if err != nil {
		return models.TestReport{}, err
	}

	now := time.Now()
	report := models.TestReport{
		ID:            primitive.NewObjectID(),
		ReportNumber:  number,
		PatientNumber: in.PatientID,
		DoctorNumber:  in.DoctorID,
		TestName:      in.TestName,
		TestResult:    in.TestResult,
		TestDate:      now,
		PDFFile: models.PDFFile{
			Filename:    in.Filename,
			ContentType: in.ContentType,
			Data:        in.Data,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.TestReportCollection).InsertOne(ctx, report); err != nil {
			return apperr.Internal(err)
		}
		res, err := db.OpenCollection(db.MedicalRecordCollection).UpdateOne(ctx,
			bson.M{"_id": recordID},
			bson.M{
				"$push": bson.M{"testReports": report.ID},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return apperr.Internal(err)
		}
		if res.MatchedCount == 0 {
			return apperr.New(apperr.KindNotFound, "medical record not found")
		}
		return nil
	})
	if err != nil {
		return models.TestReport{}, err
	}

	metrics.ReportUploaded()
	metrics.EntityCreated("test_report")
	return report, nil
}

// FetchReportPDF returns the stored blob for streaming back to the caller.
func FetchReportPDF(ctx context.Context, reportHex string) (models.PDFFile, error) {
	reportID, err := primitive.ObjectIDFromHex(reportHex)
	if err != nil {
		return models.PDFFile{}, apperr.New(apperr.KindValidation, "invalid report id")
	}

	var report models.TestReport
	err = db.OpenCollection(db.TestReportCollection).
		FindOne(ctx, bson.M{"_id": reportID}).
		Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PDFFile{}, apperr.New(apperr.KindNotFound, "report not found")
		}
		return models.PDFFile{}, apperr.Internal(err)
	}
	if len(report.PDFFile.Data) == 0 {
		return models.PDFFile{}, apperr.New(apperr.KindNotFound, "report has no stored PDF")
	}
	return report.PDFFile, nil
}
