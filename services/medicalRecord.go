package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"caretrack/apperr"
	"caretrack/cache"
	"caretrack/config/db"
	"caretrack/metrics"
	"caretrack/models"
)

type CreateMedicalRecordInput struct {
	PatientID    int64      `json:"patientId" binding:"required"`
	DoctorID     string     `json:"doctorId" binding:"required"`
	Diagnosis    string     `json:"diagnosis"`
	Treatment    string     `json:"treatment"`
	Medications  string     `json:"medications"`
	FollowUpDate *time.Time `json:"followUpDate"`
	Notes        string     `json:"notes"`
}

// CreateMedicalRecord inserts the record and appends its reference to the
// patient's medicalHistory as one transactional unit; a failed patient-side
// update never leaves an orphaned record behind.
func CreateMedicalRecord(ctx context.Context, in CreateMedicalRecordInput) (models.MedicalRecord, error) {
	doctorID, err := primitive.ObjectIDFromHex(in.DoctorID)
	if err != nil {
		return models.MedicalRecord{}, apperr.New(apperr.KindValidation, "invalid doctor id")
	}

	var doctor models.Doctor
	err = db.OpenCollection(db.DoctorCollection).
		FindOne(ctx, bson.M{"_id": doctorID}).
		Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MedicalRecord{}, apperr.New(apperr.KindNotFound, "doctor not found")
		}
		return models.MedicalRecord{}, apperr.Internal(err)
	}

	var patient models.Patient
	err = db.OpenCollection(db.PatientCollection).
		FindOne(ctx, bson.M{"patientNumber": in.PatientID}).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MedicalRecord{}, apperr.New(apperr.KindNotFound, "patient not found")
		}
		return models.MedicalRecord{}, apperr.Internal(err)
	}

	number, err := NextSequence(ctx, db.MedicalRecordCollection)
	if err != nil {
		return models.MedicalRecord{}, err
	}

	now := time.Now()
	record := models.MedicalRecord{
		ID:            primitive.NewObjectID(),
		RecordNumber:  number,
		PatientNumber: patient.PatientNumber,
		DoctorNumber:  doctor.DoctorNumber,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Medications:   in.Medications,
		FollowUpDate:  in.FollowUpDate,
		Notes:         in.Notes,
		TestReports:   []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.MedicalRecordCollection).InsertOne(ctx, record); err != nil {
			return apperr.Internal(err)
		}
		res, err := db.OpenCollection(db.PatientCollection).UpdateOne(ctx,
			bson.M{"_id": patient.ID},
			bson.M{
				"$push": bson.M{"medicalHistory": record.ID},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return apperr.Internal(err)
		}
		if res.MatchedCount == 0 {
			return apperr.New(apperr.KindNotFound, "patient not found")
		}
		return nil
	})
	if err != nil {
		return models.MedicalRecord{}, err
	}

	cache.Invalidate(ctx, fmt.Sprintf("%s%d", cache.PatientKey, patient.PatientNumber))
	metrics.EntityCreated("medical_record")
	return record, nil
}

// FetchRecordsForPatient lists a patient's medical records with report
// metadata populated. The raw PDF bytes are excluded by projection.
func FetchRecordsForPatient(ctx context.Context, patientNumber int64) ([]models.MedicalRecordDetail, error) {
	cursor, err := db.OpenCollection(db.MedicalRecordCollection).Find(ctx,
		bson.M{"patientNumber": patientNumber},
		options.Find().SetSort(bson.D{{Key: "recordNumber", Value: 1}}),
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	records := []models.MedicalRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, apperr.Internal(err)
	}

	reportIDs := []primitive.ObjectID{}
	for _, r := range records {
		reportIDs = append(reportIDs, r.TestReports...)
	}

	reportsByID := map[primitive.ObjectID]models.TestReportMeta{}
	if len(reportIDs) > 0 {
		cursor, err := db.OpenCollection(db.TestReportCollection).Find(ctx,
			bson.M{"_id": bson.M{"$in": reportIDs}},
			options.Find().SetProjection(bson.M{"pdfFile.data": 0}),
		)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		reports := []models.TestReportMeta{}
		if err := cursor.All(ctx, &reports); err != nil {
			return nil, apperr.Internal(err)
		}
		for _, r := range reports {
			reportsByID[r.ID] = r
		}
	}

	details := []models.MedicalRecordDetail{}
	for _, r := range records {
		detail := models.MedicalRecordDetail{MedicalRecord: r, TestReports: []models.TestReportMeta{}}
		for _, id := range r.TestReports {
			if meta, ok := reportsByID[id]; ok {
				detail.TestReports = append(detail.TestReports, meta)
			}
		}
		details = append(details, detail)
	}
	return details, nil
}
