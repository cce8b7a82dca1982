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
	"caretrack/role"
)

type CreatePatientInput struct {
	LoginID         string `json:"loginId" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	Name            string `json:"name" binding:"required"`
	Age             int    `json:"age" binding:"required,gt=0"`
	Gender          string `json:"gender" binding:"required"`
	ContactNumber   string `json:"contactNumber" binding:"required"`
	Address         string `json:"address" binding:"required"`
	BloodGroup      string `json:"bloodGroup" binding:"required,bloodgroup"`
	AdmissionStatus string `json:"admissionStatus" binding:"required,oneof=In-Patient Out-Patient"`
}

type PatientFilter struct {
	Name            string
	Gender          string
	BloodGroup      string
	AdmissionStatus string
}

// CreatePatient registers the patient profile and its login account as one
// unit: a failure on either side leaves nothing behind.
func CreatePatient(ctx context.Context, in CreatePatientInput) (models.Patient, error) {
	taken, err := credentialExists(ctx, in.LoginID)
	if err != nil {
		return models.Patient{}, err
	}
	if taken {
		return models.Patient{}, apperr.New(apperr.KindDuplicateCredential, "login id already registered")
	}

	number, err := NextSequence(ctx, db.PatientCollection)
	if err != nil {
		return models.Patient{}, err
	}

	now := time.Now()
	patient := models.Patient{
		ID:              primitive.NewObjectID(),
		PatientNumber:   number,
		Name:            in.Name,
		Age:             in.Age,
		Gender:          in.Gender,
		ContactNumber:   in.ContactNumber,
		Address:         in.Address,
		BloodGroup:      in.BloodGroup,
		AdmissionStatus: in.AdmissionStatus,
		MedicalHistory:  []primitive.ObjectID{},
		Bills:           []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.PatientCollection).InsertOne(ctx, patient); err != nil {
			return apperr.Internal(err)
		}
		return insertAccount(ctx, in.LoginID, in.Password, role.Patient, patient.ID)
	})
	if err != nil {
		return models.Patient{}, err
	}

	metrics.EntityCreated("patient")
	return patient, nil
}

// FetchPatientByNumber returns the patient with medicalHistory and bills
// populated, read-through cached.
func FetchPatientByNumber(ctx context.Context, number int64) (models.PatientDetail, error) {
	key := fmt.Sprintf("%s%d", cache.PatientKey, number)

	var detail models.PatientDetail
	if cache.Get(ctx, key, &detail) {
		return detail, nil
	}

	var patient models.Patient
	err := db.OpenCollection(db.PatientCollection).
		FindOne(ctx, bson.M{"patientNumber": number}).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PatientDetail{}, apperr.New(apperr.KindNotFound, "patient not found")
		}
		return models.PatientDetail{}, apperr.Internal(err)
	}

	detail, err = populatePatient(ctx, patient)
	if err != nil {
		return models.PatientDetail{}, err
	}

	cache.Set(ctx, key, detail)
	return detail, nil
}

// FetchPatientByAccountID resolves a login account to its patient profile,
// the patient-dashboard entry point.
func FetchPatientByAccountID(ctx context.Context, accountHex string) (models.PatientDetail, error) {
	accountID, err := primitive.ObjectIDFromHex(accountHex)
	if err != nil {
		return models.PatientDetail{}, apperr.New(apperr.KindValidation, "invalid account id")
	}

	var user models.User
	err = db.OpenCollection(db.UserCollection).
		FindOne(ctx, bson.M{"_id": accountID}).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PatientDetail{}, apperr.New(apperr.KindNotFound, "account not found")
		}
		return models.PatientDetail{}, apperr.Internal(err)
	}
	coll, ok := role.CollectionFor(user.Role)
	if !ok || coll != db.PatientCollection || user.UserID.IsZero() {
		return models.PatientDetail{}, apperr.New(apperr.KindNotFound, "no patient linked to this account")
	}

	var patient models.Patient
	err = db.OpenCollection(coll).
		FindOne(ctx, bson.M{"_id": user.UserID}).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PatientDetail{}, apperr.New(apperr.KindNotFound, "patient not found for this account")
		}
		return models.PatientDetail{}, apperr.Internal(err)
	}

	return populatePatient(ctx, patient)
}

// FetchAllPatients lists patients matching the AND of the given filters.
// Text fields match as case-insensitive substrings, statuses exactly.
func FetchAllPatients(ctx context.Context, f PatientFilter) ([]models.Patient, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = caseInsensitive(f.Name)
	}
	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	if f.BloodGroup != "" {
		filter["bloodGroup"] = f.BloodGroup
	}
	if f.AdmissionStatus != "" {
		filter["admissionStatus"] = f.AdmissionStatus
	}

	cursor, err := db.OpenCollection(db.PatientCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "patientNumber", Value: 1}}))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	patients := []models.Patient{}
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, apperr.Internal(err)
	}
	return patients, nil
}

func populatePatient(ctx context.Context, patient models.Patient) (models.PatientDetail, error) {
	detail := models.PatientDetail{
		Patient:        patient,
		MedicalHistory: []models.MedicalRecord{},
		Bills:          []models.Bill{},
	}

	if len(patient.MedicalHistory) > 0 {
		cursor, err := db.OpenCollection(db.MedicalRecordCollection).Find(ctx,
			bson.M{"_id": bson.M{"$in": patient.MedicalHistory}},
			options.Find().SetSort(bson.D{{Key: "recordNumber", Value: 1}}),
		)
		if err != nil {
			return models.PatientDetail{}, apperr.Internal(err)
		}
		if err := cursor.All(ctx, &detail.MedicalHistory); err != nil {
			return models.PatientDetail{}, apperr.Internal(err)
		}
	}

	if len(patient.Bills) > 0 {
		cursor, err := db.OpenCollection(db.BillCollection).Find(ctx,
			bson.M{"_id": bson.M{"$in": patient.Bills}},
			options.Find().SetSort(bson.D{{Key: "billNumber", Value: 1}}),
		)
		if err != nil {
			return models.PatientDetail{}, apperr.Internal(err)
		}
		if err := cursor.All(ctx, &detail.Bills); err != nil {
			return models.PatientDetail{}, apperr.Internal(err)
		}
	}

	return detail, nil
}
