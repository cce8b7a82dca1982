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

type CreateDoctorInput struct {
	LoginID            string `json:"loginId" binding:"required"`
	Password           string `json:"password" binding:"required,min=6"`
	Name               string `json:"name" binding:"required"`
	Specialization     string `json:"specialization" binding:"required"`
	ContactNumber      string `json:"contactNumber" binding:"required"`
	Department         string `json:"department" binding:"required"`
	AvailabilityStatus string `json:"availabilityStatus" binding:"required,oneof=Available Unavailable"`
}

type DoctorFilter struct {
	Name               string
	Specialization     string
	Department         string
	AvailabilityStatus string
}

func CreateDoctor(ctx context.Context, in CreateDoctorInput) (models.Doctor, error) {
	taken, err := credentialExists(ctx, in.LoginID)
	if err != nil {
		return models.Doctor{}, err
	}
	if taken {
		return models.Doctor{}, apperr.New(apperr.KindDuplicateCredential, "login id already registered")
	}

	number, err := NextSequence(ctx, db.DoctorCollection)
	if err != nil {
		return models.Doctor{}, err
	}

	now := time.Now()
	doctor := models.Doctor{
		ID:                 primitive.NewObjectID(),
		DoctorNumber:       number,
		Name:               in.Name,
		Specialization:     in.Specialization,
		ContactNumber:      in.ContactNumber,
		Department:         in.Department,
		AvailabilityStatus: in.AvailabilityStatus,
		AssignedPatients:   []primitive.ObjectID{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.DoctorCollection).InsertOne(ctx, doctor); err != nil {
			return apperr.Internal(err)
		}
		return insertAccount(ctx, in.LoginID, in.Password, role.Doctor, doctor.ID)
	})
	if err != nil {
		return models.Doctor{}, err
	}

	metrics.EntityCreated("doctor")
	return doctor, nil
}

func FetchDoctorByNumber(ctx context.Context, number int64) (models.Doctor, error) {
	key := fmt.Sprintf("%s%d", cache.DoctorKey, number)

	var doctor models.Doctor
	if cache.Get(ctx, key, &doctor) {
		return doctor, nil
	}

	err := db.OpenCollection(db.DoctorCollection).
		FindOne(ctx, bson.M{"doctorNumber": number}).
		Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Doctor{}, apperr.New(apperr.KindNotFound, "doctor not found")
		}
		return models.Doctor{}, apperr.Internal(err)
	}

	cache.Set(ctx, key, doctor)
	return doctor, nil
}

func FetchAllDoctors(ctx context.Context, f DoctorFilter) ([]models.Doctor, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = caseInsensitive(f.Name)
	}
	if f.Specialization != "" {
		filter["specialization"] = caseInsensitive(f.Specialization)
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.AvailabilityStatus != "" {
		filter["availabilityStatus"] = f.AvailabilityStatus
	}

	cursor, err := db.OpenCollection(db.DoctorCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "doctorNumber", Value: 1}}))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, apperr.Internal(err)
	}
	return doctors, nil
}

// AssignPatient appends a patient to the doctor's assigned list. The filtered
// $push makes check-then-append a single store operation, so a concurrent
// duplicate assignment cannot slip in between.
func AssignPatient(ctx context.Context, doctorHex, patientHex string) (models.Doctor, error) {
	doctorID, err := primitive.ObjectIDFromHex(doctorHex)
	if err != nil {
		return models.Doctor{}, apperr.New(apperr.KindValidation, "invalid doctor id")
	}
	patientID, err := primitive.ObjectIDFromHex(patientHex)
	if err != nil {
		return models.Doctor{}, apperr.New(apperr.KindValidation, "invalid patient id")
	}

	var doctor models.Doctor
	err = db.OpenCollection(db.DoctorCollection).
		FindOne(ctx, bson.M{"_id": doctorID}).
		Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Doctor{}, apperr.New(apperr.KindNotFound, "doctor not found")
		}
		return models.Doctor{}, apperr.Internal(err)
	}

	var patient models.Patient
	err = db.OpenCollection(db.PatientCollection).
		FindOne(ctx, bson.M{"_id": patientID}).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Doctor{}, apperr.New(apperr.KindNotFound, "patient not found")
		}
		return models.Doctor{}, apperr.Internal(err)
	}

	res, err := db.OpenCollection(db.DoctorCollection).UpdateOne(ctx,
		bson.M{"_id": doctorID, "assignedPatients": bson.M{"$ne": patientID}},
		bson.M{
			"$push": bson.M{"assignedPatients": patientID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return models.Doctor{}, apperr.Internal(err)
	}
	if res.ModifiedCount == 0 {
		return models.Doctor{}, apperr.New(apperr.KindAlreadyAssigned, "patient already assigned to this doctor")
	}

	cache.Invalidate(ctx, fmt.Sprintf("%s%d", cache.DoctorKey, doctor.DoctorNumber))

	doctor.AssignedPatients = append(doctor.AssignedPatients, patientID)
	return doctor, nil
}
