package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/metrics"
	"caretrack/models"
	"caretrack/role"
)

type CreateStaffInput struct {
	LoginID          string `json:"loginId" binding:"required"`
	Password         string `json:"password" binding:"required,min=6"`
	Name             string `json:"name" binding:"required"`
	Age              int    `json:"age" binding:"required,gt=0"`
	Gender           string `json:"gender" binding:"required"`
	Address          string `json:"address" binding:"required"`
	Role             string `json:"role" binding:"required"`
	ContactNumber    string `json:"contactNumber" binding:"required"`
	Department       string `json:"department" binding:"required"`
	AttendanceStatus string `json:"attendanceStatus" binding:"omitempty,oneof=Present Absent"`
}

type StaffFilter struct {
	Name             string
	Role             string
	Department       string
	AttendanceStatus string
}

func CreateStaff(ctx context.Context, in CreateStaffInput) (models.Staff, error) {
	if !role.IsStaff(in.Role) {
		return models.Staff{}, apperr.New(apperr.KindValidation, "unknown staff role: "+in.Role)
	}

	taken, err := credentialExists(ctx, in.LoginID)
	if err != nil {
		return models.Staff{}, err
	}
	if taken {
		return models.Staff{}, apperr.New(apperr.KindDuplicateCredential, "login id already registered")
	}

	number, err := NextSequence(ctx, db.StaffCollection)
	if err != nil {
		return models.Staff{}, err
	}

	attendance := in.AttendanceStatus
	if attendance == "" {
		attendance = models.AttendancePresent
	}

	now := time.Now()
	staff := models.Staff{
		ID:               primitive.NewObjectID(),
		StaffNumber:      number,
		Name:             in.Name,
		Age:              in.Age,
		Gender:           in.Gender,
		Address:          in.Address,
		Role:             in.Role,
		ContactNumber:    in.ContactNumber,
		Department:       in.Department,
		AttendanceStatus: attendance,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.StaffCollection).InsertOne(ctx, staff); err != nil {
			return apperr.Internal(err)
		}
		return insertAccount(ctx, in.LoginID, in.Password, in.Role, staff.ID)
	})
	if err != nil {
		return models.Staff{}, err
	}

	metrics.EntityCreated("staff")
	return staff, nil
}

func FetchStaffByNumber(ctx context.Context, number int64) (models.Staff, error) {
	var staff models.Staff
	err := db.OpenCollection(db.StaffCollection).
		FindOne(ctx, bson.M{"staffNumber": number}).
		Decode(&staff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Staff{}, apperr.New(apperr.KindNotFound, "staff member not found")
		}
		return models.Staff{}, apperr.Internal(err)
	}
	return staff, nil
}

func FetchAllStaff(ctx context.Context, f StaffFilter) ([]models.Staff, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = caseInsensitive(f.Name)
	}
	if f.Role != "" {
		filter["role"] = caseInsensitive(f.Role)
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.AttendanceStatus != "" {
		filter["attendanceStatus"] = f.AttendanceStatus
	}

	cursor, err := db.OpenCollection(db.StaffCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "staffNumber", Value: 1}}))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	staff := []models.Staff{}
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, apperr.Internal(err)
	}
	return staff, nil
}
