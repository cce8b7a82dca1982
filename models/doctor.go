package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DoctorAvailable   = "Available"
	DoctorUnavailable = "Unavailable"
)

type Doctor struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	DoctorNumber       int64                `json:"doctorNumber" bson:"doctorNumber"`
	Name               string               `json:"name" bson:"name"`
	Specialization     string               `json:"specialization" bson:"specialization"`
	ContactNumber      string               `json:"contactNumber" bson:"contactNumber"`
	Department         string               `json:"department" bson:"department"`
	AvailabilityStatus string               `json:"availabilityStatus" bson:"availabilityStatus"`
	AssignedPatients   []primitive.ObjectID `json:"assignedPatients" bson:"assignedPatients"`
	CreatedAt          time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt" bson:"updatedAt"`
}
