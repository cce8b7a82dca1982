package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AdmissionInPatient  = "In-Patient"
	AdmissionOutPatient = "Out-Patient"
)

type Patient struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	PatientNumber   int64                `json:"patientNumber" bson:"patientNumber"`
	Name            string               `json:"name" bson:"name"`
	Age             int                  `json:"age" bson:"age"`
	Gender          string               `json:"gender" bson:"gender"`
	ContactNumber   string               `json:"contactNumber" bson:"contactNumber"`
	Address         string               `json:"address" bson:"address"`
	BloodGroup      string               `json:"bloodGroup" bson:"bloodGroup"`
	AdmissionStatus string               `json:"admissionStatus" bson:"admissionStatus"`
	MedicalHistory  []primitive.ObjectID `json:"medicalHistory" bson:"medicalHistory"`
	Bills           []primitive.ObjectID `json:"bills" bson:"bills"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PatientDetail is the read shape with the reference lists populated.
type PatientDetail struct {
	Patient
	MedicalHistory []MedicalRecord `json:"medicalHistory"`
	Bills          []Bill          `json:"bills"`
}
