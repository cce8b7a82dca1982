package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MedicalRecord struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	RecordNumber  int64                `json:"recordNumber" bson:"recordNumber"`
	PatientNumber int64                `json:"patientNumber" bson:"patientNumber"`
	DoctorNumber  int64                `json:"doctorNumber" bson:"doctorNumber"`
	Diagnosis     string               `json:"diagnosis" bson:"diagnosis"`
	Treatment     string               `json:"treatment" bson:"treatment"`
	Medications   string               `json:"medications" bson:"medications"`
	FollowUpDate  *time.Time           `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	Notes         string               `json:"notes" bson:"notes"`
	TestReports   []primitive.ObjectID `json:"testReports" bson:"testReports"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// MedicalRecordDetail carries report metadata in place of the raw references.
// PDF bytes are intentionally left out of listings; they stream through the
// report-pdf endpoint only.
type MedicalRecordDetail struct {
	MedicalRecord
	TestReports []TestReportMeta `json:"testReports"`
}
