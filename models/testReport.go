package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PDFFile struct {
	Filename    string `json:"filename" bson:"filename"`
	ContentType string `json:"contentType" bson:"contentType"`
	Data        []byte `json:"-" bson:"data"`
}

type TestReport struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportNumber  int64              `json:"reportNumber" bson:"reportNumber"`
	PatientNumber int64              `json:"patientNumber" bson:"patientNumber"`
	DoctorNumber  int64              `json:"doctorNumber" bson:"doctorNumber"`
	TestName      string             `json:"testName" bson:"testName"`
	TestResult    string             `json:"testResult" bson:"testResult"`
	TestDate      time.Time          `json:"testDate" bson:"testDate"`
	PDFFile       PDFFile            `json:"pdfFile" bson:"pdfFile"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TestReportMeta is the projection used when reports ride along inside a
// medical-record listing.
type TestReportMeta struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportNumber  int64              `json:"reportNumber" bson:"reportNumber"`
	PatientNumber int64              `json:"patientNumber" bson:"patientNumber"`
	DoctorNumber  int64              `json:"doctorNumber" bson:"doctorNumber"`
	TestName      string             `json:"testName" bson:"testName"`
	TestResult    string             `json:"testResult" bson:"testResult"`
	TestDate      time.Time          `json:"testDate" bson:"testDate"`
	PDFFile       struct {
		Filename    string `json:"filename" bson:"filename"`
		ContentType string `json:"contentType" bson:"contentType"`
	} `json:"pdfFile" bson:"pdfFile"`
}
