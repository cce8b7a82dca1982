package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentPending       = "Pending"
	PaymentPaid          = "Paid"
	PaymentPartiallyPaid = "Partially Paid"
)

type Bill struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BillNumber    int64              `json:"billNumber" bson:"billNumber"`
	PatientNumber int64              `json:"patientNumber" bson:"patientNumber"`
	DoctorNumber  int64              `json:"doctorNumber" bson:"doctorNumber"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	BillingDate   time.Time          `json:"billingDate" bson:"billingDate"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BillDetail adds the payer and doctor names resolved from their numbers.
type BillDetail struct {
	Bill
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}
