package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// Staff covers every non-doctor employee; Role is the free-text subrole
// (Nurse, Lab Technician, Biller, Receptionist, ...).
type Staff struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StaffNumber      int64              `json:"staffNumber" bson:"staffNumber"`
	Name             string             `json:"name" bson:"name"`
	Age              int                `json:"age" bson:"age"`
	Gender           string             `json:"gender" bson:"gender"`
	Address          string             `json:"address" bson:"address"`
	Role             string             `json:"role" bson:"role"`
	ContactNumber    string             `json:"contactNumber" bson:"contactNumber"`
	Department       string             `json:"department" bson:"department"`
	AttendanceStatus string             `json:"attendanceStatus" bson:"attendanceStatus"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
