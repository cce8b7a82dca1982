package role

import "caretrack/config/db"

const (
	Admin         = "Admin"
	Patient       = "Patient"
	Doctor        = "Doctor"
	Nurse         = "Nurse"
	LabTechnician = "Lab Technician"
	Biller        = "Biller"
	Receptionist  = "Receptionist"
)

// CollectionFor resolves an account role to the collection holding its linked
// profile. Staff subroles all live in the staff collection; Admin accounts have
// no linked profile.
func CollectionFor(r string) (string, bool) {
	switch r {
	case Patient:
		return db.PatientCollection, true
	case Doctor:
		return db.DoctorCollection, true
	case Nurse, LabTechnician, Biller, Receptionist:
		return db.StaffCollection, true
	default:
		return "", false
	}
}

// IsStaff reports whether the role is a staff subrole.
func IsStaff(r string) bool {
	switch r {
	case Nurse, LabTechnician, Biller, Receptionist:
		return true
	}
	return false
}
