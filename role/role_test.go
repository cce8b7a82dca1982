package role

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"caretrack/config/db"
)

func TestCollectionFor(t *testing.T) {
	cases := []struct {
		role string
		coll string
		ok   bool
	}{
		{Patient, db.PatientCollection, true},
		{Doctor, db.DoctorCollection, true},
		{Nurse, db.StaffCollection, true},
		{LabTechnician, db.StaffCollection, true},
		{Biller, db.StaffCollection, true},
		{Receptionist, db.StaffCollection, true},
		{Admin, "", false},
		{"Janitor", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		coll, ok := CollectionFor(tc.role)
		assert.Equal(t, tc.coll, coll, tc.role)
		assert.Equal(t, tc.ok, ok, tc.role)
	}
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(Nurse))
	assert.True(t, IsStaff(LabTechnician))
	assert.False(t, IsStaff(Patient))
	assert.False(t, IsStaff(Doctor))
	assert.False(t, IsStaff(Admin))
}
