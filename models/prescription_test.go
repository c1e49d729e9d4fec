package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrescriptionIDSequence(t *testing.T) {
	gdb := openTestDB(t)

	for i, want := range []string{"PC-001", "PC-002", "PC-003"} {
		p := Prescription{DoctorID: 1, PatientID: uint(i + 1), PatientName: "Patient"}
		require.NoError(t, gdb.Create(&p).Error)
		assert.Equal(t, want, p.PrescriptionID)
	}
}

func TestPrescriptionIDSequenceGrowsPastPadding(t *testing.T) {
	gdb := openTestDB(t)

	seed := Prescription{DoctorID: 1, PatientID: 1, PatientName: "Patient", PrescriptionID: "PC-999"}
	require.NoError(t, gdb.Create(&seed).Error)

	next := Prescription{DoctorID: 1, PatientID: 2, PatientName: "Patient"}
	require.NoError(t, gdb.Create(&next).Error)
	assert.Equal(t, "PC-1000", next.PrescriptionID)
}

func TestPrescriptionDefaults(t *testing.T) {
	gdb := openTestDB(t)

	p := Prescription{DoctorID: 1, PatientID: 1, PatientName: "Patient"}
	require.NoError(t, gdb.Create(&p).Error)

	assert.Equal(t, PrescriptionActive, p.Status)
	assert.WithinDuration(t, time.Now(), p.DateIssued, time.Minute)
	assert.WithinDuration(t, time.Now().Add(PrescriptionValidity), p.ExpiryDate, time.Minute)
}

func TestPrescriptionExplicitValuesKept(t *testing.T) {
	gdb := openTestDB(t)

	issued := time.Now().AddDate(0, -1, 0)
	expiry := issued.AddDate(0, 6, 0)
	p := Prescription{
		DoctorID:    1,
		PatientID:   1,
		PatientName: "Patient",
		DateIssued:  issued,
		ExpiryDate:  expiry,
	}
	require.NoError(t, gdb.Create(&p).Error)

	assert.WithinDuration(t, issued, p.DateIssued, time.Second)
	assert.WithinDuration(t, expiry, p.ExpiryDate, time.Second)
}
