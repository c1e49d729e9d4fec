package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
)

func issuePrescription(t *testing.T, app *fiber.App, token, patientName string) map[string]interface{} {
	t.Helper()

	resp := doRequest(t, app, "POST", "/prescriptions", map[string]interface{}{
		"patient_name":       patientName,
		"right_sphere":       -1.25,
		"left_sphere":        -1.5,
		"pupillary_distance": 62,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeMap(t, resp)
}

func TestCreatePrescriptionSequentialIDs(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)
	createUser(t, "Selvi", uniqueEmail("selvi"), models.RoleCustomer)
	token := tokenFor(t, doctorUser)

	first := issuePrescription(t, app, token, "Kumar")
	second := issuePrescription(t, app, token, "Selvi")

	assert.Equal(t, "PC-001", first["prescription_id"])
	assert.Equal(t, "PC-002", second["prescription_id"])
}

func TestCreatePrescriptionDefaults(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)

	issuePrescription(t, app, tokenFor(t, doctorUser), "Kumar")

	var prescription models.Prescription
	require.NoError(t, db.DB.First(&prescription).Error)
	assert.Equal(t, models.PrescriptionActive, prescription.Status)
	assert.False(t, prescription.DateIssued.IsZero())
	assert.WithinDuration(t,
		prescription.DateIssued.Add(models.PrescriptionValidity),
		prescription.ExpiryDate, time.Minute)
}

func TestCreatePrescriptionExpiresPrevious(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)
	token := tokenFor(t, doctorUser)

	first := issuePrescription(t, app, token, "Kumar")
	issuePrescription(t, app, token, "Kumar")

	var old models.Prescription
	require.NoError(t, db.DB.Where("prescription_id = ?", first["prescription_id"]).First(&old).Error)
	assert.Equal(t, models.PrescriptionExpired, old.Status)
	assert.WithinDuration(t, time.Now(), old.ExpiryDate, time.Minute)

	var activeCount int64
	db.DB.Model(&models.Prescription{}).
		Where("status = ?", models.PrescriptionActive).Count(&activeCount)
	assert.Equal(t, int64(1), activeCount, "a patient never holds two live prescriptions")
}

func TestCreatePrescriptionUnknownPatient(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)

	resp := doRequest(t, app, "POST", "/prescriptions", map[string]interface{}{
		"patient_name": "Nobody",
	}, tokenFor(t, doctorUser))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Patient with this name does not exist", decodeMap(t, resp)["error"])
}

func TestCreatePrescriptionRequiresDoctorRole(t *testing.T) {
	app := setupApp(t)
	customer := createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)

	resp := doRequest(t, app, "POST", "/prescriptions", map[string]interface{}{
		"patient_name": "Kumar",
	}, tokenFor(t, customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetPrescriptionsPatientSeesOnlyActive(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	patient := createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)
	token := tokenFor(t, doctorUser)

	issuePrescription(t, app, token, "Kumar")
	issuePrescription(t, app, token, "Kumar")

	resp := doRequest(t, app, "GET", "/prescriptions", nil, tokenFor(t, patient))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decodeList(t, resp)
	require.Len(t, listed, 1, "expired prescriptions drop out of the patient list")
	assert.Equal(t, "active", listed[0]["status"])

	// The issuing doctor still sees both.
	resp = doRequest(t, app, "GET", "/prescriptions", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)
}

func TestGetPrescriptionByIDIncludesExpired(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	patient := createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)
	token := tokenFor(t, doctorUser)

	first := issuePrescription(t, app, token, "Kumar")
	issuePrescription(t, app, token, "Kumar")

	var expired models.Prescription
	require.NoError(t, db.DB.Where("prescription_id = ?", first["prescription_id"]).First(&expired).Error)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/prescriptions/%d", expired.ID), nil, tokenFor(t, patient))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "expired", decodeMap(t, resp)["status"])
}

func TestGetPrescriptionForbiddenForStranger(t *testing.T) {
	app := setupApp(t)
	doctorUser := createUser(t, "Dr. Raj", uniqueEmail("doctor"), models.RoleDoctor)
	createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)
	stranger := createUser(t, "Stranger", uniqueEmail("stranger"), models.RoleCustomer)

	created := issuePrescription(t, app, tokenFor(t, doctorUser), "Kumar")

	resp := doRequest(t, app, "GET", fmt.Sprintf("/prescriptions/%v", created["id"]), nil, tokenFor(t, stranger))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdatePrescriptionOwnDoctorOnly(t *testing.T) {
	app := setupApp(t)
	issuer := createUser(t, "Dr. Raj", uniqueEmail("issuer"), models.RoleDoctor)
	other := createUser(t, "Dr. Selvi", uniqueEmail("other"), models.RoleDoctor)
	createUser(t, "Kumar", uniqueEmail("kumar"), models.RoleCustomer)

	created := issuePrescription(t, app, tokenFor(t, issuer), "Kumar")
	path := fmt.Sprintf("/prescriptions/%v", created["id"])

	resp := doRequest(t, app, "PATCH", path, map[string]interface{}{
		"left_sphere": -2.0,
	}, tokenFor(t, other))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "PATCH", path, map[string]interface{}{
		"left_sphere": -2.0,
	}, tokenFor(t, issuer))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Prescription
	require.NoError(t, db.DB.First(&updated, created["id"]).Error)
	assert.Equal(t, -2.0, updated.LeftSphere)
}
