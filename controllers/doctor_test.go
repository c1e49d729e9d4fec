package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
)

// nextWeekday returns the next date (at least tomorrow) that falls on
// the given weekday, in wire format.
func nextWeekday(day time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(models.DateLayout)
}

func TestGetDoctorsFilters(t *testing.T) {
	app := setupApp(t)
	viewer := createUser(t, "Viewer", uniqueEmail("viewer"), models.RoleCustomer)
	token := tokenFor(t, viewer)

	_, raj := createDoctor(t, "Dr. Raj", uniqueEmail("raj"), "monday", "wednesday")
	require.NoError(t, db.DB.Model(raj).Update("specialization", "Ophthalmology").Error)
	createDoctor(t, "Dr. Selvi", uniqueEmail("selvi"), "friday")

	resp := doRequest(t, app, "GET", "/doctors", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	resp = doRequest(t, app, "GET", "/doctors?specialization=Ophthalmology", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	resp = doRequest(t, app, "GET", "/doctors?search=selvi", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doctors := decodeList(t, resp)
	require.Len(t, doctors, 1)
	user := doctors[0]["user"].(map[string]interface{})
	assert.Equal(t, "Dr. Selvi", user["name"])

	resp = doRequest(t, app, "GET", "/doctors?date="+nextWeekday(time.Friday), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)
}

func TestGetAvailableDoctors(t *testing.T) {
	app := setupApp(t)
	patient := createUser(t, "Patient", uniqueEmail("patient"), models.RoleCustomer)
	token := tokenFor(t, patient)

	_, monday := createDoctor(t, "Dr. Monday", uniqueEmail("monday"), "monday")
	createDoctor(t, "Dr. Friday", uniqueEmail("friday"), "friday")

	date := nextWeekday(time.Monday)
	resp := doRequest(t, app, "GET", "/doctors/available?date="+date, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doctors := decodeList(t, resp)
	require.Len(t, doctors, 1)

	// A doctor holding any active booking that day drops off the list.
	require.NoError(t, db.DB.Create(&models.Appointment{
		PatientID: patient.ID,
		DoctorID:  monday.ID,
		Date:      date,
		Time:      "09:00",
		Reason:    "Routine vision screening",
		Phone:     "0771234567",
		Status:    models.StatusConfirmed,
	}).Error)

	resp = doRequest(t, app, "GET", "/doctors/available?date="+date, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 0)
}

func TestGetAvailableDoctorsMalformedDate(t *testing.T) {
	app := setupApp(t)
	patient := createUser(t, "Patient", uniqueEmail("patient"), models.RoleCustomer)
	createDoctor(t, "Dr. Raj", uniqueEmail("raj"), "monday")

	resp := doRequest(t, app, "GET", "/doctors/available?date=tomorrow", nil, tokenFor(t, patient))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 0)
}

func TestDoctorProfileRoundTrip(t *testing.T) {
	app := setupApp(t)
	doctorUser, _ := createDoctor(t, "Dr. Raj", uniqueEmail("raj"), "Monday", "TUESDAY")
	token := tokenFor(t, doctorUser)

	resp := doRequest(t, app, "GET", "/doctors/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeMap(t, resp)
	// Availability entries are normalized to lowercase on save.
	assert.ElementsMatch(t, []interface{}{"monday", "tuesday"}, profile["availability"])

	resp = doRequest(t, app, "PATCH", "/doctors/profile", map[string]interface{}{
		"biography":        "Twenty years of clinical optometry.",
		"experience_years": 20,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.DoctorProfile
	require.NoError(t, db.DB.Where("user_id = ?", doctorUser.ID).First(&saved).Error)
	assert.Equal(t, 20, saved.ExperienceYears)
}

func TestDoctorProfileRequiresDoctorRole(t *testing.T) {
	app := setupApp(t)
	customer := createUser(t, "Customer", uniqueEmail("customer"), models.RoleCustomer)

	resp := doRequest(t, app, "GET", "/doctors/profile", nil, tokenFor(t, customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
