package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/middleware"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/routes"
	"github.com/thusha-optical/optical-shop-api/utils"
)

const testPassword = "password123"

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

var sentEmails []sentEmail

// setupApp builds the full route tree over a fresh in-memory database
// and stubs out email delivery.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A pooled connection would get its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb
	db.Migrate()

	t.Setenv("MEDIA_ROOT", t.TempDir())

	sentEmails = nil
	origSend := utils.SendEmail
	utils.SendEmail = func(to, subject, body string) error {
		sentEmails = append(sentEmails, sentEmail{To: to, Subject: subject, Body: body})
		return nil
	}
	t.Cleanup(func() { utils.SendEmail = origSend })

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPrescriptionRoutes(app)
	routes.SetupCatalogRoutes(app)
	routes.SetupContactRoutes(app)
	return app
}

func createUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createDoctor(t *testing.T, name, email string, availability ...string) (*models.User, *models.DoctorProfile) {
	t.Helper()

	user := createUser(t, name, email, models.RoleDoctor)
	profile := models.DoctorProfile{
		UserID:         user.ID,
		Specialization: "Optometry",
		Availability:   availability,
	}
	require.NoError(t, db.DB.Create(&profile).Error)
	return user, &profile
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request against the test app and returns
// the response.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateLayout)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}
