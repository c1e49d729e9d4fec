package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// SendEmail delivers an HTML email through the configured SMTP relay.
// Declared as a variable so tests can stub delivery out.
var SendEmail = func(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendOTPEmail sends the verification code for a new account.
func SendOTPEmail(to, code string) error {
	subject := "Verify Your Email - Thusha Optical"
	body := "<p>Your verification code is: <strong>" + code + "</strong></p>" +
		"<p>The code expires in 5 minutes.</p>"
	return SendEmail(to, subject, body)
}
