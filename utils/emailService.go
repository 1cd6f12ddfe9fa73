package utils

import (
	"fmt"
	"log"

	"forma/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendAccountDecisionEmail tells a user their account was approved or
// denied. Best-effort: a delivery failure is logged, never surfaced.
func SendAccountDecisionEmail(email, name string, approved bool) {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping account decision email")
		return
	}

	status := "approuvé"
	if !approved {
		status = "refusé"
	}

	from := mail.NewEmail("Forma", config.AppConfig.DefaultFromEmail)
	to := mail.NewEmail(name, email)
	subject := "Votre demande de compte"
	plain := fmt.Sprintf("Bonjour %s, votre demande de compte a été %s.", name, status)
	html := fmt.Sprintf("<p>Bonjour %s,</p><p>Votre demande de compte a été <strong>%s</strong>.</p>", name, status)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending account decision email to %s: %v", email, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("Account decision email to %s rejected with status %d", email, resp.StatusCode)
		return
	}

	log.Printf("Account decision email sent to %s", email)
}
