// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"canchaclub-backend/models"
	"canchaclub-backend/utils"
)

// Notifier sends WhatsApp booking confirmations through Twilio. Sending is
// best effort: failures are logged and never affect the booking itself.
type Notifier struct {
	client *twilio.RestClient
	from   string
}

// NewNotifierFromEnv returns nil when Twilio credentials are not configured,
// which disables confirmations entirely.
func NewNotifierFromEnv() *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_NUMBER")
	if accountSid == "" || authToken == "" || from == "" {
		return nil
	}

	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *Notifier) SendBookingConfirmation(res *models.Reservation, court *models.Court) {
	to := strings.TrimSpace(res.ClientWhatsApp)
	if !utils.ValidatePhone(to) {
		log.Printf("Skipping confirmation for reservation %d: %q is not a sendable number", res.ID, to)
		return
	}
	if !strings.HasPrefix(to, "+") {
		to = "+" + to
	}

	message := fmt.Sprintf(
		"Hola %s! Tu reserva en %s para el %s a las %s está confirmada. Total: $%.2f, pagado: $%.2f.",
		res.ClientName, court.Name, res.Date, utils.ShortTime(res.StartTime),
		res.AmountTotal, res.AmountPaid,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + n.from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send confirmation to %s: %v", to, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Confirmation sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("Confirmation sent to %s, but no SID returned", to)
	}
}
