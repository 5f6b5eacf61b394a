package common

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"savanablu/src/config"
	"savanablu/src/lib"
	"savanablu/src/lib/mailer"
	"savanablu/src/models"

	"github.com/tidwall/gjson"
	"github.com/yeqown/go-qrcode"
)

// Swapped out by tests.
var sendNotification = mailer.NewMailerMessage

// NewNotificationFunc Replace the mail dispatch path, used by tests.
func NewNotificationFunc(fn func(*lib.SendMailInput) error) {
	sendNotification = fn
}

func guestSummaryRows(b *models.Booking) string {
	rows := fmt.Sprintf(`
		<tr><td>Booking reference</td><td>%s</td></tr>
		<tr><td>Experience</td><td>%s</td></tr>
		<tr><td>Date</td><td>%s</td></tr>
		<tr><td>Guests</td><td>%d adult(s), %d child(ren)</td></tr>
		<tr><td>Total</td><td>USD %.2f</td></tr>
	`, b.ID, b.Title, b.Date, b.Adults, b.Children, b.TotalUSD)
	if b.DiscountUSD > 0 {
		rows += fmt.Sprintf(`<tr><td>Promo %s</td><td>-USD %.2f</td></tr>`, b.PromoCode, b.DiscountUSD)
	}
	return rows
}

// SendBookingOnHoldEmails notifies the guest that their booking is awaiting
// the deposit and copies the operator inbox. Meant to run on its own
// goroutine; failures are logged, never surfaced to the guest.
func SendBookingOnHoldEmails(b *models.Booking) {
	payLine := "<p>We will contact you shortly with payment instructions.</p>"
	if b.PaymentURL != "" {
		payLine = fmt.Sprintf(`<p>To secure your booking, please pay the %.0f%% deposit here: <a href="%s">complete payment</a></p>`, config.DEPOSIT_RATE*100, b.PaymentURL)
	}
	if err := sendNotification(&lib.SendMailInput{
		From:     config.MailFrom(),
		FromName: "Savana Blu",
		ReplyTo:  config.OperatorEmail(),
		To:       []string{b.CustomerEmail},
		Subject:  fmt.Sprintf("Savana Blu booking received: %s", b.Title),
		Body: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Thank you for booking with Savana Blu. We have received your request and placed it on hold.</p>
			<table>%s</table>
			%s
			<p>Karibu sana!</p>
		`, b.CustomerName, guestSummaryRows(b), payLine),
		Html: true,
	}); err != nil {
		log.Printf("[mailer] Error sending on-hold email for booking %s: %s\n", b.ID, err.Error())
	}

	if err := sendNotification(&lib.SendMailInput{
		From:     config.MailFrom(),
		FromName: "Savana Blu Bookings",
		To:       []string{config.OperatorEmail()},
		Subject:  fmt.Sprintf("New booking %s: %s on %s", b.ID, b.Title, b.Date),
		Body: fmt.Sprintf(`
			<p>New booking from %s (%s, %s)</p>
			<table>%s</table>
			<p>Status: %s, payment ref: %s</p>
		`, b.CustomerName, b.CustomerEmail, b.CustomerPhone, guestSummaryRows(b), b.Status, b.PaymentRef),
		Html: true,
	}); err != nil {
		log.Printf("[mailer] Error sending operator alert for booking %s: %s\n", b.ID, err.Error())
	}
}

// bookingVoucher renders a QR voucher to a temp file and returns its path.
func bookingVoucher(b *models.Booking) (string, error) {
	doc, err := json.Marshal(map[string]any{
		"bookingId": b.ID,
		"title":     b.Title,
		"date":      b.Date,
		"adults":    b.Adults,
		"children":  b.Children,
	})
	if err != nil {
		return "", err
	}
	qrc, err := qrcode.New(string(doc))
	if err != nil {
		return "", err
	}
	filepath := path.Join(os.TempDir(), fmt.Sprintf("%s.jpeg", b.ID))
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}

// SendBookingConfirmedEmails sends the confirmation with the voucher QR
// attached, plus an operator copy. Voucher generation failing downgrades the
// email to no attachment rather than blocking it.
func SendBookingConfirmedEmails(b *models.Booking) {
	attachments := []string{}
	voucher, err := bookingVoucher(b)
	if err != nil {
		log.Printf("[mailer] Could not generate voucher for booking %s: %s\n", b.ID, err.Error())
	} else {
		attachments = append(attachments, voucher)
	}

	if err := sendNotification(&lib.SendMailInput{
		From:        config.MailFrom(),
		FromName:    "Savana Blu",
		ReplyTo:     config.OperatorEmail(),
		To:          []string{b.CustomerEmail},
		Subject:     fmt.Sprintf("Savana Blu booking confirmed: %s", b.Title),
		Attachments: attachments,
		Body: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your deposit has been received and your booking is confirmed.</p>
			<table>%s
			<tr><td>Deposit paid</td><td>USD %.2f</td></tr>
			<tr><td>Balance due on arrival</td><td>USD %.2f</td></tr>
			</table>
			<p>Please present the attached voucher at the start of your trip.</p>
			<p>Karibu sana!</p>
		`, b.CustomerName, guestSummaryRows(b), b.DepositUSD, b.BalanceUSD),
		Html: true,
	}); err != nil {
		log.Printf("[mailer] Error sending confirmation email for booking %s: %s\n", b.ID, err.Error())
	}

	if err := sendNotification(&lib.SendMailInput{
		From:     config.MailFrom(),
		FromName: "Savana Blu Bookings",
		To:       []string{config.OperatorEmail()},
		Subject:  fmt.Sprintf("Deposit received for booking %s: %s on %s", b.ID, b.Title, b.Date),
		Body: fmt.Sprintf(`
			<p>Deposit of USD %.2f received from %s (%s)</p>
			<table>%s</table>
			<p>Outstanding balance: USD %.2f</p>
		`, b.DepositUSD, b.CustomerName, b.CustomerEmail, guestSummaryRows(b), b.BalanceUSD),
		Html: true,
	}); err != nil {
		log.Printf("[mailer] Error sending operator confirmation for booking %s: %s\n", b.ID, err.Error())
	}
}

// EmailsToSendConsumer drains the email queue when MAIL_DRIVER routes through
// sqs or kafka. The payload is the JSON body produced by the mailer package.
func EmailsToSendConsumer(spayload string) {
	if !gjson.Valid(spayload) {
		log.Printf("[EmailsToSend]: Received invalid json body. Aborting")
		return
	}
	var to []string
	for _, r := range gjson.Get(spayload, "to").Array() {
		to = append(to, r.String())
	}
	var attachments []string
	for _, r := range gjson.Get(spayload, "attachments").Array() {
		attachments = append(attachments, r.String())
	}
	input := &lib.SendMailInput{
		From:        gjson.Get(spayload, "from").String(),
		FromName:    gjson.Get(spayload, "from-name").String(),
		ReplyTo:     gjson.Get(spayload, "reply-to").String(),
		To:          to,
		Subject:     gjson.Get(spayload, "subject").String(),
		Body:        gjson.Get(spayload, "body").String(),
		Html:        gjson.Get(spayload, "html").Bool(),
		Attachments: attachments,
	}
	if err := lib.SendMail(input); err != nil {
		log.Printf("[EmailsToSend] Error sending message: %s\n", err.Error())
	}
}

// KafkaEmailsToSendConsumer blocks on the broker; run it on its own goroutine.
func KafkaEmailsToSendConsumer() {
	lib.KafkaConsumeTopic("savanablu-mailer", os.Getenv("EMAIL_QUEUE"), EmailsToSendConsumer)
}
