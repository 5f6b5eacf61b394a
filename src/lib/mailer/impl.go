package mailer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"savanablu/src/lib"
	awslib "savanablu/src/lib/aws"
	"savanablu/src/types"

	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// NewMailerMessage hands a message to the configured delivery path. With a
// queue driver (sqs, kafka) the send happens in the queue consumer; the
// default driver dials SMTP directly.
func NewMailerMessage(input *lib.SendMailInput) error {
	driver := os.Getenv("MAIL_DRIVER")
	switch driver {
	case "sqs":
		body, err := payload(input)
		if err != nil {
			return err
		}
		queue := os.Getenv("EMAIL_QUEUE")
		if err := lib.SQSProduceMessage(queue, body); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	case "kafka":
		queue := os.Getenv("EMAIL_QUEUE")
		if err := lib.KafkaProduceMessage("emails", queue, jsonBody(input)); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	case "ses":
		return sendViaSES(input)
	default:
		return lib.SendMail(input)
	}
}

func jsonBody(input *lib.SendMailInput) types.JSONB {
	return types.JSONB{
		"from":        input.From,
		"from-name":   input.FromName,
		"to":          input.To,
		"reply-to":    input.ReplyTo,
		"body":        input.Body,
		"html":        input.Html,
		"subject":     input.Subject,
		"attachments": input.Attachments,
	}
}

func payload(input *lib.SendMailInput) (string, error) {
	body := jsonBody(input)
	b, err := json.Marshal(&body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func sendViaSES(input *lib.SendMailInput) error {
	if len(input.Attachments) > 0 {
		log.Printf("[MAILER] ses driver does not support attachments, dropping %d file(s)\n", len(input.Attachments))
	}
	content := &sestypes.Content{Data: &input.Body}
	body := &sestypes.Body{Text: content}
	if input.Html {
		body = &sestypes.Body{Html: content}
	}
	return awslib.SESSendMessage(
		&input.From,
		&sestypes.Destination{ToAddresses: input.To},
		&sestypes.Message{
			Subject: &sestypes.Content{Data: &input.Subject},
			Body:    body,
		},
	)
}
