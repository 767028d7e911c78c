package service

import (
	"context"
	"fmt"
	"strings"

	"brickvest-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to)
	return nil
}

func (s *emailService) SendBackerConfirmation(ctx context.Context, email, name string, shares int32, price string, propertyName string) error {
	subject := fmt.Sprintf("Share Commitment Confirmed: %s", propertyName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour commitment of %d shares at %s per share in %s has been recorded.\n\nBest regards,\nThe Brickvest Team",
		name, shares, price, propertyName)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOfferingClosedNotice(ctx context.Context, email, name string, filled, quantity int32) error {
	subject := "Offering Closed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour offering has been closed with %d of %d shares filled.\n\nBest regards,\nThe Brickvest Team",
		name, filled, quantity)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOpenOfferingDigest(ctx context.Context, email string, lines []string) error {
	subject := "Open Offerings Digest"
	body := "Current open offerings:\n\n" + strings.Join(lines, "\n") + "\n"
	return s.send(email, "Operations", subject, body)
}
