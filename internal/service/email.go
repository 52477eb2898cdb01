package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromName  string
	fromEmail string
}

func NewEmailService(apiKey, fromName, fromEmail string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingRequested(ctx context.Context, operatorEmail, farmerName, vehicleLabel string, totalAmount float64) error {
	body := fmt.Sprintf("Hello,\n\n%s has requested your %s for farm work. Quoted total: ₹%.2f.\n\nOpen the app to accept or reject the request.\n\nSaiKisan", farmerName, vehicleLabel, totalAmount)
	return s.send(operatorEmail, "New Booking Request", body)
}

func (s *emailService) SendBookingAccepted(ctx context.Context, farmerEmail, operatorName, vehicleLabel string) error {
	body := fmt.Sprintf("Hello,\n\n%s accepted your booking for %s.\n\nSaiKisan", operatorName, vehicleLabel)
	return s.send(farmerEmail, "Booking Accepted", body)
}

func (s *emailService) SendBookingRejected(ctx context.Context, farmerEmail, vehicleLabel, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking request for %s was rejected.", vehicleLabel)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nSaiKisan"
	return s.send(farmerEmail, "Booking Rejected", body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, farmerEmail, vehicleLabel, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking for %s was cancelled by the operator.", vehicleLabel)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nSaiKisan"
	return s.send(farmerEmail, "Booking Cancelled", body)
}

func (s *emailService) SendBookingCompleted(ctx context.Context, farmerEmail, vehicleLabel string, totalAmount float64) error {
	body := fmt.Sprintf("Hello,\n\nWork on your booking (%s) is complete. Total amount: ₹%.2f.\n\nSaiKisan", vehicleLabel, totalAmount)
	return s.send(farmerEmail, "Work Completed", body)
}
