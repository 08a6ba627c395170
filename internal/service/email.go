package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/logger"
)

type emailService struct {
	apiKey      string
	fromEmail   string
	fromName    string
	frontendURL string
}

func NewEmailService(apiKey, fromEmail, fromName, frontendURL string) EmailService {
	return &emailService{
		apiKey:      apiKey,
		fromEmail:   fromEmail,
		fromName:    fromName,
		frontendURL: frontendURL,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendWelcome(toEmail, name string) error {
	subject := "Welcome to your tenant portal"
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour tenant account has been created. Sign in at %s to view your lease, payments and maintenance requests.\n",
		name, s.frontendURL)
	htmlContent := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your tenant account has been created. Sign in at <a href="%s">%s</a> to view your lease, payments and maintenance requests.</p>`,
		name, s.frontendURL, s.frontendURL)
	return s.send(toEmail, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPaymentReceived(toEmail, name string, amount float64, propertyName, reference string) error {
	subject := "Payment received"
	plainText := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %.2f for %s.\nReference: %s\n\nThank you.\n",
		name, amount, propertyName, reference)
	htmlContent := fmt.Sprintf(`<p>Hello %s,</p>
<p>We received your payment of <strong>%.2f</strong> for %s.</p>
<p>Reference: %s</p>
<p>Thank you.</p>`,
		name, amount, propertyName, reference)
	return s.send(toEmail, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPaymentReminder(toEmail, name string, amount float64, dueDate time.Time, propertyName string) error {
	subject := "Upcoming rent payment"
	due := dueDate.Format("2 January 2006")
	plainText := fmt.Sprintf(
		"Hello %s,\n\nA rent payment of %.2f for %s is due on %s. Pay on time to avoid a late fee.\n",
		name, amount, propertyName, due)
	htmlContent := fmt.Sprintf(`<p>Hello %s,</p>
<p>A rent payment of <strong>%.2f</strong> for %s is due on %s. Pay on time to avoid a late fee.</p>`,
		name, amount, propertyName, due)
	return s.send(toEmail, name, subject, plainText, htmlContent)
}

func (s *emailService) SendOverdueNotice(toEmail, name string, amount, lateFee, total float64, dueDate time.Time, propertyName string) error {
	subject := "Overdue rent payment"
	due := dueDate.Format("2 January 2006")
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour rent payment of %.2f for %s was due on %s and is now overdue.\nLate fee: %.2f\nTotal due: %.2f\n\nPlease settle as soon as possible.\n",
		name, amount, propertyName, due, lateFee, total)
	htmlContent := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your rent payment of <strong>%.2f</strong> for %s was due on %s and is now overdue.</p>
<p>Late fee: %.2f<br>Total due: <strong>%.2f</strong></p>
<p>Please settle as soon as possible.</p>`,
		name, amount, propertyName, due, lateFee, total)
	return s.send(toEmail, name, subject, plainText, htmlContent)
}

func (s *emailService) SendArrearsSummary(toEmail, name string, overdue []domain.OverduePayment, total float64) error {
	subject := "Outstanding rent summary"

	var plain strings.Builder
	var rows strings.Builder
	fmt.Fprintf(&plain, "Hello %s,\n\nYou have %d overdue payment(s):\n\n", name, len(overdue))
	for _, p := range overdue {
		due := p.DueDate.Format("2 January 2006")
		fmt.Fprintf(&plain, "- %s: %.2f due %s (late fee %.2f, total %.2f)\n",
			p.PropertyName, p.Amount, due, p.LateFee, p.TotalDue)
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%.2f</td><td>%s</td><td>%.2f</td><td>%.2f</td></tr>",
			p.PropertyName, p.Amount, due, p.LateFee, p.TotalDue)
	}
	fmt.Fprintf(&plain, "\nTotal outstanding: %.2f\n\nSign in at %s to pay.\n", total, s.frontendURL)

	htmlContent := fmt.Sprintf(`<p>Hello %s,</p>
<p>You have %d overdue payment(s):</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Property</th><th>Amount</th><th>Due date</th><th>Late fee</th><th>Total</th></tr>%s</table>
<p>Total outstanding: <strong>%.2f</strong></p>
<p>Sign in at <a href="%s">%s</a> to pay.</p>`,
		name, len(overdue), rows.String(), total, s.frontendURL, s.frontendURL)

	return s.send(toEmail, name, subject, plain.String(), htmlContent)
}
