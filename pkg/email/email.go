package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendAgreementEmail sends an agreement to the client for review and signature.
// Callers treat failures as non-fatal; the send transition has already committed.
func (s *EmailService) SendAgreementEmail(toEmail, leadName, reference string) error {
	htmlContent, err := s.renderAgreementEmail(leadName, reference)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Agreement %s - DealDesk", reference)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// SendKickoffAssignedEmail notifies the assigned PM about a new kickoff request.
func (s *EmailService) SendKickoffAssignedEmail(toEmail, pmName, leadName string, expectedStart time.Time) error {
	htmlContent, err := s.renderKickoffAssignedEmail(pmName, leadName, expectedStart)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "New kickoff request assigned to you - DealDesk"
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// SendProjectCreatedEmail notifies the PM that a kickoff was accepted and its
// project has been created.
func (s *EmailService) SendProjectCreatedEmail(toEmail, pmName, projectRef string) error {
	htmlContent, err := s.renderProjectCreatedEmail(pmName, projectRef)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Project %s created - DealDesk", projectRef)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	return smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
}

// buildHTMLEmail constructs the raw email message with HTML content
func (s *EmailService) buildHTMLEmail(to, subject, htmlContent string) []byte {
	headers := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"
	return []byte(headers + htmlContent)
}

const agreementTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Agreement ready for signature</h2>
	<p>Dear {{.LeadName}},</p>
	<p>Your agreement <strong>{{.Reference}}</strong> is ready for review.</p>
	<p>Please visit <a href="{{.Link}}">{{.Link}}</a> to review and sign.</p>
	<p>Regards,<br>DealDesk</p>
</body>
</html>`

func (s *EmailService) renderAgreementEmail(leadName, reference string) (string, error) {
	tmpl, err := template.New("agreement").Parse(agreementTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"LeadName":  leadName,
		"Reference": reference,
		"Link":      fmt.Sprintf("%s/agreements/%s", s.config.FrontendURL, reference),
	})
	return buf.String(), err
}

const kickoffAssignedTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Kickoff request assigned</h2>
	<p>Hi {{.PMName}},</p>
	<p>A signed deal for <strong>{{.LeadName}}</strong> has been handed off to you.</p>
	<p>Expected start date: {{.ExpectedStart}}.</p>
	<p>Please review and accept, return, or reject the request in DealDesk.</p>
</body>
</html>`

func (s *EmailService) renderKickoffAssignedEmail(pmName, leadName string, expectedStart time.Time) (string, error) {
	tmpl, err := template.New("kickoff_assigned").Parse(kickoffAssignedTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"PMName":        pmName,
		"LeadName":      leadName,
		"ExpectedStart": expectedStart.Format("2006-01-02"),
	})
	return buf.String(), err
}

const projectCreatedTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Project created</h2>
	<p>Hi {{.PMName}},</p>
	<p>Project <strong>{{.ProjectRef}}</strong> has been created from your accepted kickoff request.</p>
</body>
</html>`

func (s *EmailService) renderProjectCreatedEmail(pmName, projectRef string) (string, error) {
	tmpl, err := template.New("project_created").Parse(projectCreatedTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"PMName":     pmName,
		"ProjectRef": projectRef,
	})
	return buf.String(), err
}
