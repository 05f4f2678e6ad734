package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type EmailData struct {
	Name         string
	Message      string
	CustomerName string
	OrderID      string
	Items        []EmailItem
	TotalAmount  string
}

type EmailItem struct {
	ProductName  string
	Quantity     int
	PricePerUnit string
}

type Mailer struct {
	From     string
	Password string
	SMTPHost string
	Address  string
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.From != "" && m.Address != ""
}

func (m *Mailer) SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.From, m.Password, m.SMTPHost)
	if err := smtp.SendMail(m.Address, auth, m.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
