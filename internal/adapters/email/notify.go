package email

import (
	"fmt"
	"html"
)

// ContactNotification builds the email sent to the site owner when a new
// contact enquiry is submitted.
func ContactNotification(to, name, fromEmail, phone, message string) SendRequest {
	body := fmt.Sprintf(
		`<h2>New contact enquiry</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		html.EscapeString(name),
		html.EscapeString(fromEmail),
		html.EscapeString(phone),
		html.EscapeString(message),
	)
	return SendRequest{
		To:      []string{to},
		Subject: "New contact enquiry from " + name,
		HTML:    body,
		ReplyTo: fromEmail,
	}
}

// PerformanceLeadNotification builds the email sent when a visitor requests
// a free site performance review.
func PerformanceLeadNotification(to, name, fromEmail, phone string) SendRequest {
	body := fmt.Sprintf(
		`<h2>New performance review request</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>`,
		html.EscapeString(name),
		html.EscapeString(fromEmail),
		html.EscapeString(phone),
	)
	return SendRequest{
		To:      []string{to},
		Subject: "New performance review request from " + name,
		HTML:    body,
		ReplyTo: fromEmail,
	}
}
