package services

import "fmt"

// Mailer abstracts outbound email so handlers and the heartbeat can be
// tested without hitting the Resend API.
type Mailer interface {
	Send(subject, body string, recipients []string) error
}

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct{}

func (ResendMailer) Send(subject, body string, recipients []string) error {
	return SendEmail(subject, body, recipients)
}

// PasswordResetEmail builds the subject and HTML body for a reset email.
// The raw token is embedded in a frontend URL; it is never stored
// server-side.
func PasswordResetEmail(resetBaseURL, token string) (subject, body string) {
	subject = "Reset your password"
	body = fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href="%s?token=%s">Reset your password</a></p>
<p>The link is valid for one hour and can be used once. If you did not
request this, ignore this email.</p>`,
		resetBaseURL, token,
	)
	return subject, body
}

// HeartbeatAlertEmail builds the alert sent when the keep-alive task has
// not succeeded within its alert threshold.
func HeartbeatAlertEmail(sinceHours float64) (subject, body string) {
	subject = "Keep-alive heartbeat failing"
	body = fmt.Sprintf(
		`<p>The database keep-alive task has not completed successfully for %.0f hours.
The free-tier inactivity timer may be at risk. Check database connectivity.</p>`,
		sinceHours,
	)
	return subject, body
}
