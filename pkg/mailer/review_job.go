package mailer

import "fmt"

// ReviewJob is the JSON payload put on the RabbitMQ queue when a KYC review
// verdict arrives. The notify worker turns it into an email.
type ReviewJob struct {
	UserEmail    string `json:"user_email"`
	Status       string `json:"status"` // approved / rejected
	ReviewResult string `json:"review_result,omitempty"`
}

// Render returns the subject and plain-text body for the job.
func (j ReviewJob) Render() (subject, text string) {
	switch j.Status {
	case "approved":
		subject = "Your identity verification is complete"
		text = "Good news: your identity verification was approved. You can now continue with your onboarding."
	case "rejected":
		subject = "Your identity verification needs attention"
		text = "Unfortunately your identity verification was not approved. Please contact support to continue."
	default:
		subject = "Identity verification update"
		text = fmt.Sprintf("Your identity verification status changed to %q.", j.Status)
	}
	return subject, text
}
