package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Producers set Template and Data; Subject/Text/HTML are used only when no
// template is given.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "signup_otp"
	Data     map[string]any `json:"data,omitempty"`
}
