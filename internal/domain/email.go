package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the invitation email.
type InvitationEmailData struct {
	Email      string
	EventName  string
	AcceptLink string
	RejectLink string
	ExpiryDays int
}

// CredentialsEmailData holds data for the temporary-credentials email sent
// to users created through the new-user invitation flow.
type CredentialsEmailData struct {
	Email        string
	Name         string
	TempPassword string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendCredentials(ctx context.Context, data *CredentialsEmailData) error
}
