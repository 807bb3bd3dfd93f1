package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional email via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. With no from-address
// configured the service is disabled and every send is a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendVerificationEmail sends the email-verification link in the
// guardian's preferred language
func (s *EmailService) SendVerificationEmail(ctx context.Context, toEmail, toName, token, language string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): verification to %s", toEmail)
		return nil
	}

	verifyLink := fmt.Sprintf("%s/auth/verify-email?token=%s", s.appBaseURL, token)

	subject := "Verify your Rafiq account"
	greeting := fmt.Sprintf("Hello %s,", toName)
	body := "Welcome to Rafiq! Please confirm your email address to activate your family account."
	action := "Verify Email"
	if language == "ar" {
		subject = "تأكيد حسابك في رفيق"
		greeting = fmt.Sprintf("مرحباً %s،", toName)
		body = "أهلاً بك في رفيق! يرجى تأكيد بريدك الإلكتروني لتفعيل حساب عائلتك."
		action = "تأكيد البريد الإلكتروني"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #2e7d32; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>Rafiq</h1></div>
		<div class="content">
			<p>%s</p>
			<p>%s</p>
			<a href="%s" class="button">%s</a>
			<p>%s</p>
		</div>
	</div>
</body>
</html>`, greeting, body, verifyLink, action, verifyLink)

	textBody := fmt.Sprintf("%s\n\n%s\n\n%s\n", greeting, body, verifyLink)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("Email sent to %s: %s", toEmail, subject)
	return nil
}
