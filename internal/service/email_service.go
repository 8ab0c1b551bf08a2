package service

import (
	"context"
	"fmt"

	appconfig "brightsprout_backend/internal/config"
	"brightsprout_backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailService sends transactional mail through Amazon SES. When no
// from-address is configured the service stays disabled and sends are
// logged and skipped.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

func NewEmailService(cfg appconfig.EmailConfig) (*EmailService, error) {
	if cfg.FromEmail == "" {
		logger.Log.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Log.Info("email service enabled",
		zap.String("from", cfg.FromEmail),
		zap.String("region", cfg.AWSRegion))

	return &EmailService{
		client:     sesv2.NewFromConfig(awsCfg),
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		appBaseURL: cfg.AppBaseURL,
		enabled:    true,
	}, nil
}

func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a newly registered parent.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	if !s.enabled {
		logger.Log.Info("skipping email send (service disabled)", zap.String("to", toEmail))
		return nil
	}

	subject := "Welcome to BrightSprout!"
	htmlBody := fmt.Sprintf(`
<h1>Welcome, %s!</h1>
<p>Thank you for signing up for BrightSprout. We're excited to have you on board.</p>
<p>Here's what you can do next:</p>
<ul>
  <li>Add child profiles to your family account</li>
  <li>Let each child take their baseline assessment</li>
  <li>Follow their personalized learning path</li>
</ul>
<p>Explore our features and start your learning journey today!</p>
<p>Best regards,</p>
<p>The BrightSprout Team</p>
`, firstName)

	textBody := fmt.Sprintf(`Welcome, %s!

Thank you for signing up for BrightSprout. We're excited to have you on board.

Here's what you can do next:
- Add child profiles to your family account
- Let each child take their baseline assessment
- Follow their personalized learning path

Get started: %s/login

Best regards,
The BrightSprout Team
`, firstName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	logger.Log.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
