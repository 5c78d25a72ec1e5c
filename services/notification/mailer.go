package notification

import (
	"context"
	"fmt"

	"skillbridge/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Mailer delivers transactional email. The signup flow only needs OTP codes.
type Mailer interface {
	SendOTPEmail(ctx context.Context, to, code string) error
}

// SESMailer sends email through AWS SES.
type SESMailer struct {
	client *ses.Client
	sender string
}

// NewSESMailer creates an SES-backed mailer for the given region and sender.
func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) SendOTPEmail(ctx context.Context, to, code string) error {
	subject := "Your SkillBridge verification code"
	body := fmt.Sprintf("Your SkillBridge OTP is: %s. It expires in 5 minutes.", code)
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &m.sender,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// LogMailer logs instead of sending; used in development.
type LogMailer struct{}

func (LogMailer) SendOTPEmail(ctx context.Context, to, code string) error {
	utils.GetLogger().Info("Sending OTP email", zap.String("to", to), zap.String("code", code))
	return nil
}
