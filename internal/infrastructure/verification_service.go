package infrastructure

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// VerificationService generates email-verification codes and delivers them
// through SendGrid.
type VerificationService struct {
	apiKey     string
	senderName string
	senderAddr string
	codeLength int
	logger     zerolog.Logger
}

func NewVerificationService(apiKey, senderName, senderAddr string, logger zerolog.Logger) *VerificationService {
	return &VerificationService{
		apiKey:     apiKey,
		senderName: senderName,
		senderAddr: senderAddr,
		codeLength: 6,
		logger:     logger,
	}
}

// GenerateCode returns a random numeric code of fixed length.
func (v *VerificationService) GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < v.codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", v.codeLength, n), nil
}

// CompareCodes compares in constant time.
func (v *VerificationService) CompareCodes(provided, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

func (v *VerificationService) SendCode(ctx context.Context, recipientEmail, code string) error {
	if v.apiKey == "" {
		return errors.New("email delivery is not configured")
	}

	from := mail.NewEmail(v.senderName, v.senderAddr)
	to := mail.NewEmail("", recipientEmail)
	subject := "Verify your email"
	plainTextContent := fmt.Sprintf("Your verification code is: %s", code)
	htmlContent := fmt.Sprintf("<strong>Your verification code is: %s</strong>", code)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(v.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		v.logger.Error().Err(err).Str("recipient", recipientEmail).Msg("failed to send verification email")
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	if response.StatusCode >= 400 {
		v.logger.Error().Int("status", response.StatusCode).Str("recipient", recipientEmail).Msg("verification email rejected")
		return fmt.Errorf("verification email rejected with status %d", response.StatusCode)
	}

	v.logger.Debug().Str("recipient", recipientEmail).Msg("verification email sent")
	return nil
}
