package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends plain text mail from a verified SES identity.
type SESMailer struct {
	client sesAPI
	from   string
}

func NewSESMailer(cfg aws.Config, from string) *SESMailer {
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(m.from),
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		zap.L().Warn("SES send error", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// LogMailer writes mail to the log. Used when SES_EMAIL is not configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	zap.L().Info("mail", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}

func SendResetEmail(ctx context.Context, m Mailer, to, code string) error {
	subject := "パスワード再設定コード"
	body := fmt.Sprintf("パスワード再設定コード: %s\n\n15分以内にアプリで入力し、新しいパスワードを設定してください。", code)
	return m.Send(ctx, to, subject, body)
}

func SendCommentEmail(ctx context.Context, m Mailer, to, theme, comment string) error {
	subject := "野球ノートにコメントが届きました"
	body := fmt.Sprintf("ノート「%s」にコーチからコメントが届きました。\n\n%s", theme, comment)
	return m.Send(ctx, to, subject, body)
}
