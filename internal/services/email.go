package services

import (
	"context"
	"fmt"
	"net/smtp"

	"userhub/internal/config"
	"userhub/internal/logger"

	"go.uber.org/zap"
)

// ResetDelivery — внеполосная доставка токена сброса пароля. Сейчас это письмо,
// но воркфлоу от канала доставки не зависит.
type ResetDelivery interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	msg := []byte("Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(s.cfg.SMTPHost+":"+s.cfg.SMTPPort, auth, s.cfg.MailFrom, to, msg)
}

type MailJob struct {
	To      []string
	Subject string
	Body    string
}

// QueuedDelivery отправляет письма асинхронно через очередь воркеров,
// чтобы SMTP не держал обработку запроса.
type QueuedDelivery struct {
	jobs chan MailJob
}

func NewQueuedDelivery(email *EmailService, workers int) *QueuedDelivery {
	d := &QueuedDelivery{jobs: make(chan MailJob, 100)}
	for i := 0; i < workers; i++ {
		go func() {
			for job := range d.jobs {
				if err := email.Send(job.To, job.Subject, job.Body); err != nil {
					logger.Log.Error("Не удалось отправить письмо", zap.Error(err))
				}
			}
		}()
	}
	return d
}

func (d *QueuedDelivery) SendPasswordReset(_ context.Context, to, token string) error {
	body := fmt.Sprintf("Ваш токен для сброса пароля: %s\r\nТокен действует один раз и ограничен по времени.", token)
	d.jobs <- MailJob{
		To:      []string{to},
		Subject: "Сброс пароля",
		Body:    body,
	}
	return nil
}

func (d *QueuedDelivery) Close() {
	close(d.jobs)
}

// NopDelivery — заглушка на случай, когда SMTP не настроен: токен всё равно
// возвращается вызывающему (см. handlers), письмо просто не уходит.
type NopDelivery struct{}

func (NopDelivery) SendPasswordReset(ctx context.Context, to, _ string) error {
	logger.WithCtx(ctx).Warn("SMTP не настроен — письмо сброса пароля не отправлено", zap.String("email", to))
	return nil
}
