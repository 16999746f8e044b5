package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	EmailEnabled bool
	From         string
}

func New(store StoreAPI, mailer Mailer, emailEnabled bool, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{store: store, Mailer: mailer, EmailEnabled: emailEnabled, From: from}
}

// Notify records an in-app notification and, when email delivery is on,
// mails the recipient. Email failures are logged, never surfaced: the
// in-app record is the source of truth.
func (s *Service) Notify(ctx context.Context, recipientID, ntype, title, body string) error {
	if err := s.store.CreateNotification(ctx, recipientID, ntype, title, body); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailEnabled {
		return nil
	}
	email, err := s.store.RecipientEmail(ctx, recipientID)
	if err != nil {
		slog.Warn("notification email lookup failed", "recipient", recipientID, "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.From, email, title, body); err != nil {
		slog.Warn("notification email send failed", "recipient", recipientID, "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, recipientID string, limit, offset int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListNotifications(ctx, recipientID, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.store.CountUnread(ctx, recipientID)
}

func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return s.store.MarkRead(ctx, recipientID, notificationID)
}
