package notifications

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	created []Notification
	emails  map[string]string
	sendErr error
}

func (f *fakeStore) CreateNotification(ctx context.Context, recipientID, ntype, title, body string) error {
	f.created = append(f.created, Notification{RecipientID: recipientID, Type: ntype, Title: title, Body: body})
	return nil
}

func (f *fakeStore) RecipientEmail(ctx context.Context, recipientID string) (string, error) {
	email, ok := f.emails[recipientID]
	if !ok {
		return "", errors.New("no such employee")
	}
	return email, nil
}

func (f *fakeStore) ListNotifications(ctx context.Context, recipientID string, limit, offset int) ([]Notification, error) {
	return f.created, nil
}

func (f *fakeStore) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return len(f.created), nil
}

func (f *fakeStore) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, from, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestNotifyRecordsAndMails(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"e1": "ana@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, true, "hr@example.com")

	if err := svc.Notify(context.Background(), "e1", TypeDueReminder, "Reminder", "Due soon"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(store.created))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ana@example.com" {
		t.Fatalf("mail sent to %v, want ana@example.com", mailer.sent)
	}
}

func TestNotifySkipsMailWhenDisabled(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"e1": "ana@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, false, "")

	if err := svc.Notify(context.Background(), "e1", TypeDueReminder, "Reminder", "Due soon"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("mail sent despite email disabled")
	}
	if len(store.created) != 1 {
		t.Fatal("in-app notification not recorded")
	}
}

func TestNotifyMailFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"e1": "ana@example.com"}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := New(store, mailer, true, "hr@example.com")

	if err := svc.Notify(context.Background(), "e1", TypeDueReminder, "Reminder", "Due soon"); err != nil {
		t.Fatalf("notify should not surface mail errors, got %v", err)
	}
	if len(store.created) != 1 {
		t.Fatal("in-app notification not recorded")
	}
}

func TestNotifyUnknownRecipientStillRecords(t *testing.T) {
	store := &fakeStore{emails: map[string]string{}}
	svc := New(store, &fakeMailer{}, true, "hr@example.com")

	if err := svc.Notify(context.Background(), "ghost", TypeDueReminder, "Reminder", "Due soon"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatal("in-app notification not recorded")
	}
}
