package usecase

import (
	"context"
	"sync"

	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/utils"

	"go.uber.org/zap"
)

// Notification event kinds. Status events reuse the status name so the
// template lookup stays a pure function of the event.
const (
	EventNewReservation = "new-reservation"
	EventApproved       = "approved"
	EventRejected       = "rejected"
	EventFinished       = "finished"
	EventCancelled      = "cancelled"
	EventVerifyEmail    = "verify-email"
	EventPasswordReset  = "password-reset"
)

// Recipient is one notification target.
type Recipient struct {
	Name  string
	Email string
}

// DispatchResult reports per-recipient outcomes of a fan-out.
type DispatchResult struct {
	Sent   []string
	Failed []string
}

// Warnings converts failed sends into caller-facing warning strings.
// A partial failure never fails the request that triggered it.
func (r DispatchResult) Warnings() []string {
	if len(r.Failed) == 0 {
		return nil
	}
	warnings := make([]string, len(r.Failed))
	for i, email := range r.Failed {
		warnings[i] = "notification email to " + email + " failed"
	}
	return warnings
}

type NotifierService interface {
	// Dispatch renders the event's template once per recipient and
	// sends concurrently, waiting for every outcome (all-settled, not
	// fail-fast). An unknown event fails before anything is sent.
	Dispatch(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error)
}

type notifierService struct {
	sender mail.Sender
	config utils.EmailConfig
	log    *zap.Logger
}

func NewNotifierService(sender mail.Sender, config utils.EmailConfig, log *zap.Logger) NotifierService {
	return &notifierService{
		sender: sender,
		config: config,
		log:    log.With(zap.String("service", "notifier")),
	}
}

var eventSubjects = map[string]string{
	EventNewReservation: "New Reservation",
	EventApproved:       "Reservation Status Update: APPROVED",
	EventRejected:       "Reservation Status Update: REJECTED",
	EventFinished:       "Reservation Status Update: FINISHED",
	EventCancelled:      "Reservation Status Update: CANCELLED",
	EventVerifyEmail:    "Verification",
	EventPasswordReset:  "Password reset",
}

func (s *notifierService) Dispatch(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error) {
	subject, ok := eventSubjects[event]
	if !ok {
		return DispatchResult{}, apperr.InvalidArgument("unknown notification event: " + event)
	}
	subject = s.config.SubjectPrefix + subject

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result DispatchResult
	)

	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient Recipient) {
			defer wg.Done()

			perRecipient := data
			perRecipient.RecipientName = recipient.Name

			body, err := mail.Render(event, perRecipient)
			if err == nil {
				err = s.sender.Send(recipient.Email, subject, body)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Error("Failed to send notification email",
					zap.Error(err),
					zap.String("event", event),
					zap.String("to", recipient.Email),
				)
				result.Failed = append(result.Failed, recipient.Email)
				return
			}
			result.Sent = append(result.Sent, recipient.Email)
		}(recipient)
	}

	wg.Wait()

	s.log.Info("Notification dispatched",
		zap.String("event", event),
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}
