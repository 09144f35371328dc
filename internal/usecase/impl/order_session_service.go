package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"homecafe/config"
	"homecafe/internal/domain/entity"
	domainerrors "homecafe/internal/domain/errors"
	"homecafe/internal/domain/repository"
	"homecafe/internal/domain/service"
	"homecafe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// orderSession is one guest's dialog state. The confirm timer is armed on
// entering the submitting step and must be stopped on every dismissal path;
// after confirmation it is rearmed as the linger timer that reaps the
// session.
type orderSession struct {
	draft        entity.OrderDraft
	confirmTimer *time.Timer
	touched      time.Time
}

type orderSessionService struct {
	catalog         usecase.CatalogUsecase
	orderRepo       repository.OrderRepository
	eventPublisher  service.EventPublisher
	notificationSvc service.NotificationService
	config          *config.Config
	logger          *slog.Logger

	mu       sync.Mutex
	sessions map[string]*orderSession

	closeOnce sync.Once
	done      chan struct{}
}

// OrderSessionServiceParams holds dependencies for OrderSessionService,
// injected by Fx.
type OrderSessionServiceParams struct {
	fx.In

	Catalog         usecase.CatalogUsecase
	OrderRepo       repository.OrderRepository
	EventPublisher  service.EventPublisher      `optional:"true"`
	NotificationSvc service.NotificationService `optional:"true"`
	Config          *config.Config
	Logger          *slog.Logger
}

// NewOrderSessionService creates a new order session service instance
func NewOrderSessionService(params OrderSessionServiceParams) usecase.OrderSessionUsecase {
	s := &orderSessionService{
		catalog:         params.Catalog,
		orderRepo:       params.OrderRepo,
		eventPublisher:  params.EventPublisher,
		notificationSvc: params.NotificationSvc,
		config:          params.Config,
		logger:          params.Logger,
		sessions:        make(map[string]*orderSession),
		done:            make(chan struct{}),
	}

	go s.sweepAbandoned()

	return s
}

// OpenDraft starts a new draft for the named menu item.
func (s *orderSessionService) OpenDraft(ctx context.Context, itemTitle string) (usecase.DraftView, error) {
	item, ok := entity.FindItemByTitle(s.catalog.Items(), itemTitle)
	if !ok || !item.IsActive {
		return usecase.DraftView{}, domainerrors.ErrItemNotFound
	}
	if item.ComingSoon {
		return usecase.DraftView{}, domainerrors.ErrItemComingSoon
	}

	sessionID := uuid.NewString()
	draft := entity.NewOrderDraft(item)

	s.mu.Lock()
	s.sessions[sessionID] = &orderSession{draft: draft, touched: time.Now()}
	s.mu.Unlock()

	s.logger.Info("order draft opened",
		slog.String("session_id", sessionID),
		slog.String("item", item.Title),
		slog.String("step", string(draft.Step)),
	)

	return s.view(sessionID, draft), nil
}

// Draft returns the current view of an open draft.
func (s *orderSessionService) Draft(sessionID string) (usecase.DraftView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()

		return usecase.DraftView{}, domainerrors.ErrSessionNotFound
	}
	sess.touched = time.Now()
	draft := sess.draft
	s.mu.Unlock()

	return s.view(sessionID, draft), nil
}

// SetField records a customization choice. Visibility is re-derived from the
// live catalog on every call, so a selector the operator just removed rejects
// writes immediately.
func (s *orderSessionService) SetField(sessionID, field, value string) (usecase.DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return usecase.DraftView{}, domainerrors.ErrSessionNotFound
	}
	sess.touched = time.Now()

	item, _ := entity.FindItemByTitle(s.catalog.Items(), sess.draft.ItemTitle)
	fields := entity.DeriveVisibleFields(item)

	switch field {
	case usecase.FieldName:
		if sess.draft.Step != entity.StepName {
			return usecase.DraftView{}, domainerrors.ErrInvalidStep
		}
		sess.draft.CustomerName = value

	case usecase.FieldTemperature:
		if sess.draft.Step != entity.StepOptions || !fields.Temperature {
			return usecase.DraftView{}, domainerrors.ErrInvalidStep
		}
		if !item.HasTemperature(value) {
			return usecase.DraftView{}, domainerrors.ErrInvalidTemperature.WithDetails(value)
		}
		sess.draft.Temperature = value

	case usecase.FieldShots:
		if sess.draft.Step != entity.StepOptions || !fields.Shots {
			return usecase.DraftView{}, domainerrors.ErrInvalidStep
		}
		if value != entity.ShotsSingle && value != entity.ShotsDouble {
			return usecase.DraftView{}, domainerrors.ErrValidationFailed.WithDetails("unknown shot selection: " + value)
		}
		sess.draft.Shots = value

	case usecase.FieldMilk:
		if sess.draft.Step != entity.StepOptions || !fields.Milk {
			return usecase.DraftView{}, domainerrors.ErrInvalidStep
		}
		if !s.validChoice(s.catalog.Config().Milks, value) {
			return usecase.DraftView{}, domainerrors.ErrValidationFailed.WithDetails("unknown milk selection: " + value)
		}
		sess.draft.Milk = value

	case usecase.FieldSweetener:
		if sess.draft.Step != entity.StepOptions || !fields.Sweetener {
			return usecase.DraftView{}, domainerrors.ErrInvalidStep
		}
		if !s.validChoice(s.catalog.Config().Sweeteners, value) {
			return usecase.DraftView{}, domainerrors.ErrValidationFailed.WithDetails("unknown sweetener selection: " + value)
		}
		sess.draft.Sweetener = value

	default:
		return usecase.DraftView{}, domainerrors.ErrUnknownField.WithDetails(field)
	}

	return s.view(sessionID, sess.draft), nil
}

// Advance moves the dialog forward one step. Entering submitting kicks off
// the submission pipeline.
func (s *orderSessionService) Advance(ctx context.Context, sessionID string) (usecase.DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return usecase.DraftView{}, domainerrors.ErrSessionNotFound
	}
	sess.touched = time.Now()

	switch sess.draft.Step {
	case entity.StepOptions:
		sess.draft.Step = entity.StepName

	case entity.StepName:
		if !sess.draft.HasName() {
			return usecase.DraftView{}, domainerrors.ErrNameRequired
		}
		item, found := entity.FindItemByTitle(s.catalog.Items(), sess.draft.ItemTitle)
		if !found {
			return usecase.DraftView{}, domainerrors.ErrItemNotFound
		}
		sess.draft.Step = entity.StepSubmitting
		s.submitLocked(sessionID, sess, item)

	default:
		return usecase.DraftView{}, domainerrors.ErrInvalidStep
	}

	return s.view(sessionID, sess.draft), nil
}

// Back moves the dialog one step back. A nil view means the draft was
// dismissed because there is no earlier step to return to.
func (s *orderSessionService) Back(sessionID string) (*usecase.DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrSessionNotFound
	}
	sess.touched = time.Now()

	switch sess.draft.Step {
	case entity.StepName:
		item, _ := entity.FindItemByTitle(s.catalog.Items(), sess.draft.ItemTitle)
		if !entity.DeriveVisibleFields(item).Any() {
			// Nothing to configure: there is no options step to return to
			s.dismissLocked(sessionID, sess)

			return nil, nil
		}
		sess.draft.Step = entity.StepOptions

	case entity.StepOptions:
		s.dismissLocked(sessionID, sess)

		return nil, nil

	default:
		return nil, domainerrors.ErrInvalidStep
	}

	view := s.view(sessionID, sess.draft)

	return &view, nil
}

// Cancel dismisses the draft from any step. A write already issued by the
// submission pipeline is not recalled; only the confirm timer is stopped.
func (s *orderSessionService) Cancel(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domainerrors.ErrSessionNotFound
	}
	s.dismissLocked(sessionID, sess)

	return nil
}

// Close stops the sweeper and every pending timer, and drops all sessions.
func (s *orderSessionService) Close() {
	s.closeOnce.Do(func() { close(s.done) })

	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, sess := range s.sessions {
		s.dismissLocked(sessionID, sess)
	}
}

// submitLocked runs the submission pipeline for a draft that just entered
// the submitting step. The caller holds s.mu.
//
// The persistence write is best-effort and detached from the dialog: the
// guest's confirmation is paced by a fixed timer, not by the write, and a
// failed write only leaves a log line behind.
func (s *orderSessionService) submitLocked(sessionID string, sess *orderSession, item entity.MenuItem) {
	order := sess.draft.ToOrder(item)

	go s.persistOrder(sessionID, order)

	sess.confirmTimer = time.AfterFunc(s.config.Submission.ConfirmDelay, func() {
		s.confirm(sessionID)
	})
}

// confirm flips a still-submitting draft to confirmed once the pacing timer
// elapses, regardless of the write outcome. The confirmation is the end of
// the draft's lifecycle: the session lingers just long enough for the guest
// to read the confirmed step, then is reaped.
func (s *orderSessionService) confirm(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.draft.Step != entity.StepSubmitting {
		return
	}
	sess.draft.Step = entity.StepConfirmed
	sess.confirmTimer = time.AfterFunc(s.config.Session.ConfirmedLinger, func() {
		s.reapConfirmed(sessionID)
	})

	s.logger.Info("order confirmed",
		slog.String("session_id", sessionID),
		slog.String("item", sess.draft.ItemTitle),
	)
}

// reapConfirmed drops a confirmed session once its linger elapses.
func (s *orderSessionService) reapConfirmed(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.draft.Step != entity.StepConfirmed {
		return
	}
	delete(s.sessions, sessionID)
}

// sweepAbandoned periodically reaps drafts that were opened and then never
// touched again, so walked-away dialogs do not pile up across a day.
func (s *orderSessionService) sweepAbandoned() {
	ticker := time.NewTicker(s.config.Session.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for sessionID, sess := range s.sessions {
				// Submitting drafts are owned by the confirm timer,
				// confirmed ones by the linger timer.
				if sess.draft.Step == entity.StepSubmitting || sess.draft.Step == entity.StepConfirmed {
					continue
				}
				if now.Sub(sess.touched) >= s.config.Session.IdleTTL {
					s.dismissLocked(sessionID, sess)
					s.logger.Info("idle draft reaped",
						slog.String("session_id", sessionID),
						slog.String("item", sess.draft.ItemTitle),
					)
				}
			}
			s.mu.Unlock()
		}
	}
}

// persistOrder writes the order and fans out the downstream side effects.
// It runs detached from the request so a slow store never holds the dialog.
func (s *orderSessionService) persistOrder(sessionID string, order entity.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orderID, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("order write failed, confirmation proceeds anyway",
			slog.String("session_id", sessionID),
			slog.String("drink", order.Drink),
			slog.Any("error", err),
		)

		return
	}

	s.logger.Info("order submitted",
		slog.String("session_id", sessionID),
		slog.String("order_id", orderID),
		slog.String("drink", order.Drink),
	)

	s.publishOrderEvent(ctx, orderID, order)
	s.notifyStaff(ctx, order)
}

// publishOrderEvent emits the order to downstream consumers, best-effort.
func (s *orderSessionService) publishOrderEvent(ctx context.Context, orderID string, order entity.Order) {
	if s.eventPublisher == nil {
		return
	}

	event := &service.OrderEvent{
		OrderID:      orderID,
		Drink:        order.Drink,
		Name:         order.Name,
		Status:       string(order.Status),
		SummaryLines: order.SummaryLines,
	}
	if err := s.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}
}

// notifyStaff nudges configured staff devices about the new order,
// best-effort.
func (s *orderSessionService) notifyStaff(ctx context.Context, order entity.Order) {
	if s.notificationSvc == nil || s.config.Notifications == nil {
		return
	}
	tokens := s.config.Notifications.StaffTokens
	if len(tokens) == 0 {
		return
	}

	title := "New order: " + order.Drink
	body := order.Name
	if body == "" {
		body = "A new order just came in"
	}

	successCount, failureCount, invalidTokens, err := s.notificationSvc.SendBatchNotification(ctx, tokens, title, body, map[string]string{
		"drink": order.Drink,
	})
	if err != nil {
		s.logger.Warn("failed to notify staff", slog.Any("error", err))

		return
	}
	if failureCount > 0 {
		s.logger.Warn("some staff notifications failed",
			slog.Int("success", successCount),
			slog.Int("failure", failureCount),
			slog.Int("invalid_tokens", len(invalidTokens)),
		)
	}
}

// dismissLocked removes a session and stops its confirm timer. The caller
// holds s.mu.
func (s *orderSessionService) dismissLocked(sessionID string, sess *orderSession) {
	if sess.confirmTimer != nil {
		sess.confirmTimer.Stop()
	}
	delete(s.sessions, sessionID)
}

// view assembles the delivery-facing state for a draft, re-deriving every
// catalog-dependent piece from the live snapshots.
func (s *orderSessionService) view(sessionID string, draft entity.OrderDraft) usecase.DraftView {
	item, _ := entity.FindItemByTitle(s.catalog.Items(), draft.ItemTitle)
	config := s.catalog.Config()

	return usecase.DraftView{
		SessionID:     sessionID,
		Draft:         draft,
		Item:          item,
		VisibleFields: entity.DeriveVisibleFields(item),
		Milks:         config.Milks,
		Sweeteners:    config.Sweeteners,
	}
}

func (s *orderSessionService) validChoice(choices []string, value string) bool {
	if value == entity.NoSelection {
		return true
	}
	for _, choice := range choices {
		if choice == value {
			return true
		}
	}

	return false
}
