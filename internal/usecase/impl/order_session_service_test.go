package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"homecafe/config"
	"homecafe/internal/domain/entity"
	domainerrors "homecafe/internal/domain/errors"
	"homecafe/internal/domain/repository"
	"homecafe/internal/infra/persistence/memory"
	"homecafe/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfirmDelay = 30 * time.Millisecond

// orderProbe tracks the live order queue snapshot during a test.
type orderProbe struct {
	mu     sync.Mutex
	orders []entity.Order
}

func (p *orderProbe) handle(orders []entity.Order) {
	p.mu.Lock()
	p.orders = orders
	p.mu.Unlock()
}

func (p *orderProbe) snapshot() []entity.Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.orders
}

type sessionFixture struct {
	svc     usecase.OrderSessionUsecase
	catalog usecase.CatalogUsecase
	probe   *orderProbe
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	// Lifetimes far beyond the test horizon, so reaping only happens where a
	// test shortens them on purpose.
	return newSessionFixtureWith(t, config.SessionConfig{
		ConfirmedLinger: time.Minute,
		IdleTTL:         time.Minute,
		SweepInterval:   time.Minute,
	})
}

func newSessionFixtureWith(t *testing.T, session config.SessionConfig) *sessionFixture {
	t.Helper()

	logger := testLogger()
	catalogRepo := memory.NewCatalogRepository(logger)
	orderRepo := memory.NewOrderRepository(logger)

	catalog := NewCatalogService(CatalogServiceParams{
		CatalogRepo: catalogRepo,
		Logger:      logger,
	})
	require.NoError(t, catalog.Start(context.Background()))
	t.Cleanup(catalog.Stop)

	cfg := &config.Config{}
	cfg.Submission.ConfirmDelay = testConfirmDelay
	cfg.Session = session

	svc := NewOrderSessionService(OrderSessionServiceParams{
		Catalog:   catalog,
		OrderRepo: orderRepo,
		Config:    cfg,
		Logger:    logger,
	})
	t.Cleanup(svc.Close)

	probe := &orderProbe{}
	unsub, err := orderRepo.SubscribeOrders(context.Background(), probe.handle, func(error) {})
	require.NoError(t, err)
	t.Cleanup(unsub)

	return &sessionFixture{svc: svc, catalog: catalog, probe: probe}
}

func (f *sessionFixture) addItem(t *testing.T, input usecase.CreateMenuItemInput) {
	t.Helper()

	_, err := f.catalog.CreateItem(context.Background(), input)
	require.NoError(t, err)
}

func latteInput() usecase.CreateMenuItemInput {
	return usecase.CreateMenuItemInput{
		Title:          "Latte",
		Category:       entity.CategoryCoffee,
		Options:        []string{"Hot", "Iced"},
		IsActive:       true,
		AllowMilk:      true,
		AllowSweetener: true,
	}
}

// plainCocoaInput has nothing to configure: one temperature, no milk, no
// sweetener, not coffee.
func plainCocoaInput() usecase.CreateMenuItemInput {
	return usecase.CreateMenuItemInput{
		Title:    "Hot Chocolate",
		Category: entity.CategorySignature,
		Options:  []string{"Hot"},
		IsActive: true,
	}
}

func TestOrderSessionService_OpenDraft_Rejections(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenDraft(ctx, "Espresso Tonic")
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)

	f.addItem(t, usecase.CreateMenuItemInput{
		Title: "Secret Menu", Category: entity.CategoryCoffee, IsActive: false,
	})
	_, err = f.svc.OpenDraft(ctx, "Secret Menu")
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)

	f.addItem(t, usecase.CreateMenuItemInput{
		Title: "Affogato", Category: entity.CategorySignature, IsActive: true, ComingSoon: true,
	})
	_, err = f.svc.OpenDraft(ctx, "Affogato")
	assert.ErrorIs(t, err, domainerrors.ErrItemComingSoon)
}

func TestOrderSessionService_OpenDraft_PreselectsDefaults(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())

	view, err := f.svc.OpenDraft(context.Background(), "Latte")
	require.NoError(t, err)

	assert.Equal(t, entity.StepOptions, view.Draft.Step)
	assert.Equal(t, "Hot", view.Draft.Temperature) // first option pre-selected
	assert.Equal(t, entity.ShotsDouble, view.Draft.Shots)
	assert.Equal(t, entity.NoSelection, view.Draft.Milk)
	assert.Equal(t, entity.NoSelection, view.Draft.Sweetener)

	assert.True(t, view.VisibleFields.Temperature)
	assert.True(t, view.VisibleFields.Shots)
	assert.True(t, view.VisibleFields.Milk)
	assert.True(t, view.VisibleFields.Sweetener)
}

func TestOrderSessionService_OpenDraft_SkipsOptionsWhenNothingToConfigure(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, plainCocoaInput())

	view, err := f.svc.OpenDraft(context.Background(), "Hot Chocolate")
	require.NoError(t, err)

	assert.Equal(t, entity.StepName, view.Draft.Step)
	assert.Equal(t, "Hot", view.Draft.Temperature) // single option pre-selected
	assert.False(t, view.VisibleFields.Any())

	// There is no options step to return to: Back dismisses the draft
	back, err := f.svc.Back(view.SessionID)
	require.NoError(t, err)
	assert.Nil(t, back)

	_, err = f.svc.Draft(view.SessionID)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestOrderSessionService_SetField_Validation(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())

	milks := []string{"Oat", "Whole"}
	require.NoError(t, f.catalog.SaveConfig(context.Background(), repository.MenuConfigPatch{Milks: &milks}))

	view, err := f.svc.OpenDraft(context.Background(), "Latte")
	require.NoError(t, err)
	id := view.SessionID

	// Name belongs to the name step
	_, err = f.svc.SetField(id, usecase.FieldName, "Maria")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStep)

	_, err = f.svc.SetField(id, usecase.FieldTemperature, "Lukewarm")
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TEMPERATURE", appErr.ErrorCode())

	_, err = f.svc.SetField(id, usecase.FieldShots, "3 shots")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = f.svc.SetField(id, usecase.FieldMilk, "Soy")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = f.svc.SetField(id, "foam", "extra")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNKNOWN_FIELD", appErr.ErrorCode())

	got, err := f.svc.SetField(id, usecase.FieldTemperature, "Iced")
	require.NoError(t, err)
	assert.Equal(t, "Iced", got.Draft.Temperature)

	got, err = f.svc.SetField(id, usecase.FieldMilk, "Oat")
	require.NoError(t, err)
	assert.Equal(t, "Oat", got.Draft.Milk)
}

func TestOrderSessionService_SetField_HiddenSelectorRejected(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, usecase.CreateMenuItemInput{
		Title:    "Americano",
		Category: entity.CategoryCoffee,
		Options:  []string{"Hot", "Iced"},
		IsActive: true,
		// milk and sweetener selectors disabled
	})

	view, err := f.svc.OpenDraft(context.Background(), "Americano")
	require.NoError(t, err)

	_, err = f.svc.SetField(view.SessionID, usecase.FieldMilk, "Oat")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStep)
}

func TestOrderSessionService_Advance_RequiresName(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Latte")
	require.NoError(t, err)
	id := view.SessionID

	view, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StepName, view.Draft.Step)

	_, err = f.svc.Advance(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrNameRequired)

	_, err = f.svc.SetField(id, usecase.FieldName, "   ")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrNameRequired)
}

func TestOrderSessionService_SubmitFlow(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())
	ctx := context.Background()

	milks := []string{"Oat"}
	require.NoError(t, f.catalog.SaveConfig(ctx, repository.MenuConfigPatch{Milks: &milks}))

	view, err := f.svc.OpenDraft(ctx, "Latte")
	require.NoError(t, err)
	id := view.SessionID

	_, err = f.svc.SetField(id, usecase.FieldTemperature, "Iced")
	require.NoError(t, err)
	_, err = f.svc.SetField(id, usecase.FieldShots, entity.ShotsSingle)
	require.NoError(t, err)
	_, err = f.svc.SetField(id, usecase.FieldMilk, "Oat")
	require.NoError(t, err)

	_, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.SetField(id, usecase.FieldName, "Maria")
	require.NoError(t, err)

	view, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StepSubmitting, view.Draft.Step)

	// The write is detached from the dialog
	require.Eventually(t, func() bool {
		return len(f.probe.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	order := f.probe.snapshot()[0]
	assert.Equal(t, "Latte", order.Drink)
	assert.Equal(t, "Maria", order.Name)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, []string{"Latte • Iced • 1 shot", "Milk: Oat"}, order.SummaryLines)
	assert.False(t, order.CreatedAt.IsZero())

	// The pacing timer flips the dialog to confirmed on its own
	require.Eventually(t, func() bool {
		current, err := f.svc.Draft(id)

		return err == nil && current.Draft.Step == entity.StepConfirmed
	}, time.Second, 5*time.Millisecond)
}

func TestOrderSessionService_CancelDuringSubmitting(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, plainCocoaInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Hot Chocolate")
	require.NoError(t, err)
	id := view.SessionID

	_, err = f.svc.SetField(id, usecase.FieldName, "Luis")
	require.NoError(t, err)

	view, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entity.StepSubmitting, view.Draft.Step)

	// Dismissal stops the confirm timer but never recalls the write
	require.NoError(t, f.svc.Cancel(id))
	_, err = f.svc.Draft(id)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)

	require.Eventually(t, func() bool {
		return len(f.probe.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Hot Chocolate", f.probe.snapshot()[0].Drink)
}

func TestOrderSessionService_BackFromName_ReturnsToOptions(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Latte")
	require.NoError(t, err)
	id := view.SessionID

	_, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)

	back, err := f.svc.Back(id)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, entity.StepOptions, back.Draft.Step)

	// Back from options dismisses the draft
	back, err = f.svc.Back(id)
	require.NoError(t, err)
	assert.Nil(t, back)
}

func TestOrderSessionService_SummaryOmitsNeutralSelections(t *testing.T) {
	f := newSessionFixture(t)
	f.addItem(t, latteInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Latte")
	require.NoError(t, err)
	id := view.SessionID

	// Leave milk and sweetener at the neutral default
	_, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.SetField(id, usecase.FieldName, "Ana")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.probe.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	order := f.probe.snapshot()[0]
	assert.Equal(t, []string{"Latte • Hot • 2 shots"}, order.SummaryLines)
	assert.Empty(t, order.Milk)
	assert.Empty(t, order.Sweetener)
}

// sessionCount inspects the live session map without refreshing any
// draft's activity timestamp.
func sessionCount(svc usecase.OrderSessionUsecase) int {
	s := svc.(*orderSessionService)
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func TestOrderSessionService_ConfirmedSessionIsReaped(t *testing.T) {
	f := newSessionFixtureWith(t, config.SessionConfig{
		ConfirmedLinger: 40 * time.Millisecond,
		IdleTTL:         time.Minute,
		SweepInterval:   time.Minute,
	})
	f.addItem(t, plainCocoaInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Hot Chocolate")
	require.NoError(t, err)
	id := view.SessionID

	_, err = f.svc.SetField(id, usecase.FieldName, "Noor")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, id)
	require.NoError(t, err)

	// Confirmation ends the draft's lifecycle: after the linger the session
	// is gone without any explicit cancel.
	require.Eventually(t, func() bool {
		return sessionCount(f.svc) == 0
	}, time.Second, 5*time.Millisecond)

	_, err = f.svc.Draft(id)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)

	// The order itself outlives the session
	require.Eventually(t, func() bool {
		return len(f.probe.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestOrderSessionService_AbandonedDraftIsReaped(t *testing.T) {
	f := newSessionFixtureWith(t, config.SessionConfig{
		ConfirmedLinger: time.Minute,
		IdleTTL:         20 * time.Millisecond,
		SweepInterval:   10 * time.Millisecond,
	})
	f.addItem(t, latteInput())
	ctx := context.Background()

	view, err := f.svc.OpenDraft(ctx, "Latte")
	require.NoError(t, err)
	id := view.SessionID

	// Guest walks away mid-options; the sweep removes the draft once the
	// idle TTL elapses.
	require.Eventually(t, func() bool {
		return sessionCount(f.svc) == 0
	}, time.Second, 5*time.Millisecond)

	_, err = f.svc.Draft(id)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
	assert.Empty(t, f.probe.snapshot())
}
