package usecase

import (
	"context"

	"homecafe/internal/domain/entity"
)

// Customization field names accepted by SetField.
const (
	FieldTemperature = "temperature"
	FieldShots       = "shots"
	FieldMilk        = "milk"
	FieldSweetener   = "sweetener"
	FieldName        = "name"
)

// DraftView is the session state handed back to the delivery layer after
// every mutation: the draft itself plus everything derived from the live
// catalog at the moment of the call.
type DraftView struct {
	SessionID string            `json:"sessionId"`
	Draft     entity.OrderDraft `json:"draft"`

	// Item is the current catalog entry the draft points at. Visible fields
	// and choices are re-derived from it on every call, so mid-session
	// operator edits show up immediately.
	Item          entity.MenuItem      `json:"item"`
	VisibleFields entity.VisibleFields `json:"visibleFields"`

	// Choice lists for the milk and sweetener selectors, from the live
	// config. The neutral "None" entry is prepended by the presentation.
	Milks      []string `json:"milks"`
	Sweeteners []string `json:"sweeteners"`
}

// OrderSessionUsecase defines the interface for the guest ordering dialog.
// Each session holds at most one in-progress draft, keyed by an opaque
// session id minted at open time.
type OrderSessionUsecase interface {
	// OpenDraft starts a new draft for the named menu item and returns its
	// view. Items that are inactive or not on the menu are rejected, as are
	// coming-soon items.
	OpenDraft(ctx context.Context, itemTitle string) (DraftView, error)

	// Draft returns the current view of an open draft.
	Draft(sessionID string) (DraftView, error)

	// SetField records a customization choice. Temperature, shots, milk and
	// sweetener are settable on the options step; name on the name step.
	SetField(sessionID, field, value string) (DraftView, error)

	// Advance moves the dialog forward: options to name, or name to
	// submitting when a non-empty customer name is present. Entering
	// submitting kicks off the submission pipeline.
	Advance(ctx context.Context, sessionID string) (DraftView, error)

	// Back moves the dialog one step back. From the name step it returns to
	// options, or dismisses the draft entirely when the item has nothing to
	// configure. The returned view is nil when the draft was dismissed.
	Back(sessionID string) (*DraftView, error)

	// Cancel dismisses the draft from any step, stopping any pending confirm
	// timer. The submission write, once issued, is not recalled.
	Cancel(sessionID string) error

	// Close releases the session service's catalog resources and stops all
	// pending confirm timers.
	Close()
}
