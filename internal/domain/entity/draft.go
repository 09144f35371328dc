package entity

import "strings"

// DraftStep is the dialog step of an in-progress order.
type DraftStep string

const (
	StepOptions    DraftStep = "options"
	StepName       DraftStep = "name"
	StepSubmitting DraftStep = "submitting"
	StepConfirmed  DraftStep = "confirmed"
)

// Shot selections for coffee drinks.
const (
	ShotsDouble = "2 shots"
	ShotsSingle = "1 shot"
)

// NoSelection is the neutral choice for milk and sweetener selectors. A
// selection equal to it is treated as "nothing picked" and omitted from the
// order summary.
const NoSelection = "None"

// OrderDraft holds one guest's in-progress customization. It is ephemeral
// and session-local; ItemTitle is a weak reference resolved against the live
// catalog on every use.
type OrderDraft struct {
	ItemTitle    string    `json:"itemTitle"`
	Step         DraftStep `json:"step"`
	Temperature  string    `json:"temperature,omitempty"`
	Shots        string    `json:"shots,omitempty"`
	Milk         string    `json:"milk,omitempty"`
	Sweetener    string    `json:"sweetener,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
}

// NewOrderDraft creates a draft for the given item with every field
// pre-selected to its default. The entry step is options unless the item has
// nothing to configure, in which case the dialog starts at the name step.
func NewOrderDraft(item MenuItem) OrderDraft {
	draft := OrderDraft{
		ItemTitle: item.Title,
		Step:      StepOptions,
	}

	if temp, ok := item.DefaultTemperature(); ok {
		draft.Temperature = temp
	} else if item.HasTemperatureChoice() {
		draft.Temperature = item.Options[0]
	}
	if item.IsCoffee() {
		draft.Shots = ShotsDouble
	}
	if item.AllowMilk {
		draft.Milk = NoSelection
	}
	if item.AllowSweetener {
		draft.Sweetener = NoSelection
	}

	if !DeriveVisibleFields(item).Any() {
		draft.Step = StepName
	}

	return draft
}

// HasName reports whether the trimmed customer name is non-empty, the
// precondition for advancing past the name step.
func (d OrderDraft) HasName() bool {
	return strings.TrimSpace(d.CustomerName) != ""
}

// SummaryLines renders the human-readable ticket summary for the draft.
// Computed once, at submission time; the result is stored on the order and
// never recomputed against a later catalog.
func (d OrderDraft) SummaryLines(item MenuItem) []string {
	fields := DeriveVisibleFields(item)

	head := item.Title
	if d.Temperature != "" {
		head += " • " + d.Temperature
	}
	if fields.Shots && d.Shots != "" {
		head += " • " + d.Shots
	}

	lines := []string{head}
	if fields.Milk && d.Milk != "" && d.Milk != NoSelection {
		lines = append(lines, "Milk: "+d.Milk)
	}
	if fields.Sweetener && d.Sweetener != "" && d.Sweetener != NoSelection {
		lines = append(lines, "Sweetener: "+d.Sweetener)
	}

	return lines
}

// ToOrder snapshots the draft into an immutable order record with status
// pending. CreatedAt is left zero for the store to assign server-side.
func (d OrderDraft) ToOrder(item MenuItem) Order {
	fields := DeriveVisibleFields(item)

	order := Order{
		Drink:        item.Title,
		Temperature:  d.Temperature,
		Name:         strings.TrimSpace(d.CustomerName),
		SummaryLines: d.SummaryLines(item),
		Status:       StatusPending,
	}
	if fields.Shots {
		order.Shots = d.Shots
	}
	if fields.Milk && d.Milk != NoSelection {
		order.Milk = d.Milk
	}
	if fields.Sweetener && d.Sweetener != NoSelection {
		order.Sweetener = d.Sweetener
	}

	return order
}
