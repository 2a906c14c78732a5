// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package crud

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"surafit/internal/gateway"
	"surafit/internal/validation"
)

// State is the lifecycle position of a resource screen.
type State int

const (
	StateList State = iota
	StateLoading
	StateEditing
	StateSaving
	StateDeleting
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateDeleting:
		return "deleting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Screen is everything a renderer needs to draw one resource screen.
type Screen struct {
	Resource *Resource
	State    State
	Rows     []gateway.Row

	// Form and EditingID describe the open form. EditingID is 0 while creating.
	Form      Form
	EditingID int64

	// Target is the row named in the delete confirmation.
	Target gateway.Row

	// Error is the blocking message shown in the form or above the list.
	Error string
}

// Creating reports whether the open form creates a new row.
func (s *Screen) Creating() bool { return s.EditingID == 0 }

// FormTitle is the heading for the open form.
func (s *Screen) FormTitle() string {
	if s.Creating() {
		return s.Resource.CreateTitle()
	}
	return s.Resource.EditTitle()
}

// Controller drives resource screens against a gateway.
type Controller struct {
	gw        gateway.Gateway
	validator *validation.Validator
	now       func() time.Time
}

// NewController creates a controller backed by gw.
func NewController(gw gateway.Gateway, v *validation.Validator) *Controller {
	return &Controller{gw: gw, validator: v, now: time.Now}
}

// SetClock replaces the time source used for create timestamps.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// Load fetches every row of the resource and returns the List state. A
// failed fetch yields an empty list with the error surfaced.
func (c *Controller) Load(ctx context.Context, res *Resource) *Screen {
	rows, err := c.gw.Select(ctx, res.Table, gateway.Query{Order: res.Order})
	if err != nil {
		slog.Error("crud load failed", "resource", res.Key, "error", err)
		return &Screen{
			Resource: res,
			State:    StateList,
			Error:    fmt.Sprintf("Failed to load %s: %s", res.Plural, gateway.Message(err)),
		}
	}
	return &Screen{Resource: res, State: StateList, Rows: rows}
}

// BeginCreate opens an empty form pre-filled with defaults.
func (c *Controller) BeginCreate(res *Resource) *Screen {
	return &Screen{Resource: res, State: StateEditing, Form: DefaultForm(res)}
}

// BeginEdit opens the form with the stored values of row id.
func (c *Controller) BeginEdit(ctx context.Context, res *Resource, id int64) (*Screen, error) {
	row, err := c.fetch(ctx, res, id)
	if err != nil {
		return nil, err
	}
	return &Screen{Resource: res, State: StateEditing, Form: FormFromRow(res, row), EditingID: id}, nil
}

// Change applies a single field edit to an open form and runs the
// resource's derivation hook.
func (c *Controller) Change(res *Resource, form Form, field string, editingID int64) Form {
	if res.Derive == nil {
		return form
	}
	return res.Derive(form.Clone(), field, editingID == 0)
}

// Validate checks required fields, then per-field rules. It returns the
// blocking message or "" when the form is acceptable.
func (c *Controller) Validate(res *Resource, form Form) string {
	for _, f := range res.Fields {
		if f.Required && strings.TrimSpace(form[f.Name]) == "" {
			return res.requiredMessage()
		}
	}
	for _, f := range res.Fields {
		value := strings.TrimSpace(form[f.Name])
		if f.Rule == "" || value == "" {
			continue
		}
		if err := c.validator.Var(value, f.Rule); err != nil {
			if f.RuleMessage != "" {
				return f.RuleMessage
			}
			return fmt.Sprintf("%s is invalid.", f.Label)
		}
	}
	for _, f := range res.Fields {
		if f.Kind != KindSelect || len(f.Options) == 0 {
			continue
		}
		value := strings.TrimSpace(form[f.Name])
		if value == "" {
			continue
		}
		if !hasOption(f.Options, value) {
			return fmt.Sprintf("%s must be one of the listed options.", f.Label)
		}
	}
	return ""
}

// Submit saves the form. Validation failures return to Editing without
// touching the backend. Otherwise exactly one insert (editingID == 0) or
// one update by identity is issued. Success returns the Loading state,
// meaning the caller must refetch the list; backend failures return to
// Editing with the message.
func (c *Controller) Submit(ctx context.Context, res *Resource, editingID int64, form Form) *Screen {
	screen := &Screen{Resource: res, State: StateSaving, Form: form, EditingID: editingID}
	if res.ReadOnly {
		screen.State = StateEditing
		screen.Error = fmt.Sprintf("%s cannot be edited here.", titleCase(res.Plural))
		return screen
	}

	if msg := c.Validate(res, form); msg != "" {
		screen.State = StateEditing
		screen.Error = msg
		return screen
	}

	values, msg := toValues(res, form)
	if msg != "" {
		screen.State = StateEditing
		screen.Error = msg
		return screen
	}
	creating := editingID == 0
	if res.Prepare != nil {
		res.Prepare(values, creating, c.now())
	}

	var err error
	if creating {
		_, err = c.gw.Insert(ctx, res.Table, values)
	} else {
		err = c.gw.Update(ctx, res.Table, values, gateway.Eq("id", editingID))
	}
	if err != nil {
		slog.Error("crud save failed", "resource", res.Key, "id", editingID, "error", err)
		screen.State = StateEditing
		screen.Error = c.saveMessage(res, err)
		return screen
	}

	slog.Info("crud saved", "resource", res.Key, "id", editingID, "created", creating)
	return &Screen{Resource: res, State: StateLoading}
}

// RequestDelete opens the confirmation prompt naming row id.
func (c *Controller) RequestDelete(ctx context.Context, res *Resource, id int64) (*Screen, error) {
	row, err := c.fetch(ctx, res, id)
	if err != nil {
		return nil, err
	}
	return &Screen{Resource: res, State: StateDeleting, Target: row}, nil
}

// Cancel discards any open form or prompt without a backend call.
func (c *Controller) Cancel(res *Resource) *Screen {
	return &Screen{Resource: res, State: StateLoading}
}

// ConfirmDelete issues one delete by identity. Success returns Loading;
// failure returns the reloaded list with the error and the prompt dismissed.
func (c *Controller) ConfirmDelete(ctx context.Context, res *Resource, id int64) *Screen {
	if err := c.gw.Delete(ctx, res.Table, gateway.Eq("id", id)); err != nil {
		slog.Error("crud delete failed", "resource", res.Key, "id", id, "error", err)
		screen := c.Load(ctx, res)
		screen.Error = fmt.Sprintf("Failed to delete %s: %s", res.Singular, gateway.Message(err))
		return screen
	}
	slog.Info("crud deleted", "resource", res.Key, "id", id)
	return &Screen{Resource: res, State: StateLoading}
}

// Label returns the human name of a row for prompts: the first of title,
// name or stat that is set, falling back to "#id".
func Label(row gateway.Row) string {
	for _, col := range []string{"title", "name", "label", "stat"} {
		if s := row.String(col); s != "" {
			return s
		}
	}
	return fmt.Sprintf("#%d", row.ID())
}

func (c *Controller) fetch(ctx context.Context, res *Resource, id int64) (gateway.Row, error) {
	row, err := c.gw.Single(ctx, res.Table, gateway.Query{Filters: []gateway.Filter{gateway.Eq("id", id)}})
	if err != nil {
		return nil, fmt.Errorf("fetch %s %d: %w", res.Singular, id, err)
	}
	return row, nil
}

func (c *Controller) saveMessage(res *Resource, err error) string {
	msg := gateway.Message(err)
	if gateway.IsUniqueViolation(err) && res.UniqueMessage != "" {
		msg = res.UniqueMessage
	}
	if msg == "" {
		msg = "Please try again."
	}
	return fmt.Sprintf("Failed to save %s: %s", res.Singular, msg)
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
