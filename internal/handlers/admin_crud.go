// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"surafit/internal/crud"
	"surafit/internal/gateway"
	"surafit/internal/middleware"
	"surafit/internal/render"
	"surafit/internal/resources"
)

// The generic resource screens. Every route carries a {resource} segment
// that names a descriptor in package resources.

// List renders the resource list.
func (a *Admin) List(w http.ResponseWriter, r *http.Request) {
	res, ok := a.resource(w, r)
	if !ok {
		return
	}
	a.renderList(w, r, http.StatusOK, a.crud.Load(r.Context(), res), false)
}

// New opens the create form with the resource defaults.
func (a *Admin) New(w http.ResponseWriter, r *http.Request) {
	res, ok := a.writable(w, r)
	if !ok {
		return
	}
	a.renderForm(w, r, http.StatusOK, a.crud.BeginCreate(res))
}

// Edit opens the form with a stored row.
func (a *Admin) Edit(w http.ResponseWriter, r *http.Request) {
	res, ok := a.writable(w, r)
	if !ok {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	screen, err := a.crud.BeginEdit(r.Context(), res, id)
	if err != nil {
		a.rowFailure(w, r, res, err)
		return
	}
	a.renderForm(w, r, http.StatusOK, screen)
}

// Create inserts one row from the submitted form.
func (a *Admin) Create(w http.ResponseWriter, r *http.Request) {
	res, ok := a.writable(w, r)
	if !ok {
		return
	}
	a.submit(w, r, res, 0)
}

// Update replaces every field of one row. It answers PUT from HTMX and
// POST from the plain form fallback.
func (a *Admin) Update(w http.ResponseWriter, r *http.Request) {
	res, ok := a.writable(w, r)
	if !ok {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	a.submit(w, r, res, id)
}

func (a *Admin) submit(w http.ResponseWriter, r *http.Request, res *crud.Resource, id int64) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	screen := a.crud.Submit(r.Context(), res, id, crud.FormFromValues(res, r.PostForm))
	if screen.State == crud.StateEditing {
		a.renderForm(w, r, http.StatusUnprocessableEntity, screen)
		return
	}
	a.purge(r.Context())
	middleware.Redirect(w, r, listPath(res))
}

// DeletePrompt asks for confirmation before deleting a row.
func (a *Admin) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	res, ok := a.resource(w, r)
	if !ok {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	screen, err := a.crud.RequestDelete(r.Context(), res, id)
	if err != nil {
		a.rowFailure(w, r, res, err)
		return
	}
	a.renderer.Page(w, r, "crud_delete", &render.PageData{
		Title:   "Delete " + res.Singular,
		Section: res.Key,
		Data:    map[string]any{"Screen": screen},
	})
}

// Delete removes one row. A failure re-renders the list with the message
// and closes the prompt.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	res, ok := a.resource(w, r)
	if !ok {
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	screen := a.crud.ConfirmDelete(r.Context(), res, id)
	if screen.State == crud.StateList {
		retarget(w, r, "")
		a.renderList(w, r, http.StatusOK, screen, true)
		return
	}
	a.purge(r.Context())
	middleware.Redirect(w, r, listPath(res))
}

// Derive recomputes dependent inputs after one field changed and returns
// only the inputs whose value moved, as out-of-band swaps.
func (a *Admin) Derive(w http.ResponseWriter, r *http.Request) {
	res, ok := a.writable(w, r)
	if !ok {
		return
	}
	if res.Derive == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	before := crud.FormFromValues(res, r.PostForm)
	after := a.crud.Change(res, before, r.PostForm.Get("_changed"), 0)

	var changed []crud.Field
	for _, f := range res.Fields {
		if after[f.Name] != before[f.Name] {
			changed = append(changed, f)
		}
	}

	a.renderer.Fragment(w, r, http.StatusOK, "crud_form", "derive", &render.PageData{
		Data: map[string]any{
			"Screen":  &crud.Screen{Resource: res, State: crud.StateEditing, Form: after},
			"Changed": changed,
			"Uploads": a.uploads != nil,
		},
	})
}

// LeadStatus moves a lead to another pipeline stage and answers with the
// refreshed list, from which HTMX picks the changed row.
func (a *Admin) LeadStatus(w http.ResponseWriter, r *http.Request) {
	res, ok := a.resource(w, r)
	if !ok {
		return
	}
	if res != resources.Leads {
		http.NotFound(w, r)
		return
	}
	id, ok := rowID(w, r)
	if !ok {
		return
	}

	if err := a.leads.SetStatus(r.Context(), id, r.PostFormValue("status")); err != nil {
		slog.Error("lead status change failed", "id", id, "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		screen := a.crud.Load(r.Context(), res)
		screen.Error = "Failed to update lead: " + gateway.Message(err)
		retarget(w, r, "#crud-"+res.Key)
		a.renderList(w, r, http.StatusOK, screen, false)
		return
	}
	slog.Info("lead status changed", "id", id, "status", r.PostFormValue("status"))

	if !middleware.IsHTMX(r) {
		http.Redirect(w, r, listPath(res), http.StatusSeeOther)
		return
	}
	a.renderList(w, r, http.StatusOK, a.crud.Load(r.Context(), res), false)
}

// ExportLeads downloads every lead as CSV.
func (a *Admin) ExportLeads(w http.ResponseWriter, r *http.Request) {
	res, ok := a.resource(w, r)
	if !ok {
		return
	}
	if res != resources.Leads {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	n, err := a.leads.ExportCSV(r.Context(), &buf)
	if err != nil {
		slog.Error("lead export failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		http.Error(w, "Failed to export leads: "+gateway.Message(err), http.StatusInternalServerError)
		return
	}
	slog.Info("leads exported", "count", n)

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	buf.WriteTo(w)
}

func (a *Admin) renderList(w http.ResponseWriter, r *http.Request, status int, screen *crud.Screen, closeModal bool) {
	res := screen.Resource
	data := map[string]any{
		"Screen":     screen,
		"CloseModal": closeModal,
	}
	if res == resources.Leads {
		data["StatusOptions"] = resources.LeadStatusOptions
		data["Export"] = true
	}
	a.renderer.PageStatus(w, r, status, "crud_list", &render.PageData{
		Title:   res.Title,
		Section: res.Key,
		Data:    data,
	})
}

func (a *Admin) renderForm(w http.ResponseWriter, r *http.Request, status int, screen *crud.Screen) {
	a.renderer.PageStatus(w, r, status, "crud_form", &render.PageData{
		Title:   screen.FormTitle(),
		Section: screen.Resource.Key,
		Data: map[string]any{
			"Screen":  screen,
			"Uploads": a.uploads != nil,
		},
	})
}

// rowFailure answers a failed single-row read: 404 when the row is gone,
// otherwise the list with the backend message.
func (a *Admin) rowFailure(w http.ResponseWriter, r *http.Request, res *crud.Resource, err error) {
	if gateway.IsNoRows(err) {
		http.NotFound(w, r)
		return
	}
	slog.Error("crud row read failed", "resource", res.Key, "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
	screen := a.crud.Load(r.Context(), res)
	if screen.Error == "" {
		screen.Error = fmt.Sprintf("Failed to load %s: %s", res.Singular, gateway.Message(err))
	}
	retarget(w, r, "")
	a.renderList(w, r, http.StatusOK, screen, true)
}

// resource resolves the {resource} segment or answers 404.
func (a *Admin) resource(w http.ResponseWriter, r *http.Request) (*crud.Resource, bool) {
	res := resources.ByKey(chi.URLParam(r, "resource"))
	if res == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return res, true
}

// writable is resource for screens that open or submit a form.
func (a *Admin) writable(w http.ResponseWriter, r *http.Request) (*crud.Resource, bool) {
	res, ok := a.resource(w, r)
	if !ok {
		return nil, false
	}
	if res.ReadOnly {
		http.Error(w, fmt.Sprintf("%s are read-only", res.Plural), http.StatusMethodNotAllowed)
		return nil, false
	}
	return res, true
}

func rowID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func listPath(res *crud.Resource) string {
	return "/admin/" + res.Key
}

// retarget points an HTMX response at the main content area instead of
// the element that made the request. sel narrows the swapped markup.
func retarget(w http.ResponseWriter, r *http.Request, sel string) {
	if !middleware.IsHTMX(r) {
		return
	}
	h := w.Header()
	h.Set("HX-Retarget", "#main-content")
	h.Set("HX-Reswap", "innerHTML")
	if sel != "" {
		h.Set("HX-Reselect", sel)
	}
}
