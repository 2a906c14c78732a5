// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"surafit/internal/crud"
	"surafit/internal/imaging"
	"surafit/internal/middleware"
	"surafit/internal/render"
	"surafit/internal/resources"
	"surafit/internal/storage"
)

// maxUploadSize is the largest accepted image upload (10 MB).
const maxUploadSize = 10 << 20

// Upload stores an image for an upload-enabled field and answers with the
// field re-rendered around the new public URL.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if a.uploads == nil {
		http.Error(w, "Image uploads are not configured", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Upload too large (max 10 MB)", http.StatusRequestEntityTooLarge)
		return
	}

	res := resources.ByKey(r.FormValue("resource"))
	if res == nil || res.ReadOnly {
		http.NotFound(w, r)
		return
	}
	field := res.Field(r.FormValue("field"))
	if field == nil || !field.Upload {
		http.Error(w, "Field does not accept uploads", http.StatusBadRequest)
		return
	}

	view := render.FieldView{
		Field:       *field,
		Value:       r.FormValue(field.Name),
		ResourceKey: res.Key,
		Uploads:     true,
	}

	url, err := a.storeImage(r, res)
	if err != nil {
		slog.Error("image upload failed", "resource", res.Key, "field", field.Name, "error", err,
			"request_id", middleware.RequestIDFromCtx(r.Context()))
		view.Error = uploadMessage(err)
		a.renderUploadField(w, r, http.StatusUnprocessableEntity, view)
		return
	}

	slog.Info("image uploaded", "resource", res.Key, "field", field.Name, "url", url)
	view.Value = url
	a.renderUploadField(w, r, http.StatusOK, view)
}

var errNoFile = errors.New("no file in upload")

func (a *Admin) storeImage(r *http.Request, res *crud.Resource) (string, error) {
	file, _, err := r.FormFile("file")
	if err != nil {
		return "", errNoFile
	}
	defer file.Close()

	src, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	img, err := imaging.Fit(src, imaging.MaxWidth)
	if err != nil {
		return "", err
	}

	key := storage.ObjectKey(res.Key, img.Ext, time.Now())
	return a.uploads.Upload(r.Context(), key, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data)))
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errNoFile):
		return "Choose an image to upload."
	case errors.Is(err, imaging.ErrUnsupported):
		return "Only JPEG, PNG, GIF or WebP images are supported."
	case errors.Is(err, imaging.ErrTooLarge):
		return "Image dimensions are too large."
	}
	return "Upload failed. Please try again."
}

func (a *Admin) renderUploadField(w http.ResponseWriter, r *http.Request, status int, view render.FieldView) {
	a.renderer.Fragment(w, r, status, "crud_form", "upload_field", &render.PageData{
		Data: map[string]any{"Field": view},
	})
}
