// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 22, G: 163, B: 74, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// uploadRequest builds a multipart upload. A nil file omits the file part.
func uploadRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", "photo.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write(file)
	}
	mw.Close()

	r := adminRequest(http.MethodPost, "/admin/uploads", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return htmx(r)
}

func TestUploadStoresImage(t *testing.T) {
	env := newTestEnv(t)

	r := uploadRequest(t, map[string]string{"resource": "blogs", "field": "image", "image": ""}, testPNG(t, 40, 20))
	rec := httptest.NewRecorder()
	env.Admin.Upload(rec, r)

	assertStatus(t, rec, http.StatusOK)
	if len(env.Uploads.keys) != 1 {
		t.Fatalf("uploads: got %d", len(env.Uploads.keys))
	}
	key := env.Uploads.keys[0]
	if !strings.HasPrefix(key, "blogs/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("object key: %q", key)
	}
	if env.Uploads.types[0] != "image/png" {
		t.Errorf("content type: %q", env.Uploads.types[0])
	}
	body := rec.Body.String()
	assertContains(t, body, `id="field-image"`)
	assertContains(t, body, `value="https://cdn.test/`+key+`"`)
	assertContains(t, body, `<img src="https://cdn.test/`+key+`"`)
}

func TestUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)

	r := uploadRequest(t, map[string]string{"resource": "blogs", "field": "image", "image": "/img/old.jpg"}, []byte("not an image"))
	rec := httptest.NewRecorder()
	env.Admin.Upload(rec, r)

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	body := rec.Body.String()
	assertContains(t, body, "Only JPEG, PNG, GIF or WebP images are supported.")
	assertContains(t, body, `value="/img/old.jpg"`)
	if len(env.Uploads.keys) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestUploadMissingFile(t *testing.T) {
	env := newTestEnv(t)

	r := uploadRequest(t, map[string]string{"resource": "testimonials", "field": "avatar"}, nil)
	rec := httptest.NewRecorder()
	env.Admin.Upload(rec, r)

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "Choose an image to upload.")
}

func TestUploadStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.Uploads.err = errors.New("bucket unreachable")

	r := uploadRequest(t, map[string]string{"resource": "blogs", "field": "image"}, testPNG(t, 4, 4))
	rec := httptest.NewRecorder()
	env.Admin.Upload(rec, r)

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "Upload failed. Please try again.")
}

func TestUploadRejectsFieldsWithoutUpload(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   int
	}{
		{"plain text field", map[string]string{"resource": "blogs", "field": "title"}, http.StatusBadRequest},
		{"unknown field", map[string]string{"resource": "blogs", "field": "nope"}, http.StatusBadRequest},
		{"unknown resource", map[string]string{"resource": "widgets", "field": "image"}, http.StatusNotFound},
		{"read-only resource", map[string]string{"resource": "leads", "field": "name"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := httptest.NewRecorder()
			env.Admin.Upload(rec, uploadRequest(t, tt.fields, testPNG(t, 2, 2)))
			assertStatus(t, rec, tt.want)
		})
	}
}

func TestUploadDisabledWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	env.Admin.uploads = nil

	rec := httptest.NewRecorder()
	env.Admin.Upload(rec, uploadRequest(t, map[string]string{"resource": "blogs", "field": "image"}, testPNG(t, 2, 2)))

	assertStatus(t, rec, http.StatusNotFound)
}
