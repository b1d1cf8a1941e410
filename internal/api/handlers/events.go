package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

const maxUploadBytes = 32 << 20

type EventHandler struct {
	svc *services.EventService
}

func NewEventHandler(svc *services.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Create accepts either a plain JSON event or multipart/form-data with an
// "event" JSON field plus "images" file parts. Image types ride along in the
// "image_types" field, comma separated, aligned with the file order.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	event, uploads, err := decodeEvent(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	created, err := h.svc.Create(r.Context(), event, uploads)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "event created", created)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "event fetched", e)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "events fetched", events)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	event, uploads, err := decodeEvent(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	event.ID = chi.URLParam(r, "id")
	updated, err := h.svc.Update(r.Context(), event, uploads)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "event updated", updated)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "event deleted", nil)
}

func decodeEvent(r *http.Request) (models.Event, []services.ImageUpload, error) {
	var event models.Event

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			return models.Event{}, nil, err
		}
		return event, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return models.Event{}, nil, err
	}
	if raw := r.FormValue("event"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return models.Event{}, nil, err
		}
	}

	files := r.MultipartForm.File["images"]
	types := strings.Split(r.FormValue("image_types"), ",")
	uploads := make([]services.ImageUpload, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return models.Event{}, nil, err
		}
		imgType := models.ImageGallery
		if i < len(types) {
			switch models.EventImageType(strings.ToUpper(strings.TrimSpace(types[i]))) {
			case models.ImageBanner:
				imgType = models.ImageBanner
			case models.ImageThumbnail:
				imgType = models.ImageThumbnail
			}
		}
		uploads = append(uploads, services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Type:        imgType,
			Body:        f,
		})
	}
	return event, uploads, nil
}
