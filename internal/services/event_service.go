package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

// ImageStore is where event images land before the event row is written.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// ImageUpload is one file received from the API layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Type        models.EventImageType
	Body        io.Reader
}

type EventService struct {
	r      repo.Events
	images ImageStore
	log    *slog.Logger
}

// NewEventService accepts a nil image store; uploads are then skipped and
// only image URLs already present on the payload are persisted.
func NewEventService(r repo.Events, images ImageStore, log *slog.Logger) *EventService {
	return &EventService{r: r, images: images, log: log}
}

func (s *EventService) Create(ctx context.Context, e models.Event, uploads []ImageUpload) (models.Event, error) {
	if err := e.Validate(); err != nil {
		return models.Event{}, err
	}
	imgs, err := s.uploadAll(ctx, e.Name, uploads)
	if err != nil {
		// Upload failure loses nothing durable; the event is not created.
		return models.Event{}, err
	}
	e.Images = append(e.Images, imgs...)
	return s.r.Create(ctx, e)
}

func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	return s.r.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.r.List(ctx)
}

func (s *EventService) Update(ctx context.Context, e models.Event, uploads []ImageUpload) (models.Event, error) {
	if err := e.Validate(); err != nil {
		return models.Event{}, err
	}
	imgs, err := s.uploadAll(ctx, e.Name, uploads)
	if err != nil {
		return models.Event{}, err
	}
	e.Images = append(e.Images, imgs...)
	return s.r.Update(ctx, e)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, id)
}

func (s *EventService) uploadAll(ctx context.Context, eventName string, uploads []ImageUpload) ([]models.EventImage, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if s.images == nil {
		s.log.Warn("event images submitted but no image store configured", "event", eventName)
		return nil, nil
	}
	out := make([]models.EventImage, 0, len(uploads))
	for i, up := range uploads {
		key := fmt.Sprintf("events/%s/%d-%s", slugify(eventName), i, up.Filename)
		url, err := s.images.Upload(ctx, key, up.ContentType, up.Body)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", up.Filename, err)
		}
		out = append(out, models.EventImage{ImageURL: url, ImageType: up.Type})
	}
	return out, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
