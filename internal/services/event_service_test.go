package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	repo "github.com/bic-devsphere/devsphere-backend/internal/repository"
)

type fakeEvents struct {
	byID map[string]models.Event
}

func (f *fakeEvents) Create(_ context.Context, e models.Event) (models.Event, error) {
	if f.byID == nil {
		f.byID = map[string]models.Event{}
	}
	e.ID = "e" + strconv.Itoa(len(f.byID)+1)
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id string) (models.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return models.Event{}, repo.ErrNotFound
	}
	return e, nil
}

func (f *fakeEvents) List(_ context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEvents) Update(_ context.Context, e models.Event) (models.Event, error) {
	if _, ok := f.byID[e.ID]; !ok {
		return models.Event{}, repo.ErrNotFound
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeImageStore struct {
	keys []string
	err  error
}

func (f *fakeImageStore) Upload(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, r)
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestEventCreateUploadsImages(t *testing.T) {
	store := &fakeImageStore{}
	svc := NewEventService(&fakeEvents{}, store, discard())

	e, err := svc.Create(context.Background(), models.Event{Name: "Go Meetup 2026"}, []ImageUpload{
		{Filename: "banner.png", ContentType: "image/png", Type: models.ImageBanner, Body: strings.NewReader("png")},
		{Filename: "pic.jpg", ContentType: "image/jpeg", Type: models.ImageGallery, Body: strings.NewReader("jpg")},
	})
	require.NoError(t, err)
	require.Len(t, e.Images, 2)
	assert.Equal(t, models.ImageBanner, e.Images[0].ImageType)
	assert.Contains(t, e.Images[0].ImageURL, "events/go-meetup-2026/")
	require.Len(t, store.keys, 2)
}

func TestEventCreateFailsWhenUploadFails(t *testing.T) {
	events := &fakeEvents{}
	svc := NewEventService(events, &fakeImageStore{err: errors.New("s3 down")}, discard())

	_, err := svc.Create(context.Background(), models.Event{Name: "Meetup"}, []ImageUpload{
		{Filename: "a.png", Body: strings.NewReader("x")},
	})
	require.Error(t, err)
	assert.Empty(t, events.byID)
}

func TestEventCreateWithoutImageStore(t *testing.T) {
	svc := NewEventService(&fakeEvents{}, nil, discard())

	e, err := svc.Create(context.Background(), models.Event{Name: "Meetup"}, []ImageUpload{
		{Filename: "a.png", Body: strings.NewReader("x")},
	})
	require.NoError(t, err)
	assert.Empty(t, e.Images)
}

func TestEventValidateScheduleOrder(t *testing.T) {
	svc := NewEventService(&fakeEvents{}, nil, discard())

	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), models.Event{
		Name: "Meetup",
		Schedules: []models.EventSchedule{
			{StartDate: start, EndDate: start.Add(-time.Hour)},
		},
	}, nil)
	assert.Error(t, err)
}
