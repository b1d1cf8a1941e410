package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bic-devsphere/devsphere-backend/internal/models"
	"github.com/bic-devsphere/devsphere-backend/internal/store"
)

type eventsRepo struct{ s store.Store }

func (r *eventsRepo) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.s.Execute(ctx, "event", store.OpCreate, store.Args{Data: store.Row{
		"id":          e.ID,
		"name":        e.Name,
		"description": e.Description,
		"status":      string(e.Status),
	}})
	if err != nil {
		return models.Event{}, err
	}
	for _, sch := range e.Schedules {
		if err := r.createSchedule(ctx, e.ID, sch); err != nil {
			return models.Event{}, err
		}
	}
	for _, img := range e.Images {
		if err := r.createImage(ctx, e.ID, img); err != nil {
			return models.Event{}, err
		}
	}
	return r.GetByID(ctx, e.ID)
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (models.Event, error) {
	res, err := r.s.Execute(ctx, "event", store.OpFindFirst, store.Args{Where: store.Row{"id": id}})
	if err != nil {
		return models.Event{}, notFound(err)
	}
	return r.hydrate(ctx, eventFromRow(res.Row))
}

func (r *eventsRepo) List(ctx context.Context) ([]models.Event, error) {
	res, err := r.s.Execute(ctx, "event", store.OpFindMany, store.Args{OrderBy: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(res.Rows))
	for _, row := range res.Rows {
		e, err := r.hydrate(ctx, eventFromRow(row))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Update upserts nested schedules and images: entries carrying an id are
// updated in place, the rest are created.
func (r *eventsRepo) Update(ctx context.Context, e models.Event) (models.Event, error) {
	_, err := r.s.Execute(ctx, "event", store.OpUpdate, store.Args{
		Where: store.Row{"id": e.ID},
		Data: store.Row{
			"name":        e.Name,
			"description": e.Description,
			"status":      string(e.Status),
		},
	})
	if err != nil {
		return models.Event{}, notFound(err)
	}
	for _, sch := range e.Schedules {
		if sch.ID == "" {
			if err := r.createSchedule(ctx, e.ID, sch); err != nil {
				return models.Event{}, err
			}
			continue
		}
		_, err := r.s.Execute(ctx, "eventSchedule", store.OpUpdate, store.Args{
			Where: store.Row{"id": sch.ID},
			Data: store.Row{
				"start_date":  sch.StartDate,
				"end_date":    sch.EndDate,
				"description": sch.Description,
			},
		})
		if err != nil {
			return models.Event{}, err
		}
	}
	for _, img := range e.Images {
		if img.ID == "" {
			if err := r.createImage(ctx, e.ID, img); err != nil {
				return models.Event{}, err
			}
			continue
		}
		_, err := r.s.Execute(ctx, "eventImage", store.OpUpdate, store.Args{
			Where: store.Row{"id": img.ID},
			Data: store.Row{
				"image_url":  img.ImageURL,
				"image_type": string(img.ImageType),
			},
		})
		if err != nil {
			return models.Event{}, err
		}
	}
	return r.GetByID(ctx, e.ID)
}

// Delete removes the event row; schedules and images go with it via the
// ON DELETE CASCADE constraints.
func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.Execute(ctx, "event", store.OpDelete, store.Args{Where: store.Row{"id": id}})
	return notFound(err)
}

func (r *eventsRepo) createSchedule(ctx context.Context, eventID string, sch models.EventSchedule) error {
	_, err := r.s.Execute(ctx, "eventSchedule", store.OpCreate, store.Args{Data: store.Row{
		"id":          uuid.NewString(),
		"event_id":    eventID,
		"start_date":  sch.StartDate,
		"end_date":    sch.EndDate,
		"description": sch.Description,
	}})
	return err
}

func (r *eventsRepo) createImage(ctx context.Context, eventID string, img models.EventImage) error {
	_, err := r.s.Execute(ctx, "eventImage", store.OpCreate, store.Args{Data: store.Row{
		"id":         uuid.NewString(),
		"event_id":   eventID,
		"image_url":  img.ImageURL,
		"image_type": string(img.ImageType),
	}})
	return err
}

func (r *eventsRepo) hydrate(ctx context.Context, e models.Event) (models.Event, error) {
	sres, err := r.s.Execute(ctx, "eventSchedule", store.OpFindMany, store.Args{
		Where: store.Row{"event_id": e.ID}, OrderBy: "start_date",
	})
	if err != nil {
		return models.Event{}, err
	}
	for _, row := range sres.Rows {
		e.Schedules = append(e.Schedules, models.EventSchedule{
			ID:          rowString(row, "id"),
			EventID:     rowString(row, "event_id"),
			StartDate:   rowTime(row, "start_date"),
			EndDate:     rowTime(row, "end_date"),
			Description: rowString(row, "description"),
		})
	}
	ires, err := r.s.Execute(ctx, "eventImage", store.OpFindMany, store.Args{
		Where: store.Row{"event_id": e.ID},
	})
	if err != nil {
		return models.Event{}, err
	}
	for _, row := range ires.Rows {
		e.Images = append(e.Images, models.EventImage{
			ID:        rowString(row, "id"),
			EventID:   rowString(row, "event_id"),
			ImageURL:  rowString(row, "image_url"),
			ImageType: models.EventImageType(rowString(row, "image_type")),
		})
	}
	return e, nil
}

func eventFromRow(row store.Row) models.Event {
	return models.Event{
		ID:          rowString(row, "id"),
		Name:        rowString(row, "name"),
		Description: rowString(row, "description"),
		Status:      models.EventStatus(rowString(row, "status")),
		CreatedAt:   rowTime(row, "created_at"),
		UpdatedAt:   rowTime(row, "updated_at"),
	}
}
