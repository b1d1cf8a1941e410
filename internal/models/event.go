package models

import (
	"errors"
	"strings"
	"time"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventOngoing   EventStatus = "ONGOING"
	EventCompleted EventStatus = "COMPLETED"
)

type EventImageType string

const (
	ImageBanner    EventImageType = "BANNER"
	ImageThumbnail EventImageType = "THUMBNAIL"
	ImageGallery   EventImageType = "GALLERY"
)

type EventSchedule struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
}

type EventImage struct {
	ID        string         `json:"id"`
	EventID   string         `json:"event_id,omitempty"`
	ImageURL  string         `json:"image_url"`
	ImageType EventImageType `json:"image_type"`
}

type Event struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      EventStatus     `json:"status"`
	Schedules   []EventSchedule `json:"schedules"`
	Images      []EventImage    `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name required")
	}
	if e.Status == "" {
		e.Status = EventUpcoming
	}
	for _, s := range e.Schedules {
		if s.EndDate.Before(s.StartDate) {
			return errors.New("schedule ends before it starts")
		}
	}
	return nil
}
