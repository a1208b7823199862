package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/KadakWNL/crowd-connect/internal/database/postgres"
	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/sirupsen/logrus"
)

// CreateEventRequest represents the data needed to create an event
type CreateEventRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=255"`
	Description  string   `json:"description" binding:"required,max=1000"`
	Date         string   `json:"date" binding:"required"`
	Time         string   `json:"time" binding:"required"`
	Category     string   `json:"category" binding:"required,max=100"`
	LocationName string   `json:"location_name" binding:"required,max=255"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
}

// UpdateEventRequest represents the data needed to update an event.
// Pointer fields distinguish "not supplied" from "supplied as zero".
type UpdateEventRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Time         *string  `json:"time,omitempty"`
	Category     *string  `json:"category,omitempty"`
	LocationName *string  `json:"location_name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type eventService struct {
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	cache          ListingCache
}

// NewEventService creates a new instance of EventService
func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	cache ListingCache,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		cache:          cache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, hostID int64, req *CreateEventRequest) (*entity.Event, error) {
	host, err := s.userRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if err := requireHost(host); err != nil {
		return nil, err
	}

	startsAt, err := entity.CombineDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if err := requireFutureStart(startsAt, time.Now()); err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		StartsAt:     startsAt,
		Category:     req.Category,
		LocationName: req.LocationName,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		HostID:       hostID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateListing(ctx)
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.EventDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A purged-but-not-yet-swept event must never reach a client.
	if event.Expired(time.Now()) {
		return nil, entity.ErrEventNotFound
	}

	host, err := s.userRepo.GetByID(ctx, event.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event host: %w", err)
	}

	attendees, err := s.attendanceRepo.AttendeesByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}

	details := &entity.EventDetails{
		Event:     *event,
		Host:      host.Public(),
		Attendees: make([]entity.PublicUser, 0, len(attendees)),
	}
	for _, attendee := range attendees {
		details.Attendees = append(details.Attendees, attendee.Public())
	}

	return details, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*entity.EventWithHost, error) {
	now := time.Now()

	if s.cache != nil {
		if events, err := s.cache.GetListing(ctx); err == nil {
			// An event may expire mid-TTL; it must not be served from cache.
			fresh := events[:0]
			for _, event := range events {
				if !event.Expired(now) {
					fresh = append(fresh, event)
				}
			}
			return fresh, nil
		}
	}

	events, err := s.eventRepo.GetUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, events); err != nil {
			logrus.Warnf("Failed to cache event listing: %v", err)
		}
	}

	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id, userID int64, req *UpdateEventRequest) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(event, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.LocationName != nil {
		event.LocationName = *req.LocationName
	}
	if req.Latitude != nil {
		event.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		event.Longitude = *req.Longitude
	}

	if req.Date != nil || req.Time != nil {
		startsAt, err := entity.CombineDateTime(event.Date, event.Time)
		if err != nil {
			return nil, err
		}
		event.StartsAt = startsAt
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidateListing(ctx)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, userID int64) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(event, userID); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateListing(ctx)
	return nil
}

func (s *eventService) GetRoster(ctx context.Context, eventID, userID int64) ([]entity.PublicUser, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(event, userID); err != nil {
		return nil, err
	}

	attendees, err := s.attendanceRepo.AttendeesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}

	roster := make([]entity.PublicUser, 0, len(attendees))
	for _, attendee := range attendees {
		roster = append(roster, attendee.Public())
	}

	return roster, nil
}

func (s *eventService) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.eventRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired events: %w", err)
	}

	if purged > 0 {
		logrus.Infof("Purged %d expired events", purged)
		s.invalidateListing(ctx)
	}

	return purged, nil
}

func (s *eventService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx); err != nil {
		logrus.Warnf("Failed to invalidate event listing cache: %v", err)
	}
}
