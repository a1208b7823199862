package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/KadakWNL/crowd-connect/internal/database/postgres"
	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/sirupsen/logrus"
)

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
	cache          ListingCache
}

// NewAttendanceService creates a new instance of AttendanceService
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	cache ListingCache,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

func (s *attendanceService) ToggleAttendance(ctx context.Context, eventID, userID int64) (*entity.ToggleResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// An expired event awaiting the purge sweep behaves as already gone.
	if event.Expired(time.Now()) {
		return nil, entity.ErrEventNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	attending, err := s.attendanceRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check attendance: %w", err)
	}

	// The relation row is the only place membership lives, so the flip is a
	// single write and both the event and user views move together.
	if attending {
		err = s.attendanceRepo.Remove(ctx, eventID, userID)
	} else {
		err = s.attendanceRepo.Add(ctx, eventID, userID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.attendanceRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":     eventID,
		"user_id":      userID,
		"is_attending": !attending,
	}).Info("Attendance toggled")

	if s.cache != nil {
		if err := s.cache.InvalidateListing(ctx); err != nil {
			logrus.Warnf("Failed to invalidate event listing cache: %v", err)
		}
	}

	return &entity.ToggleResult{
		IsAttending:   !attending,
		AttendeeCount: count,
	}, nil
}

func (s *attendanceService) GetAttendingEvents(ctx context.Context, userID int64) ([]*entity.EventWithHost, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	events, err := s.attendanceRepo.EventsByUser(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get attending events: %w", err)
	}

	return events, nil
}
