package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/entity"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. Links are
// held in a single relation map, matching the attendance table.
type fakeStore struct {
	mu          sync.Mutex
	nextEventID int64
	nextUserID  int64
	events      map[int64]*entity.Event
	users       map[int64]*entity.User
	links       map[linkKey]time.Time
}

type linkKey struct {
	userID  int64
	eventID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[int64]*entity.Event),
		users:  make(map[int64]*entity.User),
		links:  make(map[linkKey]time.Time),
	}
}

func (s *fakeStore) addUser(username, email string, isHost bool) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user := &entity.User{
		ID:        s.nextUserID,
		Username:  username,
		Email:     email,
		IsHost:    isHost,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	return user
}

type fakeEventRepo struct{ store *fakeStore }

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextEventID++
	event.ID = r.store.nextEventID
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	cp := *event
	r.store.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	cp := *event
	return &cp, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	cp := *event
	cp.UpdatedAt = time.Now()
	r.store.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(r.store.events, id)
	for key := range r.store.links {
		if key.eventID == id {
			delete(r.store.links, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) GetUpcoming(_ context.Context, after time.Time) ([]*entity.EventWithHost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var events []*entity.EventWithHost
	for _, event := range r.store.events {
		if !event.StartsAt.After(after) {
			continue
		}
		events = append(events, r.store.withHost(event))
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID > events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *fakeEventRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var purged int64
	for id, event := range r.store.events {
		if event.StartsAt.After(before) {
			continue
		}
		delete(r.store.events, id)
		for key := range r.store.links {
			if key.eventID == id {
				delete(r.store.links, key)
			}
		}
		purged++
	}
	return purged, nil
}

// withHost attaches host username and attendee count; callers hold the lock.
func (s *fakeStore) withHost(event *entity.Event) *entity.EventWithHost {
	out := &entity.EventWithHost{Event: *event}
	if host, ok := s.users[event.HostID]; ok {
		out.HostUsername = host.Username
	}
	for key := range s.links {
		if key.eventID == event.ID {
			out.AttendeeCount++
		}
	}
	return out
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return entity.ErrUserAlreadyExists
		}
	}
	r.store.nextUserID++
	user.ID = r.store.nextUserID
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) SetHostFlag(_ context.Context, userID int64, isHost bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	user.IsHost = isHost
	return nil
}

type fakeAttendanceRepo struct{ store *fakeStore }

func (r *fakeAttendanceRepo) Exists(_ context.Context, eventID, userID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.links[linkKey{userID: userID, eventID: eventID}]
	return ok, nil
}

func (r *fakeAttendanceRepo) Add(_ context.Context, eventID, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := linkKey{userID: userID, eventID: eventID}
	if _, ok := r.store.links[key]; !ok {
		r.store.links[key] = time.Now()
	}
	return nil
}

func (r *fakeAttendanceRepo) Remove(_ context.Context, eventID, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.links, linkKey{userID: userID, eventID: eventID})
	return nil
}

func (r *fakeAttendanceRepo) CountByEvent(_ context.Context, eventID int64) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	count := 0
	for key := range r.store.links {
		if key.eventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) AttendeesByEvent(_ context.Context, eventID int64) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []*entity.User
	for key := range r.store.links {
		if key.eventID != eventID {
			continue
		}
		if user, ok := r.store.users[key.userID]; ok {
			cp := *user
			users = append(users, &cp)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeAttendanceRepo) EventsByUser(_ context.Context, userID int64, after time.Time) ([]*entity.EventWithHost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var events []*entity.EventWithHost
	for key := range r.store.links {
		if key.userID != userID {
			continue
		}
		event, ok := r.store.events[key.eventID]
		if !ok || !event.StartsAt.After(after) {
			continue
		}
		events = append(events, r.store.withHost(event))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartsAt.Before(events[j].StartsAt) })
	return events, nil
}
