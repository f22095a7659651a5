package booking

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/skipor/tiercache/keylock"
	"github.com/skipor/tiercache/log"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrUnavailable   = errors.New("no tables available for slot")
	// ErrContended reports that the slot lock was not acquired in time.
	// No state was mutated; the caller may retry.
	ErrContended  = errors.New("slot is contended, try again")
	ErrValidation = errors.New("invalid booking request")
)

const (
	DefaultLockTimeout = 5 * time.Second
	DefaultWindowDays  = 30
)

type Config struct {
	// LockTimeout bounds slot lock acquisition in Book.
	// Zero means DefaultLockTimeout.
	LockTimeout time.Duration
	// WindowDays bounds how far ahead slots can be configured and booked.
	// Zero means DefaultWindowDays.
	WindowDays int
	// Locks is the slot lock registry. Nil means a fresh private one.
	// Shared registry is useful in tests to model contention.
	Locks *keylock.Registry
}

type Venue struct {
	ID   string
	Name string
	City string
	Area string
}

type Booking struct {
	ID        string
	VenueID   string
	UserID    string
	Slot      time.Time
	People    int
	CreatedAt time.Time
}

func NewSystem(l log.Logger, conf Config) *System {
	if conf.LockTimeout == 0 {
		conf.LockTimeout = DefaultLockTimeout
	}
	if conf.WindowDays == 0 {
		conf.WindowDays = DefaultWindowDays
	}
	if conf.Locks == nil {
		conf.Locks = keylock.NewRegistry()
	}
	return &System{
		conf:     conf,
		log:      l,
		venues:   make(map[string]*Venue),
		slots:    make(map[string]int),
		bookings: make(map[string]Booking),
	}
}

type System struct {
	conf Config
	log  log.Logger

	// mu guards the maps below. Slot decrement is guarded by the per slot
	// lock additionally, so check-then-decrement is atomic per slot.
	mu       sync.RWMutex
	venues   map[string]*Venue
	slots    map[string]int // Slot key to free table count.
	bookings map[string]Booking
	lastID   int
}

func (s *System) RegisterVenue(v Venue) (id string, err error) {
	if v.ID == "" {
		return "", errors.Wrap(ErrValidation, "venue id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := v
	s.venues[v.ID] = &stored
	s.log.Debugf("Venue %q registered.", v.ID)
	return v.ID, nil
}

// SetSlot configures the free table count for the venue slot.
func (s *System) SetSlot(venueID string, at time.Time, tables int) error {
	if tables < 0 {
		return errors.Wrap(ErrValidation, "tables must be >= 0")
	}
	if !s.withinWindow(at) {
		return errors.Wrapf(ErrValidation, "slot %v is outside booking window", at)
	}
	if _, err := s.venue(venueID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slotKey(venueID, at)] = tables
	return nil
}

func (s *System) Available(venueID string, at time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[slotKey(venueID, at)]
}

// Book reserves one table for the venue slot.
// The check-then-decrement runs under the slot lock: on any failure no table
// is taken. Lock acquisition is bounded by Config.LockTimeout; on timeout
// Book fails with ErrContended cause.
func (s *System) Book(userID, venueID string, at time.Time, people int) (Booking, error) {
	if people <= 0 {
		return Booking{}, errors.Wrap(ErrValidation, "people must be > 0")
	}
	if !s.withinWindow(at) {
		return Booking{}, errors.Wrap(ErrValidation, "booking beyond allowed window")
	}
	if _, err := s.venue(venueID); err != nil {
		return Booking{}, err
	}

	var b Booking
	err := s.conf.Locks.With(slotKey(venueID, at), s.conf.LockTimeout, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		key := slotKey(venueID, at)
		if s.slots[key] <= 0 {
			return errors.WithStack(ErrUnavailable)
		}
		s.slots[key]--
		s.lastID++
		b = Booking{
			ID:        fmt.Sprintf("booking-%v", s.lastID),
			VenueID:   venueID,
			UserID:    userID,
			Slot:      at,
			People:    people,
			CreatedAt: time.Now(),
		}
		s.bookings[b.ID] = b
		return nil
	})
	if err != nil {
		if errors.Cause(err) == keylock.ErrTimeout {
			s.log.Warnf("Booking of %q contended: %v", venueID, err)
			return Booking{}, errors.Wrap(ErrContended, err.Error())
		}
		return Booking{}, err
	}
	s.log.Debugf("Booked %v for user %q.", b.ID, userID)
	return b, nil
}

func (s *System) Bookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	return bookings
}

func (s *System) venue(id string) (*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, errors.Wrapf(ErrVenueNotFound, "venue %q", id)
	}
	return v, nil
}

func (s *System) withinWindow(at time.Time) bool {
	now := time.Now()
	return !at.Before(now.Truncate(24*time.Hour)) &&
		at.Before(now.AddDate(0, 0, s.conf.WindowDays))
}

func slotKey(venueID string, at time.Time) string {
	return venueID + "/" + at.UTC().Format(time.RFC3339)
}
