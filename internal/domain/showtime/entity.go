package showtime

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingMovie    = errors.New("movie id is required")
	ErrMissingRoom     = errors.New("room id is required")
	ErrMissingStartsAt = errors.New("start time is required")
)

// Showtime places a movie in a room at a given time. Reservations against it
// draw seats from that room.
type Showtime struct {
	id        uuid.UUID
	movieID   uuid.UUID
	roomID    uuid.UUID
	startsAt  time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewShowtime(movieID, roomID uuid.UUID, startsAt, now time.Time) (*Showtime, error) {
	if err := validate(movieID, roomID, startsAt); err != nil {
		return nil, err
	}
	return &Showtime{
		id:        uuid.New(),
		movieID:   movieID,
		roomID:    roomID,
		startsAt:  startsAt.UTC(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructShowtime(id, movieID, roomID uuid.UUID, startsAt, createdAt, updatedAt time.Time) *Showtime {
	return &Showtime{
		id:        id,
		movieID:   movieID,
		roomID:    roomID,
		startsAt:  startsAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Showtime) ID() uuid.UUID        { return s.id }
func (s *Showtime) MovieID() uuid.UUID   { return s.movieID }
func (s *Showtime) RoomID() uuid.UUID    { return s.roomID }
func (s *Showtime) StartsAt() time.Time  { return s.startsAt }
func (s *Showtime) CreatedAt() time.Time { return s.createdAt }
func (s *Showtime) UpdatedAt() time.Time { return s.updatedAt }

// Reschedule changes movie, room and start time. It reports whether the room
// moved, since seats already sold must then follow the showtime.
func (s *Showtime) Reschedule(movieID, roomID uuid.UUID, startsAt, now time.Time) (roomChanged bool, err error) {
	if err := validate(movieID, roomID, startsAt); err != nil {
		return false, err
	}
	roomChanged = s.roomID != roomID
	s.movieID = movieID
	s.roomID = roomID
	s.startsAt = startsAt.UTC()
	s.updatedAt = now
	return roomChanged, nil
}

func validate(movieID, roomID uuid.UUID, startsAt time.Time) error {
	if movieID == uuid.Nil {
		return ErrMissingMovie
	}
	if roomID == uuid.Nil {
		return ErrMissingRoom
	}
	if startsAt.IsZero() {
		return ErrMissingStartsAt
	}
	return nil
}
