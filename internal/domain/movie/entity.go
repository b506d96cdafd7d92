package movie

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxTitleLength = 200
	MaxGenreLength = 50
)

var (
	ErrEmptyTitle   = errors.New("movie title cannot be empty")
	ErrTitleTooLong = errors.New("movie title exceeds maximum length")
	ErrEmptyGenre   = errors.New("movie genre cannot be empty")
	ErrGenreTooLong = errors.New("movie genre exceeds maximum length")
)

type Movie struct {
	id        uuid.UUID
	title     string
	genre     string
	createdAt time.Time
	updatedAt time.Time
}

func NewMovie(title, genre string, now time.Time) (*Movie, error) {
	t, g, err := normalize(title, genre)
	if err != nil {
		return nil, err
	}
	return &Movie{id: uuid.New(), title: t, genre: g, createdAt: now, updatedAt: now}, nil
}

func ReconstructMovie(id uuid.UUID, title, genre string, createdAt, updatedAt time.Time) *Movie {
	return &Movie{id: id, title: title, genre: genre, createdAt: createdAt, updatedAt: updatedAt}
}

func (m *Movie) ID() uuid.UUID        { return m.id }
func (m *Movie) Title() string        { return m.title }
func (m *Movie) Genre() string        { return m.genre }
func (m *Movie) CreatedAt() time.Time { return m.createdAt }
func (m *Movie) UpdatedAt() time.Time { return m.updatedAt }

func (m *Movie) Update(title, genre string, now time.Time) error {
	t, g, err := normalize(title, genre)
	if err != nil {
		return err
	}
	m.title, m.genre, m.updatedAt = t, g, now
	return nil
}

func normalize(title, genre string) (string, string, error) {
	t := strings.TrimSpace(title)
	g := strings.TrimSpace(genre)
	switch {
	case t == "":
		return "", "", ErrEmptyTitle
	case len(t) > MaxTitleLength:
		return "", "", ErrTitleTooLong
	case g == "":
		return "", "", ErrEmptyGenre
	case len(g) > MaxGenreLength:
		return "", "", ErrGenreTooLong
	}
	return t, g, nil
}
