//go:build unit || e2e

// Package memuow is an in-memory shared.UnitOfWork for use-case tests. Each
// transaction runs alone on a copy of the store and is discarded on error.
// Constraint failures come back as the same infra.RepositoryError kinds and
// constraint names the Postgres repositories produce.
package memuow

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"cineapp/internal/domain/customer"
	"cineapp/internal/domain/movie"
	"cineapp/internal/domain/reservation"
	"cineapp/internal/domain/room"
	"cineapp/internal/domain/showtime"
	"cineapp/internal/infra"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type roomRow struct {
	name                 string
	capacity             int
	createdAt, updatedAt time.Time
}

type showtimeRow struct {
	movieID, roomID      uuid.UUID
	startsAt             time.Time
	createdAt, updatedAt time.Time
}

type reservationRow struct {
	showtimeID, customerID uuid.UUID
	seats                  int
	createdAt, updatedAt   time.Time
}

type movieRow struct {
	title, genre         string
	createdAt, updatedAt time.Time
}

type customerRow struct {
	name, email          string
	createdAt, updatedAt time.Time
}

type idemKey struct {
	key      uuid.UUID
	endpoint string
}

type state struct {
	rooms        map[uuid.UUID]roomRow
	showtimes    map[uuid.UUID]showtimeRow
	reservations map[uuid.UUID]reservationRow
	movies       map[uuid.UUID]movieRow
	customers    map[uuid.UUID]customerRow
	idempotency  map[idemKey]shared.IdempotencyRecord
	jobs         map[uuid.UUID]shared.NotificationJob

	// jobSeq mirrors the identity column that orders jobs sharing a run_at.
	jobSeq  map[uuid.UUID]uint64
	nextSeq uint64
}

func newState() *state {
	return &state{
		rooms:        map[uuid.UUID]roomRow{},
		showtimes:    map[uuid.UUID]showtimeRow{},
		reservations: map[uuid.UUID]reservationRow{},
		movies:       map[uuid.UUID]movieRow{},
		customers:    map[uuid.UUID]customerRow{},
		idempotency:  map[idemKey]shared.IdempotencyRecord{},
		jobs:         map[uuid.UUID]shared.NotificationJob{},
		jobSeq:       map[uuid.UUID]uint64{},
	}
}

func (s *state) clone() *state {
	return &state{
		rooms:        maps.Clone(s.rooms),
		showtimes:    maps.Clone(s.showtimes),
		reservations: maps.Clone(s.reservations),
		movies:       maps.Clone(s.movies),
		customers:    maps.Clone(s.customers),
		idempotency:  maps.Clone(s.idempotency),
		jobs:         maps.Clone(s.jobs),
		jobSeq:       maps.Clone(s.jobSeq),
		nextSeq:      s.nextSeq,
	}
}

// Store implements shared.UnitOfWork.
type Store struct {
	mu    sync.Mutex
	state *state

	commits   int
	rollbacks int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		s.rollbacks++
		return err
	}
	s.state = work
	s.commits++
	return nil
}

// Commits and Rollbacks count finished transactions.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// ---------------------------------------------------------------------------
// seeding and inspection
// ---------------------------------------------------------------------------

var seedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *Store) SeedRoom(name string, capacity int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.rooms[id] = roomRow{name: name, capacity: capacity, createdAt: seedTime, updatedAt: seedTime}
	return id
}

func (s *Store) SeedMovie(title string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.movies[id] = movieRow{title: title, genre: "Drama", createdAt: seedTime, updatedAt: seedTime}
	return id
}

func (s *Store) SeedShowtime(movieID, roomID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.showtimes[id] = showtimeRow{
		movieID:   movieID,
		roomID:    roomID,
		startsAt:  seedTime.Add(48 * time.Hour),
		createdAt: seedTime,
		updatedAt: seedTime,
	}
	return id
}

func (s *Store) SeedCustomer(email string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.customers[id] = customerRow{name: "Test Customer", email: email, createdAt: seedTime, updatedAt: seedTime}
	return id
}

// SeedReservation writes a ledger row without touching room capacity.
func (s *Store) SeedReservation(showtimeID, customerID uuid.UUID, seats int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.reservations[id] = reservationRow{
		showtimeID: showtimeID,
		customerID: customerID,
		seats:      seats,
		createdAt:  seedTime,
		updatedAt:  seedTime,
	}
	return id
}

// DropShowtime and DropRoom remove rows without any reference checks, which
// is the only way to produce dangling references here.
func (s *Store) DropShowtime(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.showtimes, id)
}

func (s *Store) DropRoom(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.rooms, id)
}

func (s *Store) RoomCapacity(id uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.rooms[id]
	return r.capacity, ok
}

func (s *Store) ShowtimeRoom(id uuid.UUID) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.state.showtimes[id]
	return st.roomID, ok
}

// Reservation returns the stored showtime and seat count of a reservation.
func (s *Store) Reservation(id uuid.UUID) (showtimeID uuid.UUID, seats int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.reservations[id]
	return r.showtimeID, r.seats, ok
}

func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.reservations)
}

// Jobs returns all outbox jobs ordered by run time.
func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := slices.Collect(maps.Values(s.state.jobs))
	s.state.sortJobs(jobs)
	return jobs
}

func (s *Store) IdempotencyRecord(key uuid.UUID, endpoint string) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.idempotency[idemKey{key, endpoint}]
	return rec, ok
}

// SeedIdempotencyRecord stores rec as is.
func (s *Store) SeedIdempotencyRecord(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.idempotency[idemKey{rec.Key, rec.Endpoint}] = rec
}

// sortJobs orders by run time, then insertion order.
func (st *state) sortJobs(jobs []shared.NotificationJob) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].RunAt.Equal(jobs[j].RunAt) {
			return st.jobSeq[jobs[i].ID] < st.jobSeq[jobs[j].ID]
		}
		return jobs[i].RunAt.Before(jobs[j].RunAt)
	})
}

// ---------------------------------------------------------------------------
// errors shaped like the Postgres repositories
// ---------------------------------------------------------------------------

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows)
}

func violation(msg, code, constraint string) error {
	return infra.WrapRepoErr(msg, &pgconn.PgError{Code: code, ConstraintName: constraint})
}

func fkViolation(msg, constraint string) error {
	return violation(msg, "23503", constraint)
}

// ---------------------------------------------------------------------------
// transaction and repositories
// ---------------------------------------------------------------------------

type memTx struct {
	st *state
}

func (t *memTx) Rooms() shared.RoomRepository                 { return roomRepo{t.st} }
func (t *memTx) Showtimes() shared.ShowtimeRepository         { return showtimeRepo{t.st} }
func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t.st} }
func (t *memTx) Movies() shared.MovieRepository               { return movieRepo{t.st} }
func (t *memTx) Customers() shared.CustomerRepository         { return customerRepo{t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t.st} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{t.st} }

type roomRepo struct{ st *state }

func (r roomRepo) Create(_ context.Context, rm *room.Room) error {
	r.st.rooms[rm.ID()] = roomRow{
		name:      rm.Name().String(),
		capacity:  rm.Capacity().Seats(),
		createdAt: rm.CreatedAt(),
		updatedAt: rm.UpdatedAt(),
	}
	return nil
}

func (r roomRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*room.Room, error) {
	row, ok := r.st.rooms[id]
	if !ok {
		return nil, notFound("room not found")
	}
	return room.ReconstructRoom(id, row.name, row.capacity, row.createdAt, row.updatedAt), nil
}

func (r roomRepo) SaveCapacity(_ context.Context, rm *room.Room) error {
	row, ok := r.st.rooms[rm.ID()]
	if !ok {
		return notFound("room not found")
	}
	if rm.Capacity().Seats() < 0 {
		return violation("failed to save room capacity", "23514", "rooms_capacity_non_negative")
	}
	row.capacity = rm.Capacity().Seats()
	row.updatedAt = rm.UpdatedAt()
	r.st.rooms[rm.ID()] = row
	return nil
}

func (r roomRepo) UpdateName(_ context.Context, rm *room.Room) error {
	row, ok := r.st.rooms[rm.ID()]
	if !ok {
		return notFound("room not found")
	}
	row.name = rm.Name().String()
	row.updatedAt = rm.UpdatedAt()
	r.st.rooms[rm.ID()] = row
	return nil
}

func (r roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.rooms[id]; !ok {
		return notFound("room not found")
	}
	for _, st := range r.st.showtimes {
		if st.roomID == id {
			return fkViolation("failed to delete room", "showtimes_room_id_fkey")
		}
	}
	delete(r.st.rooms, id)
	return nil
}

type showtimeRepo struct{ st *state }

func (r showtimeRepo) checkParents(s *showtime.Showtime) error {
	if _, ok := r.st.movies[s.MovieID()]; !ok {
		return fkViolation("failed to write showtime", "showtimes_movie_id_fkey")
	}
	if _, ok := r.st.rooms[s.RoomID()]; !ok {
		return fkViolation("failed to write showtime", "showtimes_room_id_fkey")
	}
	return nil
}

func (r showtimeRepo) Create(_ context.Context, s *showtime.Showtime) error {
	if err := r.checkParents(s); err != nil {
		return err
	}
	r.st.showtimes[s.ID()] = showtimeRow{
		movieID:   s.MovieID(),
		roomID:    s.RoomID(),
		startsAt:  s.StartsAt(),
		createdAt: s.CreatedAt(),
		updatedAt: s.UpdatedAt(),
	}
	return nil
}

func (r showtimeRepo) ResolveRoom(_ context.Context, showtimeID uuid.UUID) (uuid.UUID, error) {
	row, ok := r.st.showtimes[showtimeID]
	if !ok {
		return uuid.Nil, notFound("showtime not found")
	}
	return row.roomID, nil
}

func (r showtimeRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*showtime.Showtime, error) {
	row, ok := r.st.showtimes[id]
	if !ok {
		return nil, notFound("showtime not found")
	}
	return showtime.ReconstructShowtime(id, row.movieID, row.roomID, row.startsAt, row.createdAt, row.updatedAt), nil
}

func (r showtimeRepo) Update(_ context.Context, s *showtime.Showtime) error {
	row, ok := r.st.showtimes[s.ID()]
	if !ok {
		return notFound("showtime not found")
	}
	if err := r.checkParents(s); err != nil {
		return err
	}
	row.movieID = s.MovieID()
	row.roomID = s.RoomID()
	row.startsAt = s.StartsAt()
	row.updatedAt = s.UpdatedAt()
	r.st.showtimes[s.ID()] = row
	return nil
}

func (r showtimeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.showtimes[id]; !ok {
		return notFound("showtime not found")
	}
	for _, res := range r.st.reservations {
		if res.showtimeID == id {
			return fkViolation("failed to delete showtime", "reservations_showtime_id_fkey")
		}
	}
	delete(r.st.showtimes, id)
	return nil
}

type reservationRepo struct{ st *state }

func (r reservationRepo) checkParents(res *reservation.Reservation) error {
	if _, ok := r.st.showtimes[res.ShowtimeID()]; !ok {
		return fkViolation("failed to write reservation", "reservations_showtime_id_fkey")
	}
	if _, ok := r.st.customers[res.CustomerID()]; !ok {
		return fkViolation("failed to write reservation", "reservations_customer_id_fkey")
	}
	return nil
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.checkParents(res); err != nil {
		return err
	}
	r.st.reservations[res.ID()] = reservationRow{
		showtimeID: res.ShowtimeID(),
		customerID: res.CustomerID(),
		seats:      res.SeatCount().Value(),
		createdAt:  res.CreatedAt(),
		updatedAt:  res.UpdatedAt(),
	}
	return nil
}

func (r reservationRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return reservation.ReconstructReservation(id, row.showtimeID, row.customerID, row.seats, row.createdAt, row.updatedAt), nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	row, ok := r.st.reservations[res.ID()]
	if !ok {
		return notFound("reservation not found")
	}
	if err := r.checkParents(res); err != nil {
		return err
	}
	row.showtimeID = res.ShowtimeID()
	row.customerID = res.CustomerID()
	row.seats = res.SeatCount().Value()
	row.updatedAt = res.UpdatedAt()
	r.st.reservations[res.ID()] = row
	return nil
}

func (r reservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.reservations[id]; !ok {
		return notFound("reservation not found")
	}
	delete(r.st.reservations, id)
	return nil
}

func (r reservationRepo) CountByShowtime(_ context.Context, showtimeID uuid.UUID) (int, error) {
	n := 0
	for _, res := range r.st.reservations {
		if res.showtimeID == showtimeID {
			n++
		}
	}
	return n, nil
}

func (r reservationRepo) SumSeatsByShowtime(_ context.Context, showtimeID uuid.UUID) (int, error) {
	sum := 0
	for _, res := range r.st.reservations {
		if res.showtimeID == showtimeID {
			sum += res.seats
		}
	}
	return sum, nil
}

type movieRepo struct{ st *state }

func (r movieRepo) Create(_ context.Context, m *movie.Movie) error {
	r.st.movies[m.ID()] = movieRow{title: m.Title(), genre: m.Genre(), createdAt: m.CreatedAt(), updatedAt: m.UpdatedAt()}
	return nil
}

func (r movieRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*movie.Movie, error) {
	row, ok := r.st.movies[id]
	if !ok {
		return nil, notFound("movie not found")
	}
	return movie.ReconstructMovie(id, row.title, row.genre, row.createdAt, row.updatedAt), nil
}

func (r movieRepo) Update(_ context.Context, m *movie.Movie) error {
	row, ok := r.st.movies[m.ID()]
	if !ok {
		return notFound("movie not found")
	}
	row.title, row.genre, row.updatedAt = m.Title(), m.Genre(), m.UpdatedAt()
	r.st.movies[m.ID()] = row
	return nil
}

func (r movieRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.movies[id]; !ok {
		return notFound("movie not found")
	}
	for _, st := range r.st.showtimes {
		if st.movieID == id {
			return fkViolation("failed to delete movie", "showtimes_movie_id_fkey")
		}
	}
	delete(r.st.movies, id)
	return nil
}

type customerRepo struct{ st *state }

func (r customerRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, c := range r.st.customers {
		if id != except && c.email == email {
			return true
		}
	}
	return false
}

func (r customerRepo) Create(_ context.Context, c *customer.Customer) error {
	if r.emailTaken(c.Email().Value(), uuid.Nil) {
		return violation("failed to create customer", "23505", "customers_email_key")
	}
	r.st.customers[c.ID()] = customerRow{
		name:      c.Name(),
		email:     c.Email().Value(),
		createdAt: c.CreatedAt(),
		updatedAt: c.UpdatedAt(),
	}
	return nil
}

func (r customerRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	row, ok := r.st.customers[id]
	if !ok {
		return nil, notFound("customer not found")
	}
	return customer.ReconstructCustomer(id, row.name, row.email, row.createdAt, row.updatedAt), nil
}

func (r customerRepo) Update(_ context.Context, c *customer.Customer) error {
	row, ok := r.st.customers[c.ID()]
	if !ok {
		return notFound("customer not found")
	}
	if r.emailTaken(c.Email().Value(), c.ID()) {
		return violation("failed to update customer", "23505", "customers_email_key")
	}
	row.name, row.email, row.updatedAt = c.Name(), c.Email().Value(), c.UpdatedAt()
	r.st.customers[c.ID()] = row
	return nil
}

func (r customerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.customers[id]; !ok {
		return notFound("customer not found")
	}
	for _, res := range r.st.reservations {
		if res.customerID == id {
			return fkViolation("failed to delete customer", "reservations_customer_id_fkey")
		}
	}
	delete(r.st.customers, id)
	return nil
}

type idempotencyRepo struct{ st *state }

func (r idempotencyRepo) TryInsert(_ context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, endpoint}
	if _, ok := r.st.idempotency[k]; ok {
		return false, nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, key uuid.UUID, endpoint string) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idemKey{key, endpoint}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (int64, error) {
	k := idemKey{key, endpoint}
	rec, ok := r.st.idempotency[k]
	if !ok || !rec.ExpiresAt.Before(now) {
		return 0, nil
	}
	rec.RequestHash = requestHash
	rec.Status = shared.IdempotencyStatusProcessing
	rec.ResultReservationID = nil
	rec.ExpiresAt = expiresAt
	r.st.idempotency[k] = rec
	return 1, nil
}

func (r idempotencyRepo) MarkCompleted(_ context.Context, key uuid.UUID, endpoint string, reservationID uuid.UUID) error {
	k := idemKey{key, endpoint}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultReservationID = &reservationID
	r.st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.st.idempotency {
		if rec.ExpiresAt.Before(now) {
			delete(r.st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type notificationRepo struct{ st *state }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	id := uuid.New()
	r.st.nextSeq++
	r.st.jobSeq[id] = r.st.nextSeq
	r.st.jobs[id] = shared.NotificationJob{
		ID:      id,
		Kind:    kind,
		Topic:   topic,
		Payload: slices.Clone(payload),
		RunAt:   runAt,
		Status:  shared.NotificationStatusQueued,
	}
	return nil
}

func (r notificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var due []shared.NotificationJob
	for _, job := range r.st.jobs {
		if job.Status == shared.NotificationStatusQueued && !job.RunAt.After(now) {
			due = append(due, job)
		}
	}
	r.st.sortJobs(due)
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r notificationRepo) MarkSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	job, ok := r.st.jobs[id]
	if !ok {
		return nil
	}
	job.Status = shared.NotificationStatusSent
	job.Attempts++
	job.LastError = nil
	r.st.jobs[id] = job
	return nil
}

func (r notificationRepo) MarkFailedAttempt(_ context.Context, id uuid.UUID, lastError string, nextRunAt time.Time, giveUp bool) error {
	job, ok := r.st.jobs[id]
	if !ok {
		return nil
	}
	job.Attempts++
	job.LastError = &lastError
	job.RunAt = nextRunAt
	job.Status = shared.NotificationStatusQueued
	if giveUp {
		job.Status = shared.NotificationStatusFailed
	}
	r.st.jobs[id] = job
	return nil
}
