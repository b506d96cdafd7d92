//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infradb "cineapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestMovie(t *testing.T, conn infradb.DBTX, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := conn.Exec(context.Background(),
		"INSERT INTO movies (id, title, genre) VALUES ($1, $2, 'Drama')", id, title)
	require.NoError(t, err)
	return id
}

func CreateTestRoom(t *testing.T, conn infradb.DBTX, name string, capacity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := conn.Exec(context.Background(),
		"INSERT INTO rooms (id, name, capacity) VALUES ($1, $2, $3)", id, name, capacity)
	require.NoError(t, err)
	return id
}

func CreateTestShowtime(t *testing.T, conn infradb.DBTX, movieID, roomID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	startsAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)
	_, err := conn.Exec(context.Background(),
		"INSERT INTO showtimes (id, movie_id, room_id, starts_at) VALUES ($1, $2, $3, $4)",
		id, movieID, roomID, startsAt)
	require.NoError(t, err)
	return id
}

func CreateTestCustomer(t *testing.T, conn infradb.DBTX, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := conn.Exec(context.Background(),
		"INSERT INTO customers (id, name, email) VALUES ($1, 'Test Customer', $2)", id, email)
	require.NoError(t, err)
	return id
}

// CreateTestReservation writes a ledger row directly. It does not touch room
// capacity, so callers must debit the room themselves when that matters.
func CreateTestReservation(t *testing.T, conn infradb.DBTX, showtimeID, customerID uuid.UUID, seats int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := conn.Exec(context.Background(),
		"INSERT INTO reservations (id, showtime_id, customer_id, seat_count) VALUES ($1, $2, $3, $4)",
		id, showtimeID, customerID, seats)
	require.NoError(t, err)
	return id
}

func RoomCapacity(t *testing.T, conn infradb.DBTX, roomID uuid.UUID) int {
	t.Helper()

	var capacity int
	err := conn.QueryRow(context.Background(), "SELECT capacity FROM rooms WHERE id = $1", roomID).Scan(&capacity)
	require.NoError(t, err)
	return capacity
}

func ReservationSeats(t *testing.T, conn infradb.DBTX, reservationID uuid.UUID) (showtimeID uuid.UUID, seats int) {
	t.Helper()

	err := conn.QueryRow(context.Background(),
		"SELECT showtime_id, seat_count FROM reservations WHERE id = $1", reservationID).Scan(&showtimeID, &seats)
	require.NoError(t, err)
	return showtimeID, seats
}

func CountRows(t *testing.T, conn infradb.DBTX, table string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
