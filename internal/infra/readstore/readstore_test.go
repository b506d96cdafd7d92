//go:build unit

package readstore

import (
	"context"
	"errors"
	"testing"

	"cineapp/internal/infra"
	"cineapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(ctx, sql)
	rows, _ := called.Get(0).(pgx.Rows)
	return rows, called.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql).Get(0).(pgx.Row)
}

type stubRow struct {
	err    error
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *int:
			*d = v.(int)
		}
	}
	return nil
}

func TestRoomReadStore_CapacityOf(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		row      stubRow
		want     int
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "returns stored capacity",
			row:  stubRow{values: []any{42}},
			want: 42,
		},
		{
			name:     "missing room is not found",
			row:      stubRow{err: pgx.ErrNoRows},
			wantKind: infra.KindNotFound,
		},
		{
			name:     "driver failure is a db failure",
			row:      stubRow{err: errors.New("connection reset")},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("QueryRow", mock.Anything, selectRoomCapacitySQL).Return(tt.row)

			got, err := NewRoomReadStore(db).CapacityOf(context.Background(), id)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			db.AssertExpectations(t)
		})
	}
}

func TestShowtimeReadStore_ReservationCount_MissingShowtime(t *testing.T) {
	db := new(MockDBTX)
	db.On("QueryRow", mock.Anything, countShowtimeReservationsSQL).Return(stubRow{err: pgx.ErrNoRows})

	_, err := NewShowtimeReadStore(db).ReservationCount(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestReservationReadStore_List_QueryFailure(t *testing.T) {
	db := new(MockDBTX)
	db.On("Query", mock.Anything, listReservationViewsSQL).Return(nil, errors.New("boom"))

	_, err := NewReservationReadStore(db).List(context.Background(), queries.ReservationFilter{}, nil, nil, 10)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
