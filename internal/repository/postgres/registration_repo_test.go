package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventsystem/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Register(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "creates pending registration",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity", "is_public"}).AddRow(100, true))
				mock.ExpectQuery(`SELECT id, status FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", now, domain.StatusPending).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
				mock.ExpectCommit()
			},
			wantID: "reg-1",
		},
		{
			name: "reactivates cancelled registration in place",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity", "is_public"}).AddRow(100, true))
				mock.ExpectQuery(`SELECT id, status FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("reg-old", "cancelled"))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
				mock.ExpectExec(`UPDATE registrations SET status = \$2, registered_at = \$3`).
					WithArgs("reg-old", domain.StatusPending, now).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantID: "reg-old",
		},
		{
			name: "unknown event returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "private event returns ErrForbidden",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity", "is_public"}).AddRow(100, false))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name: "active registration returns ErrConflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity", "is_public"}).AddRow(100, true))
				mock.ExpectQuery(`SELECT id, status FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("reg-old", "pending"))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "full event returns ErrEventFull",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity, is_public`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity", "is_public"}).AddRow(2, true))
				mock.ExpectQuery(`SELECT id, status FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrEventFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			reg, err := repo.Register(ctx, "ev-1", "user-1", now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, reg)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, reg.ID)
				require.Equal(t, domain.StatusPending, reg.Status)
				require.Equal(t, now, reg.RegisteredAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "overwrites status regardless of current value",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET status = \$3`).
					WithArgs("ev-1", "user-1", domain.StatusCancelled).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no row returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations SET status = \$3`).
					WithArgs("ev-1", "user-1", domain.StatusCancelled).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Cancel(ctx, "ev-1", "user-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Approve(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	expectLookup := func(mock sqlmock.Sqlmock, capacity int, status string) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT event_id FROM registrations`).
			WithArgs("reg-1").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow("ev-1"))
		mock.ExpectQuery(`SELECT capacity FROM events`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(capacity))
		mock.ExpectQuery(`SELECT id, event_id, user_id, registered_at, status`).
			WithArgs("reg-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "registered_at", "status"}).
				AddRow("reg-1", "ev-1", "user-1", registeredAt, status))
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "approves pending registration",
			mock: func(mock sqlmock.Sqlmock) {
				expectLookup(mock, 100, "pending")
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))
				mock.ExpectExec(`UPDATE registrations SET status = \$2`).
					WithArgs("reg-1", domain.StatusApproved).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "active count exactly at capacity still approves",
			mock: func(mock sqlmock.Sqlmock) {
				expectLookup(mock, 50, "pending")
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))
				mock.ExpectExec(`UPDATE registrations SET status = \$2`).
					WithArgs("reg-1", domain.StatusApproved).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "active count above capacity returns ErrEventFull",
			mock: func(mock sqlmock.Sqlmock) {
				expectLookup(mock, 50, "pending")
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(51))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name: "cancelled registration returns ErrInvalidInput",
			mock: func(mock sqlmock.Sqlmock) {
				expectLookup(mock, 100, "cancelled")
				mock.ExpectRollback()
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown registration returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT event_id FROM registrations`).
					WithArgs("reg-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			reg, err := repo.Approve(ctx, "reg-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, reg)
			} else {
				require.NoError(t, err)
				require.Equal(t, domain.StatusApproved, reg.Status)
				require.Equal(t, "ev-1", reg.EventID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	registeredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations WHERE event_id`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT r.id, r.event_id, e.title, e.start_utc, r.registered_at, r.status`).
		WithArgs("ev-1", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "title", "start_utc", "registered_at", "status"}).
			AddRow("reg-1", "ev-1", "GopherCon", start, registeredAt, "approved").
			AddRow("reg-2", "ev-1", "GopherCon", start, registeredAt, "pending"))

	repo := NewRegistrationRepository(db)
	items, total, err := repo.ListByEventID(ctx, "ev-1", domain.PaginationParams{Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 42, total)
	require.Len(t, items, 2)
	require.Equal(t, "GopherCon", items[0].EventTitle)
	require.Equal(t, domain.StatusApproved, items[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
