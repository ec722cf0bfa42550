package postgres

import (
	"context"
	"testing"

	"eventsystem/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		category *domain.Category
		mock     func(mock sqlmock.Sqlmock)
		wantID   string
		wantErr  error
	}{
		{
			name:     "success",
			category: &domain.Category{Name: "Tech"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO categories \(name\)`).
					WithArgs("Tech").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-1"))
			},
			wantID: "cat-1",
		},
		{
			name:     "duplicate name returns ErrConflict",
			category: &domain.Category{Name: "Tech"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO categories \(name\)`).
					WithArgs("Tech").
					WillReturnError(&pq.Error{Code: pqUniqueViolation})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCategoryRepository(db)
			err = repo.Create(ctx, tt.category)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, tt.category.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCategoryRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		category *domain.Category
		mock     func(mock sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "rename succeeds",
			category: &domain.Category{ID: "cat-1", Name: "Technology"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE categories SET name`).
					WithArgs("cat-1", "Technology").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "rename to its own current name succeeds",
			category: &domain.Category{ID: "cat-1", Name: "Tech"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE categories SET name`).
					WithArgs("cat-1", "Tech").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "name taken by another category returns ErrConflict",
			category: &domain.Category{ID: "cat-1", Name: "Music"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE categories SET name`).
					WithArgs("cat-1", "Music").
					WillReturnError(&pq.Error{Code: pqUniqueViolation})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:     "unknown id returns ErrNotFound",
			category: &domain.Category{ID: "cat-missing", Name: "Tech"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE categories SET name`).
					WithArgs("cat-missing", "Tech").
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
			repo := NewCategoryRepository(db)
			err = repo.Update(ctx, tt.category)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCategoryRepository_List(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM categories ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("cat-2", "Music").
			AddRow("cat-1", "Tech"))

	repo := NewCategoryRepository(db)
	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Music", categories[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
