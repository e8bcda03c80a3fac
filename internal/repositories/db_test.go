package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/domlearn/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactor(t *testing.T) (*Transactor[*levelRepository], sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	tr := NewTransactor(db, func(q Querier) *levelRepository { return NewLevelRepository(q) })

	return tr, mock, func() { db.Close() }
}

func TestTransactor_WithinTx(t *testing.T) {
	workErr := models.NewValidationError(models.KindOrderConflict, "order taken")

	tests := []struct {
		name         string
		setupMock    func(sqlmock.Sqlmock)
		work         func(ctx context.Context, r *levelRepository) error
		expectedKind models.ErrorKind
		expectedErr  error
	}{
		{
			name: "commit on success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM levels WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
			work: func(ctx context.Context, r *levelRepository) error { return r.LockByID(ctx, 1) },
		},
		{
			name: "rollback on work error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			work:        func(ctx context.Context, r *levelRepository) error { return workErr },
			expectedErr: workErr,
		},
		{
			name: "begin failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection lost"))
			},
			work:         func(ctx context.Context, r *levelRepository) error { return nil },
			expectedKind: models.KindTransactionFailure,
		},
		{
			name: "commit failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("deadlock"))
			},
			work:         func(ctx context.Context, r *levelRepository) error { return nil },
			expectedKind: models.KindTransactionFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, mock, cleanup := setupTransactor(t)
			defer cleanup()

			tt.setupMock(mock)

			err := tr.WithinTx(context.Background(), func(r *levelRepository) error {
				return tt.work(context.Background(), r)
			})

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectedKind != "":
				assert.True(t, models.IsKind(err, tt.expectedKind), "got %v", err)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactor_WithinReadTx(t *testing.T) {
	t.Run("reads share one transaction", func(t *testing.T) {
		tr, mock, cleanup := setupTransactor(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM levels`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "number", "title", "slug"}).AddRow(1, 1, "Beginner", "beginner"))
		mock.ExpectQuery(`FROM levels`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "number", "title", "slug"}).AddRow(1, 1, "Beginner", "beginner"))
		mock.ExpectCommit()

		var counts []int
		err := tr.WithinReadTx(context.Background(), func(r *levelRepository) error {
			for i := 0; i < 2; i++ {
				levels, err := r.List(context.Background())
				if err != nil {
					return err
				}
				counts = append(counts, len(levels))
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []int{1, 1}, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("read error rolls back", func(t *testing.T) {
		tr, mock, cleanup := setupTransactor(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM levels`).WillReturnError(errors.New("database error"))
		mock.ExpectRollback()

		err := tr.WithinReadTx(context.Background(), func(r *levelRepository) error {
			_, err := r.List(context.Background())
			return err
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMapWriteError(t *testing.T) {
	dup := mapWriteError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, "create section")
	assert.True(t, models.IsKind(dup, models.KindDuplicateSlug))

	fk := mapWriteError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, "create section")
	assert.True(t, models.IsKind(fk, models.KindNotFound))

	other := mapWriteError(errors.New("boom"), "create section")
	assert.Equal(t, models.ErrorKind(""), models.KindOf(other))
	assert.Contains(t, other.Error(), "failed to create section")
}

func TestDecodeContent(t *testing.T) {
	empty, err := decodeContent(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Tests)
	assert.NotNil(t, empty.Tasks)

	content, err := decodeContent([]byte(`{"theory_html":"<p>x</p>","tests":[{"question":"q","answers":["a"]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", content.TheoryHTML)
	assert.Equal(t, models.NoCorrectAnswer, content.Tests[0].CorrectIndex)

	_, err = decodeContent([]byte(`{not json`))
	assert.Error(t, err)
}
