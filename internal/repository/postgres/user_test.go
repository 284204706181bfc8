package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ipo-auth/internal/model"
)

var columns = []string{"id", "user_id", "first_name", "last_name", "email", "password_hash", "created_at"}

func sampleUser() model.User {
	return model.User{
		ID:           uuid.MustParse("6f1c2a52-0c1e-4a53-9b43-6d3e9a1f0b10"),
		UserID:       "u1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func userRow(u model.User) *pgxmock.Rows {
	return pgxmock.NewRows(columns).
		AddRow(u.ID, u.UserID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt)
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Exists(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   bool
	}{
		{
			name: "exists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("u1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "absent",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("u1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("u1").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)
			tt.setupMock(mock)

			got, err := repo.Exists(context.Background(), "u1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	u := sampleUser()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      model.User
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(getByEmailQuery)).WithArgs(u.Email).
					WillReturnRows(userRow(u))
			},
			want: u,
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(getByEmailQuery)).WithArgs(u.Email).
					WillReturnRows(pgxmock.NewRows(columns))
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)
			tt.setupMock(mock)

			got, err := repo.GetByEmail(context.Background(), u.Email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_DatabaseError(t *testing.T) {
	mock, repo := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(getByEmailQuery)).WithArgs("ada@example.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get user by email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUserID(t *testing.T) {
	u := sampleUser()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getByUserIDQuery)).WithArgs("u1").WillReturnRows(userRow(u))

		got, err := repo.GetByUserID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, u, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getByUserIDQuery)).WithArgs("u1").WillReturnRows(pgxmock.NewRows(columns))

		_, err := repo.GetByUserID(context.Background(), "u1")
		require.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	u := sampleUser()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "created",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WithArgs(u.ID, u.UserID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
					WillReturnRows(userRow(u))
			},
		},
		{
			name: "duplicate user id",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WithArgs(u.ID, u.UserID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "user_info_user_id_key"})
			},
			wantErr: model.ErrDuplicateKey,
		},
		{
			name: "other constraint",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
					WithArgs(u.ID, u.UserID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
			},
			errMsg: "failed to create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)
			tt.setupMock(mock)

			got, err := repo.Create(context.Background(), u)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrDuplicateKey)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, u, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
