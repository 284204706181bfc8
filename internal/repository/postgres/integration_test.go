//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/ipo-auth/internal/model"
	repo "github.com/dtroode/ipo-auth/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "ipo_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/ipo_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(userID, email string) model.User {
	return model.User{
		ID:           uuid.New(),
		UserID:       userID,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestUserRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.Ping(ctx))

	ur := repo.NewUserRepository(conn)
	u := newUser("lifecycle", "lifecycle@example.com")

	exists, err := ur.Exists(ctx, u.UserID)
	require.NoError(t, err)
	assert.False(t, exists)

	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, saved.ID)

	exists, err = ur.Exists(ctx, u.UserID)
	require.NoError(t, err)
	assert.True(t, exists)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, byEmail.UserID)

	byUserID, err := ur.GetByUserID(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byUserID.Email)

	_, err = ur.Create(ctx, newUser(u.UserID, "other@example.com"))
	require.ErrorIs(t, err, model.ErrDuplicateKey)

	_, err = ur.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dups    int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ur.Create(ctx, newUser("racer", "racer@example.com"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, model.ErrDuplicateKey) {
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, dups)
}
