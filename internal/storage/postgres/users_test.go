package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты пакета postgres (репозиторий users.go):
// - поднимают реальный PostgreSQL через testcontainers-go (postgres:16-alpine);
// - применяют миграцию из ./migrations;
// - проверяют CRUD аккаунтов, CITEXT-уникальность username/email
//   и семантику refresh-слота (Set/Rotate/Clear).
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — корень репозитория относительно текущего файла,
// чтобы найти ./migrations независимо от рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres поднимает временный PostgreSQL, применяет миграцию users
// и возвращает инициализированное хранилище с функцией очистки.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "000001_init_users.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func newTestUser(username, email string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "bcrypt-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestIntegration_SaveUser_And_Lookups_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := newTestUser("alice", "alice@example.com")

	require.NoError(t, st.SaveUser(ctx, u))

	gotByID, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, gotByID.ID)
	require.Equal(t, "alice", gotByID.Username)
	require.Nil(t, gotByID.RefreshTokenHash)
	require.WithinDuration(t, u.CreatedAt, gotByID.CreatedAt, time.Second)

	// Поиск по username без учёта регистра (CITEXT).
	byUsername, err := st.UserByLogin(ctx, "ALICE")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	// Поиск по email без учёта регистра.
	byEmail, err := st.UserByLogin(ctx, "Alice@Example.Com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestIntegration_SaveUser_UniqueViolations(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveUser(ctx, newTestUser("bob", "bob@example.com")))

	// Тот же username в другом регистре.
	err := st.SaveUser(ctx, newTestUser("BOB", "other@example.com"))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Тот же email в другом регистре.
	err = st.SaveUser(ctx, newTestUser("carol", "Bob@Example.Com"))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_Lookups_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.UserByLogin(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Семантика refresh-слота: Set перезаписывает безусловно, Rotate — только
// при совпадении старого хэша, Clear обнуляет и идемпотентен.
func TestIntegration_RefreshSlot_Lifecycle(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := newTestUser("dave", "dave@example.com")
	require.NoError(t, st.SaveUser(ctx, u))

	// Логин: безусловная запись слота.
	require.NoError(t, st.SetRefreshToken(ctx, u.ID, "hash-1"))

	got, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshTokenHash)
	require.Equal(t, "hash-1", *got.RefreshTokenHash)

	// Повторный логин молча вытесняет предыдущую сессию.
	require.NoError(t, st.SetRefreshToken(ctx, u.ID, "hash-2"))

	// Ротация по вытесненному хэшу проигрывает.
	rotated, err := st.RotateRefreshToken(ctx, u.ID, "hash-1", "hash-3")
	require.NoError(t, err)
	require.False(t, rotated)

	// Ротация по актуальному хэшу выигрывает ровно один раз.
	rotated, err = st.RotateRefreshToken(ctx, u.ID, "hash-2", "hash-3")
	require.NoError(t, err)
	require.True(t, rotated)

	// Повтор использованного токена.
	rotated, err = st.RotateRefreshToken(ctx, u.ID, "hash-2", "hash-4")
	require.NoError(t, err)
	require.False(t, rotated)

	got, err = st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshTokenHash)
	require.Equal(t, "hash-3", *got.RefreshTokenHash)

	// Logout: слот обнулён, повторный вызов — тоже успех.
	require.NoError(t, st.ClearRefreshToken(ctx, u.ID))
	require.NoError(t, st.ClearRefreshToken(ctx, u.ID))

	got, err = st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.RefreshTokenHash)

	// После logout ротация любого хэша невозможна.
	rotated, err = st.RotateRefreshToken(ctx, u.ID, "hash-3", "hash-5")
	require.NoError(t, err)
	require.False(t, rotated)
}

func TestIntegration_RefreshSlot_MissingAccount(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	err := st.SetRefreshToken(ctx, uuid.New(), "hash")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Rotate по отсутствующему аккаунту — просто проигрыш CAS, не ошибка.
	rotated, err := st.RotateRefreshToken(ctx, uuid.New(), "a", "b")
	require.NoError(t, err)
	require.False(t, rotated)

	// Clear идемпотентен и для отсутствующего аккаунта.
	require.NoError(t, st.ClearRefreshToken(ctx, uuid.New()))
}

func TestIntegration_UpdateProfileAssets(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := newTestUser("erin", "erin@example.com")
	require.NoError(t, st.SaveUser(ctx, u))

	avatarKey, avatarURL := "avatars/erin/a1.png", "https://cdn/avatars/erin/a1.png"
	got, err := st.UpdateProfileAssets(ctx, u.ID, storage.ProfileAssetUpdate{
		AvatarKey: &avatarKey,
		AvatarURL: &avatarURL,
	})
	require.NoError(t, err)
	require.Equal(t, avatarKey, got.AvatarKey)
	require.Equal(t, avatarURL, got.AvatarURL)
	// Обложка не затронута частичным обновлением.
	require.Equal(t, "", got.CoverKey)

	coverKey, coverURL := "covers/erin/c1.png", "https://cdn/covers/erin/c1.png"
	got, err = st.UpdateProfileAssets(ctx, u.ID, storage.ProfileAssetUpdate{
		CoverKey: &coverKey,
		CoverURL: &coverURL,
	})
	require.NoError(t, err)
	require.Equal(t, avatarKey, got.AvatarKey)
	require.Equal(t, coverKey, got.CoverKey)

	_, err = st.UpdateProfileAssets(ctx, uuid.New(), storage.ProfileAssetUpdate{AvatarKey: &avatarKey, AvatarURL: &avatarURL})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
