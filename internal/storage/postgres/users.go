package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
)

// userColumns — единый список колонок таблицы users,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const userColumns = `
id, username, email, full_name, password_hash, refresh_token_hash,
avatar_key, avatar_url, cover_key, cover_url, created_at, updated_at
`

// scanUser сканирует одну строку аккаунта в доменную модель.
func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.RefreshTokenHash,
		&user.AvatarKey,
		&user.AvatarURL,
		&user.CoverKey,
		&user.CoverURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

// SaveUser создаёт новый аккаунт.
// Ошибки: storage.ErrAlreadyExists при конфликте уникальности username/email.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage/postgres/SaveUser"

	query := `
		INSERT INTO users(id, username, email, full_name, password_hash,
			avatar_key, avatar_url, cover_key, cover_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarKey,
		user.AvatarURL,
		user.CoverKey,
		user.CoverURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByID находит аккаунт по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/postgres/UserByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByLogin находит аккаунт по username либо email.
// Обе колонки CITEXT, так что сравнение регистронезависимое.
func (s *Storage) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "storage/postgres/UserByLogin"

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SetRefreshToken безусловно перезаписывает refresh-слот аккаунта.
// Логин в новом клиенте молча лишает предыдущую сессию возможности ротации.
func (s *Storage) SetRefreshToken(ctx context.Context, userID uuid.UUID, hash string) error {
	const op = "storage/postgres/SetRefreshToken"

	query := `
		UPDATE users
		SET refresh_token_hash = $2, updated_at = now()
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RotateRefreshToken атомарно заменяет содержимое слота oldHash -> newHash.
// Единственный UPDATE с условием по текущему значению сериализует
// конкурентные ротации одного аккаунта: успевает ровно одна, остальные
// получают (false, nil).
func (s *Storage) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string) (bool, error) {
	const op = "storage/postgres/RotateRefreshToken"

	query := `
		UPDATE users
		SET refresh_token_hash = $3, updated_at = now()
		WHERE id = $1 AND refresh_token_hash = $2
	`

	cmdTag, err := s.db.Exec(ctx, query, userID, oldHash, newHash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

// ClearRefreshToken обнуляет слот. Идемпотентна: повторный вызов и
// отсутствие аккаунта ошибкой не считаются.
func (s *Storage) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const op = "storage/postgres/ClearRefreshToken"

	query := `
		UPDATE users
		SET refresh_token_hash = NULL, updated_at = now()
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateProfileAssets фиксирует новые ссылки на ассеты профиля.
// Обновляются только поля с непустыми указателями; updated_at сдвигается всегда.
func (s *Storage) UpdateProfileAssets(ctx context.Context, userID uuid.UUID, upd storage.ProfileAssetUpdate) (*models.User, error) {
	const op = "storage/postgres/UpdateProfileAssets"

	sets := []string{"updated_at = now()"}
	args := []any{userID}

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("avatar_key", upd.AvatarKey)
	add("avatar_url", upd.AvatarURL)
	add("cover_key", upd.CoverKey)
	add("cover_url", upd.CoverURL)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), userColumns)

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
