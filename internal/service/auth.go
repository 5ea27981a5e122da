package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/pkg/log"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUserInput — параметры регистрации аккаунта.
// Avatar обязателен, Cover опционален (nil — без обложки).
type RegisterUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *FileUpload
	Cover    *FileUpload
}

// RegisterUser регистрирует новый аккаунт.
//
// Процесс:
//  1. валидация полей, формата email и политики пароля;
//  2. загрузка аватара (и обложки, если передана) и фиксация записи
//     через координатор: сбой вставки компенсируется удалением загруженного;
//  3. выпуск пары токенов и запись refresh-слота.
//
// Ошибки: ErrInvalidArgument/ErrInvalidEmail/ErrWeakPassword/ErrEmptyPassword,
// ErrAlreadyExists (username/email заняты), ErrAssetUploadFailed,
// ErrPersistFailed, ErrInternal.
func (s *Service) RegisterUser(ctx context.Context, input RegisterUserInput) (*models.User, *models.TokenPair, error) {
	const op = "service/auth/RegisterUser"

	lg := log.From(ctx).With("op", op)

	username := strings.TrimSpace(input.Username)
	if username == "" {
		lg.Warn("invalid argument: empty username")

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	normEmail, err := validateEmail(input.Email)
	if err != nil {
		lg.Warn("invalid email")

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(input.Password); err != nil {
		lg.Warn("password rejected")

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if input.Avatar == nil {
		lg.Warn("invalid argument: avatar is required")

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		lg.Error("password hash failed", "err", err)

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.ToLower(username),
		Email:        normEmail,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	steps := []uploadStep{
		{
			category: storage.CategoryAvatar,
			file:     *input.Avatar,
			assign: func(a models.Asset) {
				user.AvatarKey, user.AvatarURL = a.Key, a.URL
			},
		},
	}

	if input.Cover != nil {
		steps = append(steps, uploadStep{
			category: storage.CategoryCover,
			file:     *input.Cover,
			assign: func(a models.Asset) {
				user.CoverKey, user.CoverURL = a.Key, a.URL
			},
		})
	}

	err = s.createWithAssets(ctx, user.ID, steps, func(ctx context.Context) error {
		return s.users.SaveUser(ctx, user)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

// LoginUser выполняет вход по username или email + пароль.
// Успешный вход безусловно перезаписывает refresh-слот: предыдущая
// сессия молча теряет возможность ротации.
func (s *Service) LoginUser(ctx context.Context, login, password string) (*models.User, *models.TokenPair, error) {
	const op = "service/auth/LoginUser"

	lg := log.From(ctx).With("op", op)

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		lg.Warn("empty login or password")

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.UserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("login not found")

			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("storage error on UserByLogin", "err", err)

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("password mismatch", "user_id", user.ID.String())

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

// RefreshTokens ротирует пару по предъявленному refresh-токену.
//
// Действительность определяют две независимые проверки: структурная
// (подпись, срок) и совпадение sha256-хэша со слотом аккаунта. Замена
// слота выполняется CAS-апдейтом old -> new: из конкурентных ротаций
// одного аккаунта выигрывает ровно одна, проигравший и любой повтор
// использованного токена получают ErrStaleToken.
func (s *Service) RefreshTokens(ctx context.Context, presented string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service/auth/RefreshTokens"

	lg := log.From(ctx).With("op", op)

	if strings.TrimSpace(presented) == "" {
		lg.Warn("missing refresh token")

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	userID, err := s.validateRefreshToken(presented)
	if err != nil {
		lg.Warn("refresh token rejected", "err", err)

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(userID, now)
	if err != nil {
		lg.Error("access token sign failed", "err", err)

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	refreshToken, err := s.generateRefreshToken(userID, now)
	if err != nil {
		lg.Error("refresh token sign failed", "err", err)

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	rotated, err := s.users.RotateRefreshToken(ctx, userID, hashToken(presented), hashToken(refreshToken))
	if err != nil {
		lg.Error("storage error on RotateRefreshToken", "err", err)

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !rotated {
		lg.Warn("stale refresh token", "user_id", userID.String())

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrStaleToken)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.Auth.AccessTokenTTL),
	}, userID, nil
}

// Logout обнуляет refresh-слот аккаунта. Идемпотентен: повторный выход
// и выход без активной сессии завершаются успехом. Выпущенные
// access-токены продолжают действовать до истечения.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	const op = "service/auth/Logout"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		lg.Error("storage error on ClearRefreshToken", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// VerifyAccess проверяет access-токен и возвращает userID.
// Хранилище не опрашивается: access stateless и не отзывается до exp.
func (s *Service) VerifyAccess(ctx context.Context, raw string) (uuid.UUID, error) {
	const op = "service/auth/VerifyAccess"

	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	userID, err := s.validateAccessToken(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

// issueTokenPair выпускает новую пару и безусловно перезаписывает
// refresh-слот аккаунта (максимум одна активная refresh-учётка).
func (s *Service) issueTokenPair(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	const op = "service/auth/issueTokenPair"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(userID, now)
	if err != nil {
		lg.Error("access token sign failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	refreshToken, err := s.generateRefreshToken(userID, now)
	if err != nil {
		lg.Error("refresh token sign failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.users.SetRefreshToken(ctx, userID, hashToken(refreshToken)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("account disappeared on token issue")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on SetRefreshToken", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.Auth.AccessTokenTTL),
	}, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная и цифра.
func validatePassword(pw string) error {
	if len(pw) == 0 {
		return ErrEmptyPassword
	}

	if len([]rune(pw)) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !(hasLower && hasUpper && hasDigit) {
		return ErrWeakPassword
	}

	return nil
}
