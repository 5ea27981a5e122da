package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-platform/internal/models"
	"github.com/pribylovaa/go-video-platform/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestUserByID(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		svc, m := newSvc(t)
		uid := uuid.New()

		m.users.EXPECT().
			UserByID(gomock.Any(), uid).
			Return(&models.User{ID: uid, Username: "alice"}, nil)

		got, err := svc.UserByID(context.Background(), uid)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Username)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc, m := newSvc(t)
		uid := uuid.New()

		m.users.EXPECT().UserByID(gomock.Any(), uid).Return(nil, storage.ErrNotFound)

		_, err := svc.UserByID(context.Background(), uid)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil id", func(t *testing.T) {
		t.Parallel()

		svc, _ := newSvc(t)

		_, err := svc.UserByID(context.Background(), uuid.Nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

// Замена аватара: новый объект до фиксации, удаление старого после.
func TestUpdateAvatar_SwapOrder(t *testing.T) {
	t.Parallel()

	svc, m := newSvc(t)
	uid := uuid.New()

	current := &models.User{ID: uid, AvatarKey: "avatars/old", AvatarURL: "https://cdn/avatars/old"}

	gomock.InOrder(
		m.users.EXPECT().UserByID(gomock.Any(), uid).Return(current, nil),
		m.assets.EXPECT().
			UploadAsset(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in storage.UploadAssetInput) (*models.Asset, error) {
				require.Equal(t, storage.CategoryAvatar, in.Category)
				return &models.Asset{Key: "avatars/new", URL: "https://cdn/avatars/new", Kind: models.AssetKindImage}, nil
			}),
		m.users.EXPECT().
			UpdateProfileAssets(gomock.Any(), uid, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, upd storage.ProfileAssetUpdate) (*models.User, error) {
				require.NotNil(t, upd.AvatarKey)
				require.Equal(t, "avatars/new", *upd.AvatarKey)
				require.Nil(t, upd.CoverKey)
				out := *current
				out.AvatarKey, out.AvatarURL = *upd.AvatarKey, *upd.AvatarURL
				return &out, nil
			}),
		m.assets.EXPECT().DeleteAsset(gomock.Any(), "avatars/old").Return(nil),
	)

	got, err := svc.UpdateAvatar(context.Background(), uid, *testUpload("image/png"))
	require.NoError(t, err)
	require.Equal(t, "avatars/new", got.AvatarKey)
}

// Аккаунт без обложки: пустой старый ключ не удаляется.
func TestUpdateCoverImage_NoOldKey(t *testing.T) {
	t.Parallel()

	svc, m := newSvc(t)
	uid := uuid.New()

	gomock.InOrder(
		m.users.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil),
		m.assets.EXPECT().
			UploadAsset(gomock.Any(), gomock.Any()).
			Return(&models.Asset{Key: "covers/new", URL: "https://cdn/covers/new"}, nil),
		m.users.EXPECT().
			UpdateProfileAssets(gomock.Any(), uid, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, upd storage.ProfileAssetUpdate) (*models.User, error) {
				require.NotNil(t, upd.CoverKey)
				require.Nil(t, upd.AvatarKey)
				return &models.User{ID: uid, CoverKey: *upd.CoverKey}, nil
			}),
	)

	got, err := svc.UpdateCoverImage(context.Background(), uid, *testUpload("image/jpeg"))
	require.NoError(t, err)
	require.Equal(t, "covers/new", got.CoverKey)
}

// Сбой фиксации удаляет новый объект; старый аватар не трогается.
func TestUpdateAvatar_PersistFails(t *testing.T) {
	t.Parallel()

	svc, m := newSvc(t)
	uid := uuid.New()

	gomock.InOrder(
		m.users.EXPECT().
			UserByID(gomock.Any(), uid).
			Return(&models.User{ID: uid, AvatarKey: "avatars/old"}, nil),
		m.assets.EXPECT().
			UploadAsset(gomock.Any(), gomock.Any()).
			Return(&models.Asset{Key: "avatars/new"}, nil),
		m.users.EXPECT().
			UpdateProfileAssets(gomock.Any(), uid, gomock.Any()).
			Return(nil, storage.ErrNotFound),
		m.assets.EXPECT().DeleteAsset(gomock.Any(), "avatars/new").Return(nil),
	)

	_, err := svc.UpdateAvatar(context.Background(), uid, *testUpload("image/png"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAvatar_UploadRejected(t *testing.T) {
	t.Parallel()

	svc, m := newSvc(t)
	uid := uuid.New()

	m.users.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	m.assets.EXPECT().
		UploadAsset(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrInvalidArgument)

	_, err := svc.UpdateAvatar(context.Background(), uid, *testUpload("application/pdf"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
