package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
	"vidtube/internal/service/auth"
	"vidtube/pkg/errors"
)

func newUserServiceFixture() (*UserService, *fakeUserRepo, *fakeSubscriptionRepo, *fakeSessionStore, *fakeMediaStorage) {
	users := newFakeUserRepo()
	subs := newFakeSubscriptionRepo()
	sessions := newFakeSessionStore()
	storage := &fakeMediaStorage{}
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	svc := NewUserService(users, subs, sessions, storage, tokens, testLogger())
	return svc, users, subs, sessions, storage
}

func registerForm(avatar bool) *domain.RegisterRequest {
	req := &domain.RegisterRequest{
		FullName: "Test User",
		Username: "TestUser",
		Email:    "test@example.com",
		Password: "secret123",
	}
	if avatar {
		req.Avatar = &domain.FileUpload{
			Reader:      strings.NewReader("img"),
			Size:        3,
			Filename:    "avatar.png",
			ContentType: "image/png",
		}
	}
	return req
}

func TestRegister(t *testing.T) {
	t.Run("missing avatar", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceFixture()

		_, err := svc.Register(context.Background(), registerForm(false))

		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "Please upload avatar", appErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceFixture()

		req := registerForm(true)
		req.Email = ""
		_, err := svc.Register(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, errors.From(err).StatusCode)
	})

	t.Run("success lowercases username and uploads avatar", func(t *testing.T) {
		svc, users, _, _, storage := newUserServiceFixture()

		user, err := svc.Register(context.Background(), registerForm(true))

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.Contains(t, user.AvatarURL, "avatars/")
		assert.Len(t, storage.uploads, 1)
		assert.NotNil(t, users.users[user.ID])
	})

	t.Run("duplicate yields conflict", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceFixture()

		_, err := svc.Register(context.Background(), registerForm(true))
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), registerForm(true))
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 409, appErr.StatusCode)
		assert.Equal(t, "User already exists", appErr.Message)
	})

	t.Run("upload failure is internal, user not created", func(t *testing.T) {
		svc, users, _, _, storage := newUserServiceFixture()
		storage.failUpload = true

		_, err := svc.Register(context.Background(), registerForm(true))

		require.Error(t, err)
		assert.Equal(t, 500, errors.From(err).StatusCode)
		assert.Empty(t, users.users)
	})
}

func TestLogin(t *testing.T) {
	svc, _, _, sessions, _ := newUserServiceFixture()

	_, err := svc.Register(context.Background(), registerForm(true))
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{
			Username: "nobody", Password: "secret123",
		})
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Equal(t, "User does not exist", appErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &domain.LoginRequest{
			Username: "testuser", Password: "nope",
		})
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 401, appErr.StatusCode)
		assert.Equal(t, "Wrong password", appErr.Message)
	})

	t.Run("success stores session and returns tokens", func(t *testing.T) {
		result, err := svc.Login(context.Background(), &domain.LoginRequest{
			Email: "test@example.com", Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, auth.HashToken(result.RefreshToken), sessions.digests[result.User.ID])
	})
}

func TestRefresh(t *testing.T) {
	svc, _, _, sessions, _ := newUserServiceFixture()

	_, err := svc.Register(context.Background(), registerForm(true))
	require.NoError(t, err)
	result, err := svc.Login(context.Background(), &domain.LoginRequest{
		Username: "testuser", Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("valid token rotates pair", func(t *testing.T) {
		pair, err := svc.Refresh(context.Background(), result.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, auth.HashToken(pair.RefreshToken), sessions.digests[result.User.ID])
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, 401, errors.From(err).StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not-a-jwt")
		require.Error(t, err)
		assert.Equal(t, 401, errors.From(err).StatusCode)
	})

	t.Run("mismatch against stored digest", func(t *testing.T) {
		sessions.digests[result.User.ID] = "something-else"

		_, err := svc.Refresh(context.Background(), result.RefreshToken)
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 401, appErr.StatusCode)
		assert.Equal(t, "Refresh token is expired or used", appErr.Message)
	})

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, svc.Logout(context.Background(), result.User.ID))

		_, err := svc.Refresh(context.Background(), result.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, 401, errors.From(err).StatusCode)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _, _ := newUserServiceFixture()

	user, err := svc.Register(context.Background(), registerForm(true))
	require.NoError(t, err)

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), user.ID, &domain.ChangePasswordRequest{
			OldPassword: "nope", NewPassword: "newsecret",
		})
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "Password is invalid", appErr.Message)
	})

	t.Run("success allows login with new password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), user.ID, &domain.ChangePasswordRequest{
			OldPassword: "secret123", NewPassword: "newsecret",
		})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &domain.LoginRequest{
			Username: "testuser", Password: "newsecret",
		})
		assert.NoError(t, err)
	})
}

func TestGetChannelProfile(t *testing.T) {
	svc, users, subs, _, _ := newUserServiceFixture()

	channel := &domain.User{ID: "channel-1", Username: "channel", Email: "c@example.com"}
	viewer := &domain.User{ID: "viewer-1", Username: "viewer", Email: "v@example.com"}
	other := &domain.User{ID: "other-1", Username: "other", Email: "o@example.com"}
	for _, u := range []*domain.User{channel, viewer, other} {
		require.NoError(t, users.Create(context.Background(), u))
	}

	_, err := subs.Toggle(context.Background(), viewer.ID, channel.ID)
	require.NoError(t, err)
	_, err = subs.Toggle(context.Background(), other.ID, channel.ID)
	require.NoError(t, err)
	_, err = subs.Toggle(context.Background(), channel.ID, other.ID)
	require.NoError(t, err)

	t.Run("blank username", func(t *testing.T) {
		_, err := svc.GetChannelProfile(context.Background(), "  ", viewer.ID)
		require.Error(t, err)
		assert.Equal(t, 400, errors.From(err).StatusCode)
	})

	t.Run("unknown channel", func(t *testing.T) {
		_, err := svc.GetChannelProfile(context.Background(), "ghost", viewer.ID)
		require.Error(t, err)
		appErr := errors.From(err)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Equal(t, "Channel does not exist", appErr.Message)
	})

	t.Run("aggregates relative to viewer", func(t *testing.T) {
		profile, err := svc.GetChannelProfile(context.Background(), "Channel", viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), profile.SubscribersCount)
		assert.Equal(t, int64(1), profile.SubscribedToCount)
		assert.True(t, profile.IsSubscribed)

		profile, err = svc.GetChannelProfile(context.Background(), "channel", other.ID)
		require.NoError(t, err)
		assert.True(t, profile.IsSubscribed)

		profile, err = svc.GetChannelProfile(context.Background(), "channel", channel.ID)
		require.NoError(t, err)
		assert.False(t, profile.IsSubscribed)
	})
}
