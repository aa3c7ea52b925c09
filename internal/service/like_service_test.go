package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
	"vidtube/pkg/errors"
)

func newLikeServiceFixture(t *testing.T) (*LikeService, *fakeLikeRepo, *fakeVideoRepo, *fakeCommentRepo) {
	t.Helper()
	likes := newFakeLikeRepo()
	videos := newFakeVideoRepo()
	comments := newFakeCommentRepo()
	likes.videos = videos

	svc := NewLikeService(likes, videos, comments, testLogger())
	return svc, likes, videos, comments
}

func TestToggleVideoLike(t *testing.T) {
	svc, _, videos, _ := newLikeServiceFixture(t)
	seedVideo(t, videos, "v1", "owner-1", true)

	t.Run("missing video", func(t *testing.T) {
		_, err := svc.ToggleVideoLike(context.Background(), "u1", "ghost")
		require.Error(t, err)
		assert.Equal(t, 404, errors.From(err).StatusCode)
	})

	t.Run("toggle is an involution", func(t *testing.T) {
		liked, err := svc.ToggleVideoLike(context.Background(), "u1", "v1")
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleVideoLike(context.Background(), "u1", "v1")
		require.NoError(t, err)
		assert.False(t, liked)

		liked, err = svc.ToggleVideoLike(context.Background(), "u1", "v1")
		require.NoError(t, err)
		assert.True(t, liked)
	})
}

func TestToggleCommentLike(t *testing.T) {
	svc, _, _, comments := newLikeServiceFixture(t)
	require.NoError(t, comments.Create(context.Background(), &domain.Comment{
		ID: "c1", VideoID: "v1", OwnerID: "u1", Content: "hi",
	}))

	t.Run("missing comment", func(t *testing.T) {
		_, err := svc.ToggleCommentLike(context.Background(), "u1", "ghost")
		require.Error(t, err)
		assert.Equal(t, 404, errors.From(err).StatusCode)
	})

	t.Run("toggle flips state", func(t *testing.T) {
		liked, err := svc.ToggleCommentLike(context.Background(), "u1", "c1")
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleCommentLike(context.Background(), "u1", "c1")
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestGetLikedVideos(t *testing.T) {
	svc, _, videos, _ := newLikeServiceFixture(t)
	seedVideo(t, videos, "v1", "owner-1", true)
	seedVideo(t, videos, "v2", "owner-1", true)

	_, err := svc.ToggleVideoLike(context.Background(), "u1", "v1")
	require.NoError(t, err)
	_, err = svc.ToggleVideoLike(context.Background(), "u1", "v2")
	require.NoError(t, err)
	_, err = svc.ToggleVideoLike(context.Background(), "u1", "v2")
	require.NoError(t, err)

	liked, err := svc.GetLikedVideos(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "v1", liked[0].ID)

	liked, err = svc.GetLikedVideos(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, liked)
}
