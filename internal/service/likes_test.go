package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestToggleVideoLike_OnThenOff(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	videoID := uuid.New()
	video := &models.Video{ID: videoID, IsPublished: true}

	st.EXPECT().VideoByID(gomock.Any(), videoID).Return(video, nil).Times(2)
	st.EXPECT().ToggleLike(gomock.Any(), models.LikeTargetVideo, videoID, actorID).Return(true, nil)
	st.EXPECT().ToggleLike(gomock.Any(), models.LikeTargetVideo, videoID, actorID).Return(false, nil)

	liked, err := svc.ToggleVideoLike(context.Background(), actorID, videoID)
	require.NoError(t, err)
	require.True(t, liked)

	liked, err = svc.ToggleVideoLike(context.Background(), actorID, videoID)
	require.NoError(t, err)
	require.False(t, liked)
}

func TestToggleVideoLike_VideoNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	videoID := uuid.New()
	st.EXPECT().VideoByID(gomock.Any(), videoID).Return(nil, storage.ErrNotFound)

	_, err := svc.ToggleVideoLike(context.Background(), uuid.New(), videoID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleCommentLike_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	commentID := uuid.New()

	st.EXPECT().CommentByID(gomock.Any(), commentID).
		Return(&models.Comment{ID: commentID}, nil)
	st.EXPECT().ToggleLike(gomock.Any(), models.LikeTargetComment, commentID, actorID).Return(true, nil)

	liked, err := svc.ToggleCommentLike(context.Background(), actorID, commentID)
	require.NoError(t, err)
	require.True(t, liked)
}

func TestToggleTweetLike_TweetNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	tweetID := uuid.New()
	st.EXPECT().TweetByID(gomock.Any(), tweetID).Return(nil, storage.ErrNotFound)

	_, err := svc.ToggleTweetLike(context.Background(), uuid.New(), tweetID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLikedVideos_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	actorID := uuid.New()

	st.EXPECT().LikedVideos(gomock.Any(), actorID).
		Return([]models.Video{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	videos, err := svc.LikedVideos(context.Background(), actorID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
}
