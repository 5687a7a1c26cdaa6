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

func TestCreateTweet_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).Return(nil)

	tweet, err := svc.CreateTweet(context.Background(), ownerID, "  hello world  ")
	require.NoError(t, err)
	require.Equal(t, "hello world", tweet.Content)
	require.Equal(t, ownerID, tweet.OwnerID)
}

func TestCreateTweet_EmptyContent(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateTweet(context.Background(), uuid.New(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTweetsByUser_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	st.EXPECT().UserByID(gomock.Any(), ownerID).Return(nil, storage.ErrNotFound)

	_, err := svc.TweetsByUser(context.Background(), ownerID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTweetsByUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), ownerID).
		Return(&models.User{ID: ownerID, Username: "creator"}, nil)
	st.EXPECT().TweetsByOwner(gomock.Any(), ownerID).
		Return([]models.TweetWithOwner{
			{
				Tweet: models.Tweet{ID: uuid.New(), OwnerID: ownerID, Content: "hi"},
				Owner: models.ChannelInfo{ID: ownerID, Username: "creator"},
			},
		}, nil)

	items, err := svc.TweetsByUser(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "creator", items[0].Owner.Username)
}

func TestUpdateTweet_OnlyAuthor(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	tweet := &models.Tweet{ID: uuid.New(), OwnerID: uuid.New()}

	st.EXPECT().TweetByID(gomock.Any(), tweet.ID).Return(tweet, nil)

	_, err := svc.UpdateTweet(context.Background(), uuid.New(), tweet.ID, "edited")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteTweet_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	tweet := &models.Tweet{ID: uuid.New(), OwnerID: ownerID}

	st.EXPECT().TweetByID(gomock.Any(), tweet.ID).Return(tweet, nil)
	st.EXPECT().DeleteTweet(gomock.Any(), tweet.ID).Return(nil)

	require.NoError(t, svc.DeleteTweet(context.Background(), ownerID, tweet.ID))
}
