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

func TestToggleSubscription_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	subscriberID := uuid.New()
	channelID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), channelID).
		Return(&models.User{ID: channelID}, nil)
	st.EXPECT().ToggleSubscription(gomock.Any(), subscriberID, channelID).Return(true, nil)

	subscribed, err := svc.ToggleSubscription(context.Background(), subscriberID, channelID)
	require.NoError(t, err)
	require.True(t, subscribed)
}

func TestToggleSubscription_SelfRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	id := uuid.New()

	_, err := svc.ToggleSubscription(context.Background(), id, id)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToggleSubscription_ChannelNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	channelID := uuid.New()
	st.EXPECT().UserByID(gomock.Any(), channelID).Return(nil, storage.ErrNotFound)

	_, err := svc.ToggleSubscription(context.Background(), uuid.New(), channelID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubscribers_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	channelID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), channelID).
		Return(&models.User{ID: channelID}, nil)
	st.EXPECT().Subscribers(gomock.Any(), channelID).
		Return([]models.ChannelInfo{{ID: uuid.New(), Username: "fan"}}, nil)

	items, err := svc.Subscribers(context.Background(), channelID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "fan", items[0].Username)
}

func TestSubscribedChannels_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	subscriberID := uuid.New()

	st.EXPECT().SubscribedChannels(gomock.Any(), subscriberID).
		Return([]models.ChannelInfo{}, nil)

	items, err := svc.SubscribedChannels(context.Background(), subscriberID)
	require.NoError(t, err)
	require.Empty(t, items)
}
