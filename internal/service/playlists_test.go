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

func TestCreatePlaylist_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	st.EXPECT().SavePlaylist(gomock.Any(), gomock.Any()).Return(nil)

	playlist, err := svc.CreatePlaylist(context.Background(), ownerID, " Favorites ", " best of ")
	require.NoError(t, err)
	require.Equal(t, "Favorites", playlist.Name)
	require.Equal(t, "best of", playlist.Description)
	require.Equal(t, ownerID, playlist.OwnerID)
	require.Empty(t, playlist.VideoIDs)
}

func TestCreatePlaylist_EmptyName(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreatePlaylist(context.Background(), uuid.New(), "  ", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddVideoToPlaylist_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	videoID := uuid.New()
	playlist := &models.Playlist{ID: uuid.New(), OwnerID: ownerID}

	st.EXPECT().PlaylistByID(gomock.Any(), playlist.ID).Return(playlist, nil)
	st.EXPECT().VideoByID(gomock.Any(), videoID).
		Return(&models.Video{ID: videoID}, nil)
	st.EXPECT().AddVideoToPlaylist(gomock.Any(), playlist.ID, videoID).
		Return(&models.Playlist{ID: playlist.ID, OwnerID: ownerID, VideoIDs: []uuid.UUID{videoID}}, nil)

	got, err := svc.AddVideoToPlaylist(context.Background(), ownerID, playlist.ID, videoID)
	require.NoError(t, err)
	require.Contains(t, got.VideoIDs, videoID)
}

func TestAddVideoToPlaylist_ForeignPlaylist(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	playlist := &models.Playlist{ID: uuid.New(), OwnerID: uuid.New()}

	st.EXPECT().PlaylistByID(gomock.Any(), playlist.ID).Return(playlist, nil)

	_, err := svc.AddVideoToPlaylist(context.Background(), uuid.New(), playlist.ID, uuid.New())
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAddVideoToPlaylist_VideoNotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	videoID := uuid.New()
	playlist := &models.Playlist{ID: uuid.New(), OwnerID: ownerID}

	st.EXPECT().PlaylistByID(gomock.Any(), playlist.ID).Return(playlist, nil)
	st.EXPECT().VideoByID(gomock.Any(), videoID).Return(nil, storage.ErrNotFound)

	_, err := svc.AddVideoToPlaylist(context.Background(), ownerID, playlist.ID, videoID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveVideoFromPlaylist_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	videoID := uuid.New()
	playlist := &models.Playlist{ID: uuid.New(), OwnerID: ownerID, VideoIDs: []uuid.UUID{videoID}}

	st.EXPECT().PlaylistByID(gomock.Any(), playlist.ID).Return(playlist, nil)
	st.EXPECT().RemoveVideoFromPlaylist(gomock.Any(), playlist.ID, videoID).
		Return(&models.Playlist{ID: playlist.ID, OwnerID: ownerID, VideoIDs: []uuid.UUID{}}, nil)

	got, err := svc.RemoveVideoFromPlaylist(context.Background(), ownerID, playlist.ID, videoID)
	require.NoError(t, err)
	require.Empty(t, got.VideoIDs)
}

func TestUpdatePlaylist_EmptyName(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.UpdatePlaylist(context.Background(), uuid.New(), uuid.New(), " ", "desc")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeletePlaylist_OnlyOwner(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	playlist := &models.Playlist{ID: uuid.New(), OwnerID: uuid.New()}

	st.EXPECT().PlaylistByID(gomock.Any(), playlist.ID).Return(playlist, nil)

	err := svc.DeletePlaylist(context.Background(), uuid.New(), playlist.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPlaylistsByUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	st.EXPECT().PlaylistsByOwner(gomock.Any(), ownerID).
		Return([]models.Playlist{{ID: uuid.New(), OwnerID: ownerID}}, nil)

	items, err := svc.PlaylistsByUser(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
