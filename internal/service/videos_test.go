package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
	"github.com/stretchr/testify/require"
)

func videoUpload() *FileUpload {
	return &FileUpload{
		ContentType: "video/mp4",
		Size:        1 << 20,
		Reader:      strings.NewReader("mp4-bytes"),
	}
}

func TestCreateVideo_OK_Unpublished(t *testing.T) {
	t.Parallel()

	svc, st, media, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	media.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{Key: "videos/v.mp4", URL: "http://cdn/videos/v.mp4"}, nil)
	st.EXPECT().SaveVideo(gomock.Any(), gomock.Any()).Return(nil)

	video, err := svc.CreateVideo(context.Background(), ownerID, CreateVideoParams{
		Title:     "  My first video ",
		Duration:  12.5,
		VideoFile: videoUpload(),
	})
	require.NoError(t, err)
	require.Equal(t, "My first video", video.Title)
	require.Equal(t, ownerID, video.OwnerID)
	require.False(t, video.IsPublished)
	require.Equal(t, "http://cdn/videos/v.mp4", video.VideoURL)
}

func TestCreateVideo_MissingFile(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateVideo(context.Background(), uuid.New(), CreateVideoParams{
		Title: "no file",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateVideo_SaveFails_CleansUpMedia(t *testing.T) {
	t.Parallel()

	svc, st, media, ctrl := newSvc(t)
	defer ctrl.Finish()

	media.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{Key: "videos/v.mp4", URL: "http://cdn/videos/v.mp4"}, nil)
	st.EXPECT().SaveVideo(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	media.EXPECT().Remove(gomock.Any(), "videos/v.mp4").Return(nil)

	_, err := svc.CreateVideo(context.Background(), uuid.New(), CreateVideoParams{
		Title:     "broken",
		VideoFile: videoUpload(),
	})
	require.Error(t, err)
}

func TestListVideos_ForcesPublishedForStrangers(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	viewerID := uuid.New()
	ownerID := uuid.New()

	st.EXPECT().ListVideos(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p storage.ListVideosParams) (*models.VideoPage, error) {
			require.True(t, p.OnlyPublished)
			return &models.VideoPage{}, nil
		})

	_, err := svc.ListVideos(context.Background(), viewerID, storage.ListVideosParams{OwnerID: ownerID})
	require.NoError(t, err)
}

func TestListVideos_OwnerSeesDrafts(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	st.EXPECT().ListVideos(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p storage.ListVideosParams) (*models.VideoPage, error) {
			require.False(t, p.OnlyPublished)
			return &models.VideoPage{}, nil
		})

	_, err := svc.ListVideos(context.Background(), ownerID, storage.ListVideosParams{OwnerID: ownerID})
	require.NoError(t, err)
}

func TestVideoByID_CountsViewForStranger(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	viewerID := uuid.New()
	video := &models.Video{ID: uuid.New(), OwnerID: uuid.New(), IsPublished: true, Views: 5}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)
	st.EXPECT().IncrementViews(gomock.Any(), video.ID).Return(nil)

	got, err := svc.VideoByID(context.Background(), viewerID, video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(6), got.Views)
}

func TestVideoByID_OwnerViewNotCounted(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	video := &models.Video{ID: uuid.New(), OwnerID: ownerID, IsPublished: false, Views: 5}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)

	got, err := svc.VideoByID(context.Background(), ownerID, video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Views)
}

func TestVideoByID_DraftHiddenFromStranger(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	video := &models.Video{ID: uuid.New(), OwnerID: uuid.New(), IsPublished: false}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)

	// Черновик для постороннего неотличим от несуществующего ролика.
	_, err := svc.VideoByID(context.Background(), uuid.New(), video.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVideo_PermissionDenied(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	video := &models.Video{ID: uuid.New(), OwnerID: uuid.New()}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)

	title := "new title"
	_, err := svc.UpdateVideo(context.Background(), uuid.New(), video.ID, UpdateVideoParams{Title: &title})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateVideo_OK_ReplacesThumbnail(t *testing.T) {
	t.Parallel()

	svc, st, media, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	video := &models.Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        "old",
		ThumbnailKey: "thumbnails/old.png",
	}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)
	media.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{Key: "thumbnails/new.png", URL: "http://cdn/thumbnails/new.png"}, nil)
	st.EXPECT().UpdateVideo(gomock.Any(), gomock.Any()).Return(nil)
	media.EXPECT().Remove(gomock.Any(), "thumbnails/old.png").Return(nil)

	title := "new title"
	got, err := svc.UpdateVideo(context.Background(), ownerID, video.ID, UpdateVideoParams{
		Title:     &title,
		Thumbnail: testUpload(),
	})
	require.NoError(t, err)
	require.Equal(t, "new title", got.Title)
	require.Equal(t, "thumbnails/new.png", got.ThumbnailKey)
}

func TestTogglePublishStatus_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	video := &models.Video{ID: uuid.New(), OwnerID: ownerID, IsPublished: false}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)
	st.EXPECT().TogglePublishStatus(gomock.Any(), video.ID).
		Return(&models.Video{ID: video.ID, OwnerID: ownerID, IsPublished: true}, nil)

	got, err := svc.TogglePublishStatus(context.Background(), ownerID, video.ID)
	require.NoError(t, err)
	require.True(t, got.IsPublished)
}

func TestDeleteVideo_RemovesMedia(t *testing.T) {
	t.Parallel()

	svc, st, media, ctrl := newSvc(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	video := &models.Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		VideoKey:     "videos/v.mp4",
		ThumbnailKey: "thumbnails/t.png",
	}

	st.EXPECT().VideoByID(gomock.Any(), video.ID).Return(video, nil)
	st.EXPECT().DeleteVideo(gomock.Any(), video.ID).Return(nil)
	media.EXPECT().Remove(gomock.Any(), "videos/v.mp4").Return(nil)
	media.EXPECT().Remove(gomock.Any(), "thumbnails/t.png").Return(nil)

	require.NoError(t, svc.DeleteVideo(context.Background(), ownerID, video.ID))
}

func TestDeleteVideo_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	videoID := uuid.New()
	st.EXPECT().VideoByID(gomock.Any(), videoID).Return(nil, storage.ErrNotFound)

	err := svc.DeleteVideo(context.Background(), uuid.New(), videoID)
	require.ErrorIs(t, err, ErrNotFound)
}
