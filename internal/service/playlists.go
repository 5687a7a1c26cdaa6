package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-video-hosting/internal/models"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// CreatePlaylist создаёт плейлист.
func (s *Service) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error) {
	const op = "service.playlists.CreatePlaylist"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: empty name: %w", op, ErrInvalidArgument)
	}

	playlist := &models.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		VideoIDs:    []uuid.UUID{},
	}

	if err := s.storage.SavePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// PlaylistByID возвращает плейлист по ID.
func (s *Service) PlaylistByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	const op = "service.playlists.PlaylistByID"

	playlist, err := s.storage.PlaylistByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// PlaylistsByUser возвращает плейлисты пользователя.
func (s *Service) PlaylistsByUser(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	const op = "service.playlists.PlaylistsByUser"

	items, err := s.storage.PlaylistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdatePlaylist обновляет название и описание плейлиста. Только для владельца.
func (s *Service) UpdatePlaylist(ctx context.Context, actorID, playlistID uuid.UUID, name, description string) (*models.Playlist, error) {
	const op = "service.playlists.UpdatePlaylist"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: empty name: %w", op, ErrInvalidArgument)
	}

	if err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	playlist, err := s.storage.UpdatePlaylistInfo(ctx, playlistID, name, strings.TrimSpace(description))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// AddVideoToPlaylist добавляет существующее видео в плейлист.
// Только для владельца плейлиста.
func (s *Service) AddVideoToPlaylist(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	const op = "service.playlists.AddVideoToPlaylist"

	if err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.VideoByID(ctx, videoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: video: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	playlist, err := s.storage.AddVideoToPlaylist(ctx, playlistID, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// RemoveVideoFromPlaylist убирает видео из плейлиста. Только для владельца.
func (s *Service) RemoveVideoFromPlaylist(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	const op = "service.playlists.RemoveVideoFromPlaylist"

	if err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	playlist, err := s.storage.RemoveVideoFromPlaylist(ctx, playlistID, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return playlist, nil
}

// DeletePlaylist удаляет плейлист. Только для владельца.
func (s *Service) DeletePlaylist(ctx context.Context, actorID, playlistID uuid.UUID) error {
	const op = "service.playlists.DeletePlaylist"

	if err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeletePlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ownedPlaylist проверяет, что плейлист принадлежит actorID.
func (s *Service) ownedPlaylist(ctx context.Context, actorID, playlistID uuid.UUID) error {
	playlist, err := s.storage.PlaylistByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}

		return err
	}

	if playlist.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return nil
}
