package services

import (
	"context"
	"strings"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// PlaylistUsecase 实现用户自建播放列表的生命周期用例。
type PlaylistUsecase struct {
	playlists PlaylistStore
	txManager txmanager.Manager
	log       *log.Helper
}

// NewPlaylistUsecase 构造播放列表用例实例。
func NewPlaylistUsecase(playlists PlaylistStore, tx txmanager.Manager, logger log.Logger) *PlaylistUsecase {
	return &PlaylistUsecase{
		playlists: playlists,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// CreatePlaylistInput 表示创建播放列表的输入参数。
type CreatePlaylistInput struct {
	CreatorID   uuid.UUID
	Title       string
	Description *string
	Visibility  *string
}

// CreatePlaylist 创建播放列表，可见性缺省为 private。
func (uc *PlaylistUsecase) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*vo.PlaylistInfo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.BadRequest(ReasonInvalidArgument, "playlist title must not be empty")
	}
	visibility := po.VisibilityPrivate
	if input.Visibility != nil {
		parsed, err := parseVisibility(*input.Visibility)
		if err != nil {
			return nil, errors.BadRequest(ReasonInvalidArgument, err.Error())
		}
		visibility = parsed
	}

	var created *po.Playlist
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		created, repoErr = uc.playlists.Create(txCtx, sess, repositories.CreatePlaylistInput{
			PlaylistID:  uuid.New(),
			CreatorID:   input.CreatorID,
			Title:       title,
			Description: input.Description,
			Visibility:  visibility,
		})
		return repoErr
	})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("create playlist failed: creator_id=%s err=%v", input.CreatorID, err)
		return nil, errors.InternalServer(ReasonStorageFailure, "failed to create playlist").WithCause(err)
	}

	uc.log.WithContext(ctx).Infof("CreatePlaylist: playlist_id=%s creator_id=%s", created.PlaylistID, created.CreatorID)
	return vo.NewPlaylistInfo(created), nil
}

// UpdatePlaylistInput 表示更新播放列表的可选字段，nil 字段保持原值。
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	CreatorID   uuid.UUID
	Title       *string
	Description *string
	Visibility  *string
}

// UpdatePlaylist 更新播放列表元数据。空补丁直接拒绝。
func (uc *PlaylistUsecase) UpdatePlaylist(ctx context.Context, input UpdatePlaylistInput) (*vo.PlaylistInfo, error) {
	if input.Title == nil && input.Description == nil && input.Visibility == nil {
		return nil, errors.BadRequest(ReasonInvalidArgument, "no fields to update")
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errors.BadRequest(ReasonInvalidArgument, "playlist title must not be empty")
	}
	if input.Visibility != nil {
		if _, err := parseVisibility(*input.Visibility); err != nil {
			return nil, errors.BadRequest(ReasonInvalidArgument, err.Error())
		}
	}

	var updated *po.Playlist
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		playlist, repoErr := uc.playlists.Get(txCtx, sess, input.PlaylistID)
		if repoErr != nil {
			return repoErr
		}
		if playlist.CreatorID != input.CreatorID {
			return ErrPlaylistForbidden
		}
		updated, repoErr = uc.playlists.Update(txCtx, sess, repositories.UpdatePlaylistInput{
			PlaylistID:  input.PlaylistID,
			Title:       input.Title,
			Description: input.Description,
			Visibility:  input.Visibility,
		})
		return repoErr
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlaylistNotFound):
			return nil, ErrPlaylistNotFound
		case errors.Is(err, ErrPlaylistForbidden):
			return nil, ErrPlaylistForbidden
		default:
			uc.log.WithContext(ctx).Errorf("update playlist failed: playlist_id=%s err=%v", input.PlaylistID, err)
			return nil, errors.InternalServer(ReasonStorageFailure, "failed to update playlist").WithCause(err)
		}
	}

	uc.log.WithContext(ctx).Infof("UpdatePlaylist: playlist_id=%s", updated.PlaylistID)
	return vo.NewPlaylistInfo(updated), nil
}

// DeletePlaylist 删除播放列表，成员行级联删除。
func (uc *PlaylistUsecase) DeletePlaylist(ctx context.Context, creatorID, playlistID uuid.UUID) error {
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		playlist, repoErr := uc.playlists.Get(txCtx, sess, playlistID)
		if repoErr != nil {
			return repoErr
		}
		if playlist.CreatorID != creatorID {
			return ErrPlaylistForbidden
		}
		return uc.playlists.Delete(txCtx, sess, playlistID)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlaylistNotFound):
			return ErrPlaylistNotFound
		case errors.Is(err, ErrPlaylistForbidden):
			return ErrPlaylistForbidden
		default:
			uc.log.WithContext(ctx).Errorf("delete playlist failed: playlist_id=%s err=%v", playlistID, err)
			return errors.InternalServer(ReasonStorageFailure, "failed to delete playlist").WithCause(err)
		}
	}

	uc.log.WithContext(ctx).Infof("DeletePlaylist: playlist_id=%s", playlistID)
	return nil
}

func parseVisibility(raw string) (po.VideoVisibility, error) {
	val := po.VideoVisibility(strings.TrimSpace(strings.ToLower(raw)))
	switch val {
	case po.VisibilityPublic, po.VisibilityUnlisted, po.VisibilityPrivate:
		return val, nil
	default:
		return "", errors.BadRequest(ReasonInvalidArgument, "invalid visibility: "+raw)
	}
}
