package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoReader 定义服务层读取视频投影所需的接口。
type VideoReader interface {
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
}

// PlaylistStore 定义用户自建播放列表的持久化接口。
type PlaylistStore interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreatePlaylistInput) (*po.Playlist, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdatePlaylistInput) (*po.Playlist, error)
	Delete(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error
	Get(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error)
	ListByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, limit, offset int32) ([]*po.Playlist, error)
	CountByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error)
	AddItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistItem, error)
	RemoveItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) error
	AdjustItemsCount(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, delta int64) (*po.Playlist, error)
	HasItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (bool, error)
	ListItems(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, limit, offset int32) ([]repositories.VideoWithCounts, error)
	CountItems(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (int64, error)
}

// CollectionKey 标识一次成员变更的目标集合：
// 特殊集合使用 LL（liked）/DL（disliked）/WL（watch later）短码，
// 用户自建播放列表使用其 UUID。
type CollectionKey struct {
	Special    po.SpecialPlaylistKind
	PlaylistID *uuid.UUID
}

// ParseCollectionKey 解析集合标识。非短码且非合法 UUID 时返回错误。
func ParseCollectionKey(raw string) (CollectionKey, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LL":
		return CollectionKey{Special: po.SpecialPlaylistLiked}, nil
	case "DL":
		return CollectionKey{Special: po.SpecialPlaylistDisliked}, nil
	case "WL":
		return CollectionKey{Special: po.SpecialPlaylistWatchLater}, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return CollectionKey{}, fmt.Errorf("invalid collection key %q", raw)
	}
	return CollectionKey{PlaylistID: &id}, nil
}

// IsSpecial 返回该集合是否为系统托管的特殊播放列表。
func (k CollectionKey) IsSpecial() bool {
	return k.PlaylistID == nil
}

// LibraryUsecase 实现集合成员变更用例：向播放列表（普通或特殊）
// 添加/移除视频。LL/DL 集合的变更委托给投票状态机，保证互斥与
// 计数增量的原子性。
type LibraryUsecase struct {
	videos    VideoReader
	playlists PlaylistStore
	specials  SpecialPlaylistStore
	machine   *voteMachine
	txManager txmanager.Manager
	log       *log.Helper
}

// NewLibraryUsecase 构造集合用例实例。
func NewLibraryUsecase(
	videos VideoReader,
	playlists PlaylistStore,
	specials SpecialPlaylistStore,
	metrics VideoMetricsStore,
	tx txmanager.Manager,
	logger log.Logger,
) *LibraryUsecase {
	return &LibraryUsecase{
		videos:    videos,
		playlists: playlists,
		specials:  specials,
		machine:   &voteMachine{specials: specials, metrics: metrics},
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// AddToCollection 将视频加入集合，并在同一事务内递增 items_count。
// 目标为 LL/DL 时等价于设置相应投票状态。
func (uc *LibraryUsecase) AddToCollection(ctx context.Context, userID uuid.UUID, key CollectionKey, videoID uuid.UUID) (*vo.PlaylistInfo, error) {
	var info *vo.PlaylistInfo
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := uc.videos.Get(txCtx, sess, videoID)
		if err != nil {
			return err
		}
		if !video.Registered() {
			return repositories.ErrVideoNotFound
		}

		if !key.IsSpecial() {
			playlist, err := uc.playlists.Get(txCtx, sess, *key.PlaylistID)
			if err != nil {
				return err
			}
			if playlist.CreatorID != userID {
				return ErrPlaylistForbidden
			}
			if _, err := uc.playlists.AddItem(txCtx, sess, playlist.PlaylistID, videoID); err != nil {
				return err
			}
			updated, err := uc.playlists.AdjustItemsCount(txCtx, sess, playlist.PlaylistID, 1)
			if err != nil {
				return err
			}
			info = vo.NewPlaylistInfo(updated)
			return nil
		}

		switch key.Special {
		case po.SpecialPlaylistLiked:
			if _, err := uc.machine.apply(txCtx, sess, userID, videoID, po.VoteLiked); err != nil {
				return err
			}
		case po.SpecialPlaylistDisliked:
			if _, err := uc.machine.apply(txCtx, sess, userID, videoID, po.VoteDisliked); err != nil {
				return err
			}
		default:
			if err := uc.specials.Ensure(txCtx, sess, userID, key.Special); err != nil {
				return err
			}
			if _, err := uc.specials.AddItem(txCtx, sess, userID, key.Special, videoID); err != nil {
				return err
			}
			if _, err := uc.specials.AdjustItemsCount(txCtx, sess, userID, key.Special, 1); err != nil {
				return err
			}
		}

		special, err := uc.specials.Get(txCtx, sess, userID, key.Special)
		if err != nil {
			return err
		}
		info = vo.NewSpecialPlaylistInfo(special)
		return nil
	})
	if err != nil {
		return nil, uc.mapMembershipErr(ctx, err, "add to collection", videoID)
	}

	uc.log.WithContext(ctx).Infof("AddToCollection: user_id=%s video_id=%s kind=%s", userID, videoID, info.Kind)
	return info, nil
}

// RemoveFromCollection 将视频移出集合，并在同一事务内递减 items_count。
func (uc *LibraryUsecase) RemoveFromCollection(ctx context.Context, userID uuid.UUID, key CollectionKey, videoID uuid.UUID) (*vo.PlaylistInfo, error) {
	var info *vo.PlaylistInfo
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if !key.IsSpecial() {
			playlist, err := uc.playlists.Get(txCtx, sess, *key.PlaylistID)
			if err != nil {
				return err
			}
			if playlist.CreatorID != userID {
				return ErrPlaylistForbidden
			}
			if err := uc.playlists.RemoveItem(txCtx, sess, playlist.PlaylistID, videoID); err != nil {
				return err
			}
			updated, err := uc.playlists.AdjustItemsCount(txCtx, sess, playlist.PlaylistID, -1)
			if err != nil {
				return err
			}
			info = vo.NewPlaylistInfo(updated)
			return nil
		}

		switch key.Special {
		case po.SpecialPlaylistLiked, po.SpecialPlaylistDisliked:
			// 仅当视频确实在目标集合内才撤销投票，避免误删另一侧的投票。
			has, err := uc.specials.HasItem(txCtx, sess, userID, key.Special, videoID)
			if err != nil {
				return err
			}
			if !has {
				return ErrNotInPlaylist
			}
			if _, err := uc.machine.apply(txCtx, sess, userID, videoID, po.VoteNone); err != nil {
				return err
			}
		default:
			if err := uc.specials.RemoveItem(txCtx, sess, userID, key.Special, videoID); err != nil {
				return err
			}
			if _, err := uc.specials.AdjustItemsCount(txCtx, sess, userID, key.Special, -1); err != nil {
				return err
			}
		}

		special, err := uc.specials.Get(txCtx, sess, userID, key.Special)
		if err != nil {
			return err
		}
		info = vo.NewSpecialPlaylistInfo(special)
		return nil
	})
	if err != nil {
		return nil, uc.mapMembershipErr(ctx, err, "remove from collection", videoID)
	}

	uc.log.WithContext(ctx).Infof("RemoveFromCollection: user_id=%s video_id=%s kind=%s", userID, videoID, info.Kind)
	return info, nil
}

// mapMembershipErr 将仓储层错误映射为面向调用方的业务错误。
func (uc *LibraryUsecase) mapMembershipErr(ctx context.Context, err error, op string, videoID uuid.UUID) error {
	switch {
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repositories.ErrPlaylistNotFound):
		return ErrPlaylistNotFound
	case errors.Is(err, repositories.ErrDuplicatePlaylistItem):
		return ErrAlreadyInPlaylist
	case errors.Is(err, repositories.ErrPlaylistItemNotFound):
		return ErrNotInPlaylist
	case isServiceErr(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		uc.log.WithContext(ctx).Warnf("%s timeout: video_id=%s", op, videoID)
		return errors.GatewayTimeout(ReasonQueryTimeout, op+" timeout")
	default:
		uc.log.WithContext(ctx).Errorf("%s failed: video_id=%s err=%v", op, videoID, err)
		return errors.InternalServer(ReasonStorageFailure, "failed to "+op).WithCause(err)
	}
}

// isServiceErr 判断错误是否已是服务层哨兵错误，避免二次包装。
func isServiceErr(err error) bool {
	return errors.Is(err, ErrPlaylistForbidden) ||
		errors.Is(err, ErrAlreadyLiked) ||
		errors.Is(err, ErrAlreadyDisliked) ||
		errors.Is(err, ErrVideoNotVoted) ||
		errors.Is(err, ErrNotInPlaylist) ||
		errors.Is(err, ErrAlreadyInPlaylist)
}
