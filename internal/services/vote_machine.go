package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// SpecialPlaylistStore 定义特殊播放列表（LL/DL/WL）的持久化接口。
type SpecialPlaylistStore interface {
	Ensure(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) error
	Get(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) (*po.SpecialPlaylist, error)
	AddItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (*po.SpecialPlaylistItem, error)
	RemoveItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) error
	AdjustItemsCount(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, delta int64) (*po.SpecialPlaylist, error)
	HasItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (bool, error)
	ListItems(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, limit, offset int32) ([]repositories.VideoWithCounts, error)
	CountItems(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) (int64, error)
}

// VideoMetricsStore 定义视频计数表的持久化接口。
type VideoMetricsStore interface {
	EnsureExists(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoMetrics, error)
	ApplyVoteDeltas(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, delta repositories.VoteDelta) (*po.VideoMetrics, error)
	TotalViewsByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error)
}

// voteMachine 实现投票状态机。
//
// 每个 (user, video) 的投票状态由 liked/disliked 两个特殊播放列表的
// 成员关系推导：最多存在其中一行，两行都不存在即为 None。
// 所有迁移都在调用方提供的事务会话内完成，成员行变更与
// items_count、likes_count/dislikes_count 增量保持原子。
type voteMachine struct {
	specials SpecialPlaylistStore
	metrics  VideoMetricsStore
}

// voteKind 返回投票状态对应的特殊播放列表类型。None 不对应任何列表。
func voteKind(state po.VoteState) (po.SpecialPlaylistKind, bool) {
	switch state {
	case po.VoteLiked:
		return po.SpecialPlaylistLiked, true
	case po.VoteDisliked:
		return po.SpecialPlaylistDisliked, true
	default:
		return "", false
	}
}

func voteDeltaFor(state po.VoteState, delta int64) repositories.VoteDelta {
	if state == po.VoteLiked {
		return repositories.VoteDelta{LikeDelta: delta}
	}
	return repositories.VoteDelta{DislikeDelta: delta}
}

// current 推导用户对视频的当前投票状态。
func (m *voteMachine) current(ctx context.Context, sess txmanager.Session, userID, videoID uuid.UUID) (po.VoteState, error) {
	liked, err := m.specials.HasItem(ctx, sess, userID, po.SpecialPlaylistLiked, videoID)
	if err != nil {
		return po.VoteNone, fmt.Errorf("check liked membership: %w", err)
	}
	if liked {
		return po.VoteLiked, nil
	}
	disliked, err := m.specials.HasItem(ctx, sess, userID, po.SpecialPlaylistDisliked, videoID)
	if err != nil {
		return po.VoteNone, fmt.Errorf("check disliked membership: %w", err)
	}
	if disliked {
		return po.VoteDisliked, nil
	}
	return po.VoteNone, nil
}

// apply 执行一次状态迁移并返回视频最新计数。
//
// 重复设置同一状态返回哨兵错误：ErrAlreadyLiked、ErrAlreadyDisliked、
// ErrVideoNotVoted。跨状态迁移（Liked↔Disliked）在同一事务内完成
// 源列表移除与目标列表加入，并一次性应用两侧计数增量。
func (m *voteMachine) apply(ctx context.Context, sess txmanager.Session, userID, videoID uuid.UUID, target po.VoteState) (*po.VideoMetrics, error) {
	current, err := m.current(ctx, sess, userID, videoID)
	if err != nil {
		return nil, err
	}

	if current == target {
		switch target {
		case po.VoteLiked:
			return nil, ErrAlreadyLiked
		case po.VoteDisliked:
			return nil, ErrAlreadyDisliked
		default:
			return nil, ErrVideoNotVoted
		}
	}

	delta := repositories.VoteDelta{}

	if kind, ok := voteKind(current); ok {
		if err := m.specials.RemoveItem(ctx, sess, userID, kind, videoID); err != nil {
			return nil, fmt.Errorf("remove %s membership: %w", kind, err)
		}
		if _, err := m.specials.AdjustItemsCount(ctx, sess, userID, kind, -1); err != nil {
			return nil, fmt.Errorf("decrement %s items count: %w", kind, err)
		}
		d := voteDeltaFor(current, -1)
		delta.LikeDelta += d.LikeDelta
		delta.DislikeDelta += d.DislikeDelta
	}

	if kind, ok := voteKind(target); ok {
		if err := m.specials.Ensure(ctx, sess, userID, kind); err != nil {
			return nil, err
		}
		if _, err := m.specials.AddItem(ctx, sess, userID, kind, videoID); err != nil {
			return nil, fmt.Errorf("add %s membership: %w", kind, err)
		}
		if _, err := m.specials.AdjustItemsCount(ctx, sess, userID, kind, 1); err != nil {
			return nil, fmt.Errorf("increment %s items count: %w", kind, err)
		}
		d := voteDeltaFor(target, 1)
		delta.LikeDelta += d.LikeDelta
		delta.DislikeDelta += d.DislikeDelta
	}

	metrics, err := m.metrics.ApplyVoteDeltas(ctx, sess, videoID, delta)
	if err != nil {
		return nil, fmt.Errorf("apply vote deltas: %w", err)
	}
	return metrics, nil
}
