package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VoteUsecase 实现投票用例：设置/撤销用户对视频的 Like/Dislike。
type VoteUsecase struct {
	videos    VideoReader
	machine   *voteMachine
	txManager txmanager.Manager
	log       *log.Helper
}

// NewVoteUsecase 构造投票用例实例。
func NewVoteUsecase(
	videos VideoReader,
	specials SpecialPlaylistStore,
	metrics VideoMetricsStore,
	tx txmanager.Manager,
	logger log.Logger,
) *VoteUsecase {
	return &VoteUsecase{
		videos:    videos,
		machine:   &voteMachine{specials: specials, metrics: metrics},
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// ParseVoteState 解析调用方传入的投票状态。
func ParseVoteState(raw string) (po.VoteState, error) {
	switch po.VoteState(raw) {
	case po.VoteNone, po.VoteLiked, po.VoteDisliked:
		return po.VoteState(raw), nil
	default:
		return "", fmt.Errorf("invalid vote state %q", raw)
	}
}

// SetVote 将用户对视频的投票迁移到目标状态，返回迁移后的计数快照。
// 迁移在单个事务内完成：liked/disliked 成员行变更、两个特殊播放
// 列表的 items_count 以及 likes_count/dislikes_count 一起提交。
func (uc *VoteUsecase) SetVote(ctx context.Context, userID, videoID uuid.UUID, target po.VoteState) (*vo.VideoMetadata, error) {
	var metrics *po.VideoMetrics
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := uc.videos.Get(txCtx, sess, videoID)
		if err != nil {
			return err
		}
		if !video.Registered() {
			return repositories.ErrVideoNotFound
		}

		metrics, err = uc.machine.apply(txCtx, sess, userID, videoID, target)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrVideoNotFound):
			return nil, ErrVideoNotFound
		case isServiceErr(err):
			return nil, err
		case errors.Is(err, context.DeadlineExceeded):
			uc.log.WithContext(ctx).Warnf("set vote timeout: video_id=%s", videoID)
			return nil, errors.GatewayTimeout(ReasonQueryTimeout, "set vote timeout")
		default:
			uc.log.WithContext(ctx).Errorf("set vote failed: user_id=%s video_id=%s target=%s err=%v", userID, videoID, target, err)
			return nil, errors.InternalServer(ReasonStorageFailure, "failed to set vote").WithCause(err)
		}
	}

	uc.log.WithContext(ctx).Infof("SetVote: user_id=%s video_id=%s state=%s", userID, videoID, target)
	return vo.NewVideoMetadata(metrics, target), nil
}
