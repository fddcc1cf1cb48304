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

// 分页与排序默认值。
const (
	defaultPageSize int32 = 20
	minPageSize     int32 = 10
	maxPageSize     int32 = 50

	defaultSortBy    = "created_at"
	defaultSortOrder = "desc"
)

var allowedSortFields = map[string]struct{}{
	"created_at":  {},
	"views_count": {},
	"likes_count": {},
}

// VideoQueryRepo 定义视频读模型所需的访问接口。
type VideoQueryRepo interface {
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	ListByCreator(ctx context.Context, sess txmanager.Session, input repositories.ListVideosByCreatorInput) ([]repositories.VideoWithCounts, error)
	CountByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error)
}

// VideoQueryService 封装视频只读用例。
type VideoQueryService struct {
	videos    VideoQueryRepo
	metrics   VideoMetricsStore
	machine   *voteMachine
	txManager txmanager.Manager
	log       *log.Helper
}

// NewVideoQueryService 构造视频查询服务。
func NewVideoQueryService(
	videos VideoQueryRepo,
	specials SpecialPlaylistStore,
	metrics VideoMetricsStore,
	tx txmanager.Manager,
	logger log.Logger,
) *VideoQueryService {
	return &VideoQueryService{
		videos:    videos,
		metrics:   metrics,
		machine:   &voteMachine{specials: specials, metrics: metrics},
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// GetVideo 查询单个视频详情。对外仅暴露 active + public 的视频，
// 其余情况统一返回 VIDEO_NOT_FOUND，避免泄露存在性。
func (s *VideoQueryService) GetVideo(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	var video *po.Video
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		video, repoErr = s.videos.Get(txCtx, sess, videoID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapQueryErr(ctx, err, "get video", videoID)
	}
	if !video.Registered() || video.Visibility != po.VisibilityPublic {
		return nil, ErrVideoNotFound
	}

	s.log.WithContext(ctx).Debugf("GetVideo: video_id=%s", video.VideoID)
	return vo.NewVideoDetail(video), nil
}

// GetVideoMetadata 查询视频计数及请求者的投票状态。
// userID 为 uuid.Nil 时视为匿名请求，UserVote 固定为 None。
func (s *VideoQueryService) GetVideoMetadata(ctx context.Context, videoID, userID uuid.UUID) (*vo.VideoMetadata, error) {
	var metadata *vo.VideoMetadata
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, repoErr := s.videos.Get(txCtx, sess, videoID)
		if repoErr != nil {
			return repoErr
		}
		if !video.Registered() {
			return repositories.ErrVideoNotFound
		}

		metrics, repoErr := s.metrics.Get(txCtx, sess, videoID)
		if repoErr != nil {
			return repoErr
		}

		vote := po.VoteNone
		if userID != uuid.Nil {
			vote, repoErr = s.machine.current(txCtx, sess, userID, videoID)
			if repoErr != nil {
				return repoErr
			}
		}

		metadata = vo.NewVideoMetadata(metrics, vote)
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMetricsNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, s.mapQueryErr(ctx, err, "get video metadata", videoID)
	}
	return metadata, nil
}

// ListVideosByCreatorInput 表示创作者视频列表查询参数。
type ListVideosByCreatorInput struct {
	CreatorID uuid.UUID
	Page      int32
	PageSize  int32
	SortBy    string
	SortOrder string
}

// ListVideosByCreator 分页查询创作者的公开视频。
// 支持按 created_at/views_count/likes_count 排序，非法排序字段返回
// INVALID_ARGUMENT；页参数越界时收敛到合法范围。
func (s *VideoQueryService) ListVideosByCreator(ctx context.Context, input ListVideosByCreatorInput) (*vo.Page[vo.VideoSummary], error) {
	sortBy, sortOrder, err := normalizeSort(input.SortBy, input.SortOrder)
	if err != nil {
		return nil, err
	}
	page, pageSize := normalizePage(input.Page, input.PageSize)

	var items []repositories.VideoWithCounts
	var total int64
	err = s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		total, repoErr = s.videos.CountByCreator(txCtx, sess, input.CreatorID)
		if repoErr != nil {
			return repoErr
		}
		items, repoErr = s.videos.ListByCreator(txCtx, sess, repositories.ListVideosByCreatorInput{
			CreatorID: input.CreatorID,
			SortBy:    sortBy,
			SortOrder: sortOrder,
			Limit:     pageSize,
			Offset:    (page - 1) * pageSize,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapQueryErr(ctx, err, "list videos by creator", input.CreatorID)
	}

	result := vo.NewPage(summarize(items), page, pageSize, total)
	return &result, nil
}

// CountVideosByCreator 返回创作者的公开视频总数。
func (s *VideoQueryService) CountVideosByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	var total int64
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		total, repoErr = s.videos.CountByCreator(txCtx, sess, creatorID)
		return repoErr
	})
	if err != nil {
		return 0, s.mapQueryErr(ctx, err, "count videos by creator", creatorID)
	}
	return total, nil
}

// TotalViewsByCreator 返回创作者所有已注册视频的累计播放量。
func (s *VideoQueryService) TotalViewsByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	var total int64
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		total, repoErr = s.metrics.TotalViewsByCreator(txCtx, sess, creatorID)
		return repoErr
	})
	if err != nil {
		return 0, s.mapQueryErr(ctx, err, "total views by creator", creatorID)
	}
	return total, nil
}

func (s *VideoQueryService) mapQueryErr(ctx context.Context, err error, op string, id uuid.UUID) error {
	switch {
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, context.DeadlineExceeded):
		s.log.WithContext(ctx).Warnf("%s timeout: id=%s", op, id)
		return errors.GatewayTimeout(ReasonQueryTimeout, "query timeout")
	default:
		s.log.WithContext(ctx).Errorf("%s failed: id=%s err=%v", op, id, err)
		return errors.InternalServer(ReasonStorageFailure, "failed to "+op).WithCause(fmt.Errorf("%s: %w", op, err))
	}
}

// normalizeSort 校验排序参数并填充默认值。
func normalizeSort(sortBy, sortOrder string) (string, string, error) {
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	if _, ok := allowedSortFields[sortBy]; !ok {
		return "", "", errors.BadRequest(ReasonInvalidArgument, "invalid sort field: "+sortBy)
	}
	switch sortOrder {
	case "":
		sortOrder = defaultSortOrder
	case "asc", "desc":
	default:
		return "", "", errors.BadRequest(ReasonInvalidArgument, "invalid sort order: "+sortOrder)
	}
	return sortBy, sortOrder, nil
}

// normalizePage 将页参数收敛到合法范围。
func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize == 0:
		pageSize = defaultPageSize
	case pageSize < minPageSize:
		pageSize = minPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}
