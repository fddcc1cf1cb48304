package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories/mappers"
	librarysql "github.com/bionicotaku/lingo-services-library/internal/repositories/sqlc"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMetricsNotFound 表示视频计数行不存在（视频未注册或已被清理）。
var ErrMetricsNotFound = errors.New("video metrics not found")

// VideoMetricsRepository 维护 library.video_metrics 计数表。
type VideoMetricsRepository struct {
	db      *pgxpool.Pool
	queries *librarysql.Queries
	log     *log.Helper
}

// NewVideoMetricsRepository 构造仓储。
func NewVideoMetricsRepository(db *pgxpool.Pool, logger log.Logger) *VideoMetricsRepository {
	return &VideoMetricsRepository{
		db:      db,
		queries: librarysql.New(db),
		log:     log.NewHelper(logger),
	}
}

// VoteDelta 表示投票状态迁移产生的计数增量。
type VoteDelta struct {
	LikeDelta    int64
	DislikeDelta int64
}

// EnsureExists 为视频创建零值计数行，已存在时为 no-op。
func (r *VideoMetricsRepository) EnsureExists(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	if err := queries.InsertVideoMetrics(ctx, videoID); err != nil {
		return fmt.Errorf("insert video metrics: %w", err)
	}
	return nil
}

// Get 返回指定视频的计数快照。
func (r *VideoMetricsRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoMetrics, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.GetVideoMetrics(ctx, videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMetricsNotFound
		}
		return nil, fmt.Errorf("get video metrics: %w", err)
	}
	return mappers.VideoMetricsFromRow(row), nil
}

// ApplyVoteDeltas 应用 likes/dislikes 增量，返回最新计数。
// 必须与产生增量的成员关系变更处于同一事务。
func (r *VideoMetricsRepository) ApplyVoteDeltas(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, delta VoteDelta) (*po.VideoMetrics, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.ApplyVoteDeltas(ctx, librarysql.ApplyVoteDeltasParams{
		VideoID:      videoID,
		LikeDelta:    delta.LikeDelta,
		DislikeDelta: delta.DislikeDelta,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMetricsNotFound
		}
		return nil, fmt.Errorf("apply vote deltas: %w", err)
	}
	return mappers.VideoMetricsFromRow(row), nil
}

// SyncViews 按 last-write-wins 语义同步 views 计数。
// 仅当事件时间戳晚于已存储的 views_count_updated_at 时写入，返回是否生效。
func (r *VideoMetricsRepository) SyncViews(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, viewsCount int64, updatedAt time.Time) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	affected, err := queries.SyncViewsCount(ctx, librarysql.SyncViewsCountParams{
		VideoID:    videoID,
		ViewsCount: viewsCount,
		UpdatedAt:  timestamptzFromTime(updatedAt),
	})
	if err != nil {
		return false, fmt.Errorf("sync views count: %w", err)
	}
	return affected > 0, nil
}

// TotalViewsByCreator 返回创作者所有已注册视频的累计播放量。
func (r *VideoMetricsRepository) TotalViewsByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	total, err := queries.TotalViewsByCreator(ctx, creatorID)
	if err != nil {
		return 0, fmt.Errorf("total views by creator: %w", err)
	}
	return total, nil
}

var _ interface {
	EnsureExists(context.Context, txmanager.Session, uuid.UUID) error
	Get(context.Context, txmanager.Session, uuid.UUID) (*po.VideoMetrics, error)
	ApplyVoteDeltas(context.Context, txmanager.Session, uuid.UUID, VoteDelta) (*po.VideoMetrics, error)
	SyncViews(context.Context, txmanager.Session, uuid.UUID, int64, time.Time) (bool, error)
} = (*VideoMetricsRepository)(nil)
