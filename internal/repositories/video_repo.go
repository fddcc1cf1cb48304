// Package repositories 实现数据访问层，封装 sqlc 生成的查询方法。
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

// ErrVideoNotFound 表示视频在本地投影中不存在。
var ErrVideoNotFound = errors.New("video not found")

// VideoRepository 封装 library.videos 表的访问逻辑。
type VideoRepository struct {
	db      *pgxpool.Pool
	queries *librarysql.Queries
	log     *log.Helper
}

// NewVideoRepository 构造 VideoRepository。
func NewVideoRepository(db *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		db:      db,
		queries: librarysql.New(db),
		log:     log.NewHelper(logger),
	}
}

// UpsertVideoInput 描述 upsert_video 事件携带的视频字段。
type UpsertVideoInput struct {
	VideoID             uuid.UUID
	CreatorID           uuid.UUID
	Title               string
	Description         *string
	ThumbnailURL        *string
	PreviewThumbnailURL *string
	LengthSeconds       int32
	Visibility          po.VideoVisibility
	UpdatedAt           time.Time
}

// Upsert 创建或更新视频投影。已注销的视频不会被更新，此时返回 applied=false。
func (r *VideoRepository) Upsert(ctx context.Context, sess txmanager.Session, input UpsertVideoInput) (*po.Video, bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.UpsertVideo(ctx, librarysql.UpsertVideoParams{
		VideoID:             input.VideoID,
		CreatorID:           input.CreatorID,
		Title:               input.Title,
		Description:         mappers.ToPgText(input.Description),
		ThumbnailUrl:        mappers.ToPgText(input.ThumbnailURL),
		PreviewThumbnailUrl: mappers.ToPgText(input.PreviewThumbnailURL),
		LengthSeconds:       input.LengthSeconds,
		Visibility:          string(input.Visibility),
		UpdatedAt:           timestamptzFromTime(input.UpdatedAt),
	})
	if err != nil {
		// ON CONFLICT ... WHERE status = 'active' 对已注销视频不产生返回行。
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		r.log.WithContext(ctx).Errorf("upsert video failed: video_id=%s err=%v", input.VideoID, err)
		return nil, false, fmt.Errorf("upsert video: %w", err)
	}
	return mappers.VideoFromRow(row), true, nil
}

// Unregister 将视频标记为 unregistered。已注销或不存在时返回 false。
func (r *VideoRepository) Unregister(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	affected, err := queries.UnregisterVideo(ctx, videoID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("unregister video failed: video_id=%s err=%v", videoID, err)
		return false, fmt.Errorf("unregister video: %w", err)
	}
	return affected > 0, nil
}

// Get 返回指定视频的投影实体。
func (r *VideoRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
		return nil, fmt.Errorf("get video: %w", err)
	}
	return mappers.VideoFromRow(row), nil
}

// VideoWithCounts 将视频实体与其计数快照配对返回。
type VideoWithCounts struct {
	Video   *po.Video
	Metrics *po.VideoMetrics
}

// ListVideosByCreatorInput 描述创作者维度的列表查询参数。
type ListVideosByCreatorInput struct {
	CreatorID uuid.UUID
	SortBy    string
	SortOrder string
	Limit     int32
	Offset    int32
}

// ListByCreator 返回创作者的公开视频列表（仅 active + public）。
func (r *VideoRepository) ListByCreator(ctx context.Context, sess txmanager.Session, input ListVideosByCreatorInput) ([]VideoWithCounts, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	rows, err := queries.ListVideosByCreator(ctx, librarysql.ListVideosByCreatorParams{
		CreatorID: input.CreatorID,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("list videos by creator failed: creator_id=%s err=%v", input.CreatorID, err)
		return nil, fmt.Errorf("list videos by creator: %w", err)
	}

	results := make([]VideoWithCounts, 0, len(rows))
	for _, row := range rows {
		video, metrics := mappers.VideoWithCountsFromListRow(row)
		results = append(results, VideoWithCounts{Video: video, Metrics: metrics})
	}
	return results, nil
}

// CountByCreator 返回创作者的公开视频总数。
func (r *VideoRepository) CountByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	count, err := queries.CountVideosByCreator(ctx, creatorID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("count videos by creator failed: creator_id=%s err=%v", creatorID, err)
		return 0, fmt.Errorf("count videos by creator: %w", err)
	}
	return count, nil
}
