package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories/mappers"
	librarysql "github.com/bionicotaku/lingo-services-library/internal/repositories/sqlc"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpecialPlaylistRepository 封装 library.special_playlists 与成员表。
// 特殊播放列表按 (creator_id, kind) 唯一，首次写入时通过 Ensure 惰性创建。
type SpecialPlaylistRepository struct {
	db      *pgxpool.Pool
	queries *librarysql.Queries
	log     *log.Helper
}

// NewSpecialPlaylistRepository 构造仓储。
func NewSpecialPlaylistRepository(db *pgxpool.Pool, logger log.Logger) *SpecialPlaylistRepository {
	return &SpecialPlaylistRepository{
		db:      db,
		queries: librarysql.New(db),
		log:     log.NewHelper(logger),
	}
}

// Ensure 确保特殊播放列表存在（ON CONFLICT DO NOTHING）。
func (r *SpecialPlaylistRepository) Ensure(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	if err := queries.EnsureSpecialPlaylist(ctx, librarysql.EnsureSpecialPlaylistParams{
		CreatorID: creatorID,
		Kind:      string(kind),
	}); err != nil {
		return fmt.Errorf("ensure special playlist: %w", err)
	}
	return nil
}

// Get 返回特殊播放列表。尚未创建时返回零值实体，避免上层区分存在性。
func (r *SpecialPlaylistRepository) Get(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) (*po.SpecialPlaylist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.GetSpecialPlaylist(ctx, librarysql.GetSpecialPlaylistParams{
		CreatorID: creatorID,
		Kind:      string(kind),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &po.SpecialPlaylist{CreatorID: creatorID, Kind: kind}, nil
		}
		return nil, fmt.Errorf("get special playlist: %w", err)
	}
	return mappers.SpecialPlaylistFromRow(row), nil
}

// AddItem 插入成员行。重复插入映射为 ErrDuplicatePlaylistItem。
func (r *SpecialPlaylistRepository) AddItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (*po.SpecialPlaylistItem, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.AddSpecialPlaylistItem(ctx, librarysql.AddSpecialPlaylistItemParams{
		CreatorID: creatorID,
		Kind:      string(kind),
		VideoID:   videoID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlaylistItem
		}
		r.log.WithContext(ctx).Errorf("add special playlist item failed: creator_id=%s kind=%s video_id=%s err=%v", creatorID, kind, videoID, err)
		return nil, fmt.Errorf("add special playlist item: %w", err)
	}
	return &po.SpecialPlaylistItem{
		CreatorID: row.CreatorID,
		Kind:      po.SpecialPlaylistKind(row.Kind),
		VideoID:   row.VideoID,
		AddedAt:   row.AddedAt.Time,
	}, nil
}

// RemoveItem 删除成员行。不存在时映射为 ErrPlaylistItemNotFound。
func (r *SpecialPlaylistRepository) RemoveItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	affected, err := queries.RemoveSpecialPlaylistItem(ctx, librarysql.RemoveSpecialPlaylistItemParams{
		CreatorID: creatorID,
		Kind:      string(kind),
		VideoID:   videoID,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("remove special playlist item failed: creator_id=%s kind=%s video_id=%s err=%v", creatorID, kind, videoID, err)
		return fmt.Errorf("remove special playlist item: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistItemNotFound
	}
	return nil
}

// AdjustItemsCount 调整去范式化计数，必须与成员行变更同事务执行。
func (r *SpecialPlaylistRepository) AdjustItemsCount(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, delta int64) (*po.SpecialPlaylist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.AdjustSpecialItemsCount(ctx, librarysql.AdjustSpecialItemsCountParams{
		CreatorID: creatorID,
		Kind:      string(kind),
		Delta:     delta,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("adjust special items count: %w", err)
	}
	return mappers.SpecialPlaylistFromRow(row), nil
}

// HasItem 返回视频是否在特殊播放列表中。
func (r *SpecialPlaylistRepository) HasItem(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	exists, err := queries.HasSpecialPlaylistItem(ctx, librarysql.HasSpecialPlaylistItemParams{
		CreatorID: creatorID,
		Kind:      string(kind),
		VideoID:   videoID,
	})
	if err != nil {
		return false, fmt.Errorf("has special playlist item: %w", err)
	}
	return exists, nil
}

// ListItems 返回特殊播放列表中的一页视频（仅 active），按加入时间倒序。
func (r *SpecialPlaylistRepository) ListItems(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, limit, offset int32) ([]VideoWithCounts, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	rows, err := queries.ListSpecialPlaylistItems(ctx, librarysql.ListSpecialPlaylistItemsParams{
		CreatorID: creatorID,
		Kind:      string(kind),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list special playlist items: %w", err)
	}

	results := make([]VideoWithCounts, 0, len(rows))
	for _, row := range rows {
		video, metrics := mappers.SpecialPlaylistItemVideoFromRow(row)
		results = append(results, VideoWithCounts{Video: video, Metrics: metrics})
	}
	return results, nil
}

// CountItems 返回特殊播放列表成员总数。
func (r *SpecialPlaylistRepository) CountItems(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) (int64, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	count, err := queries.CountSpecialPlaylistItems(ctx, librarysql.CountSpecialPlaylistItemsParams{
		CreatorID: creatorID,
		Kind:      string(kind),
	})
	if err != nil {
		return 0, fmt.Errorf("count special playlist items: %w", err)
	}
	return count, nil
}
