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

// 播放列表仓储哨兵错误。
var (
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrDuplicatePlaylistItem = errors.New("video already in playlist")
	ErrPlaylistItemNotFound  = errors.New("video not in playlist")
)

// PlaylistRepository 封装 library.playlists 与 library.playlist_items 表。
type PlaylistRepository struct {
	db      *pgxpool.Pool
	queries *librarysql.Queries
	log     *log.Helper
}

// NewPlaylistRepository 构造 PlaylistRepository。
func NewPlaylistRepository(db *pgxpool.Pool, logger log.Logger) *PlaylistRepository {
	return &PlaylistRepository{
		db:      db,
		queries: librarysql.New(db),
		log:     log.NewHelper(logger),
	}
}

// CreatePlaylistInput 描述创建播放列表所需的字段。
type CreatePlaylistInput struct {
	PlaylistID  uuid.UUID
	CreatorID   uuid.UUID
	Title       string
	Description *string
	Visibility  po.VideoVisibility
}

// Create 新建播放列表，items_count 初始为 0。
func (r *PlaylistRepository) Create(ctx context.Context, sess txmanager.Session, input CreatePlaylistInput) (*po.Playlist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.CreatePlaylist(ctx, librarysql.CreatePlaylistParams{
		PlaylistID:  input.PlaylistID,
		CreatorID:   input.CreatorID,
		Title:       input.Title,
		Description: mappers.ToPgText(input.Description),
		Visibility:  string(input.Visibility),
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("create playlist failed: creator_id=%s err=%v", input.CreatorID, err)
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return mappers.PlaylistFromRow(row), nil
}

// UpdatePlaylistInput 描述可选更新字段，nil 字段保持原值。
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	Title       *string
	Description *string
	Visibility  *string
}

// Update 更新播放列表元数据。
func (r *PlaylistRepository) Update(ctx context.Context, sess txmanager.Session, input UpdatePlaylistInput) (*po.Playlist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.UpdatePlaylist(ctx, librarysql.UpdatePlaylistParams{
		PlaylistID:  input.PlaylistID,
		Title:       mappers.ToPgText(input.Title),
		Description: mappers.ToPgText(input.Description),
		Visibility:  mappers.ToPgText(input.Visibility),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		r.log.WithContext(ctx).Errorf("update playlist failed: playlist_id=%s err=%v", input.PlaylistID, err)
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	return mappers.PlaylistFromRow(row), nil
}

// Delete 删除播放列表。成员行由外键级联删除。
func (r *PlaylistRepository) Delete(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	affected, err := queries.DeletePlaylist(ctx, playlistID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("delete playlist failed: playlist_id=%s err=%v", playlistID, err)
		return fmt.Errorf("delete playlist: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// Get 返回指定播放列表。
func (r *PlaylistRepository) Get(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return mappers.PlaylistFromRow(row), nil
}

// ListByCreator 返回创作者的播放列表，按更新时间倒序。
func (r *PlaylistRepository) ListByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID, limit, offset int32) ([]*po.Playlist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	rows, err := queries.ListPlaylistsByCreator(ctx, librarysql.ListPlaylistsByCreatorParams{
		CreatorID: creatorID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list playlists by creator: %w", err)
	}

	playlists := make([]*po.Playlist, 0, len(rows))
	for _, row := range rows {
		playlists = append(playlists, mappers.PlaylistFromRow(row))
	}
	return playlists, nil
}

// CountByCreator 返回创作者的播放列表总数。
func (r *PlaylistRepository) CountByCreator(ctx context.Context, sess txmanager.Session, creatorID uuid.UUID) (int64, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	count, err := queries.CountPlaylistsByCreator(ctx, creatorID)
	if err != nil {
		return 0, fmt.Errorf("count playlists by creator: %w", err)
	}
	return count, nil
}

// AddItem 插入成员行。重复插入映射为 ErrDuplicatePlaylistItem。
func (r *PlaylistRepository) AddItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistItem, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.AddPlaylistItem(ctx, librarysql.AddPlaylistItemParams{
		PlaylistID: playlistID,
		VideoID:    videoID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlaylistItem
		}
		r.log.WithContext(ctx).Errorf("add playlist item failed: playlist_id=%s video_id=%s err=%v", playlistID, videoID, err)
		return nil, fmt.Errorf("add playlist item: %w", err)
	}
	return &po.PlaylistItem{
		PlaylistID: row.PlaylistID,
		VideoID:    row.VideoID,
		AddedAt:    row.AddedAt.Time,
	}, nil
}

// RemoveItem 删除成员行。不存在时映射为 ErrPlaylistItemNotFound。
func (r *PlaylistRepository) RemoveItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	affected, err := queries.RemovePlaylistItem(ctx, librarysql.RemovePlaylistItemParams{
		PlaylistID: playlistID,
		VideoID:    videoID,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("remove playlist item failed: playlist_id=%s video_id=%s err=%v", playlistID, videoID, err)
		return fmt.Errorf("remove playlist item: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistItemNotFound
	}
	return nil
}

// AdjustItemsCount 调整去范式化计数，必须与成员行变更同事务执行。
func (r *PlaylistRepository) AdjustItemsCount(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, delta int64) (*po.Playlist, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	row, err := queries.AdjustPlaylistItemsCount(ctx, librarysql.AdjustPlaylistItemsCountParams{
		PlaylistID: playlistID,
		Delta:      delta,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("adjust playlist items count: %w", err)
	}
	return mappers.PlaylistFromRow(row), nil
}

// HasItem 返回视频是否已在播放列表中。
func (r *PlaylistRepository) HasItem(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	exists, err := queries.HasPlaylistItem(ctx, librarysql.HasPlaylistItemParams{
		PlaylistID: playlistID,
		VideoID:    videoID,
	})
	if err != nil {
		return false, fmt.Errorf("has playlist item: %w", err)
	}
	return exists, nil
}

// ListItems 返回播放列表中的一页视频（仅 active），按加入时间倒序。
func (r *PlaylistRepository) ListItems(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, limit, offset int32) ([]VideoWithCounts, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	rows, err := queries.ListPlaylistItems(ctx, librarysql.ListPlaylistItemsParams{
		PlaylistID: playlistID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list playlist items: %w", err)
	}

	results := make([]VideoWithCounts, 0, len(rows))
	for _, row := range rows {
		video, metrics := mappers.PlaylistItemVideoFromRow(row)
		results = append(results, VideoWithCounts{Video: video, Metrics: metrics})
	}
	return results, nil
}

// CountItems 返回播放列表成员总数（含非 active 视频的成员行）。
func (r *PlaylistRepository) CountItems(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (int64, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}

	count, err := queries.CountPlaylistItems(ctx, playlistID)
	if err != nil {
		return 0, fmt.Errorf("count playlist items: %w", err)
	}
	return count, nil
}
