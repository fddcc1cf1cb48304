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

// LibraryQueryService 封装播放列表只读用例。
type LibraryQueryService struct {
	playlists PlaylistStore
	specials  SpecialPlaylistStore
	txManager txmanager.Manager
	log       *log.Helper
}

// NewLibraryQueryService 构造播放列表查询服务。
func NewLibraryQueryService(
	playlists PlaylistStore,
	specials SpecialPlaylistStore,
	tx txmanager.Manager,
	logger log.Logger,
) *LibraryQueryService {
	return &LibraryQueryService{
		playlists: playlists,
		specials:  specials,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// GetPlaylist 查询播放列表详情及其一页视频（按加入时间倒序）。
//
// 特殊播放列表只对本人可见；自建播放列表 private 时只对创建者
// 可见，public/unlisted 任何持有 ID 的请求者均可读取。
func (s *LibraryQueryService) GetPlaylist(ctx context.Context, userID uuid.UUID, key CollectionKey, page, pageSize int32) (*vo.PlaylistPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	var result *vo.PlaylistPage
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if key.IsSpecial() {
			if userID == uuid.Nil {
				return ErrPlaylistForbidden
			}
			special, repoErr := s.specials.Get(txCtx, sess, userID, key.Special)
			if repoErr != nil {
				return repoErr
			}
			items, repoErr := s.specials.ListItems(txCtx, sess, userID, key.Special, pageSize, offset)
			if repoErr != nil {
				return repoErr
			}
			total, repoErr := s.specials.CountItems(txCtx, sess, userID, key.Special)
			if repoErr != nil {
				return repoErr
			}
			result = &vo.PlaylistPage{
				Info:   *vo.NewSpecialPlaylistInfo(special),
				Videos: vo.NewPage(summarize(items), page, pageSize, total),
			}
			return nil
		}

		playlist, repoErr := s.playlists.Get(txCtx, sess, *key.PlaylistID)
		if repoErr != nil {
			return repoErr
		}
		if playlist.Visibility == po.VisibilityPrivate && playlist.CreatorID != userID {
			// 与不存在同样返回 404，避免泄露私有列表的存在性。
			return repositories.ErrPlaylistNotFound
		}
		items, repoErr := s.playlists.ListItems(txCtx, sess, playlist.PlaylistID, pageSize, offset)
		if repoErr != nil {
			return repoErr
		}
		total, repoErr := s.playlists.CountItems(txCtx, sess, playlist.PlaylistID)
		if repoErr != nil {
			return repoErr
		}
		result = &vo.PlaylistPage{
			Info:   *vo.NewPlaylistInfo(playlist),
			Videos: vo.NewPage(summarize(items), page, pageSize, total),
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlaylistNotFound):
			return nil, ErrPlaylistNotFound
		case errors.Is(err, ErrPlaylistForbidden):
			return nil, ErrPlaylistForbidden
		case errors.Is(err, context.DeadlineExceeded):
			s.log.WithContext(ctx).Warnf("get playlist timeout: user_id=%s", userID)
			return nil, errors.GatewayTimeout(ReasonQueryTimeout, "query timeout")
		default:
			s.log.WithContext(ctx).Errorf("get playlist failed: user_id=%s err=%v", userID, err)
			return nil, errors.InternalServer(ReasonStorageFailure, "failed to get playlist").WithCause(fmt.Errorf("get playlist: %w", err))
		}
	}
	return result, nil
}

// ListPlaylists 分页查询用户的自建播放列表，按更新时间倒序。
func (s *LibraryQueryService) ListPlaylists(ctx context.Context, creatorID uuid.UUID, page, pageSize int32) (*vo.Page[vo.PlaylistInfo], error) {
	page, pageSize = normalizePage(page, pageSize)

	var playlists []*po.Playlist
	var total int64
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		total, repoErr = s.playlists.CountByCreator(txCtx, sess, creatorID)
		if repoErr != nil {
			return repoErr
		}
		playlists, repoErr = s.playlists.ListByCreator(txCtx, sess, creatorID, pageSize, (page-1)*pageSize)
		return repoErr
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.log.WithContext(ctx).Warnf("list playlists timeout: creator_id=%s", creatorID)
			return nil, errors.GatewayTimeout(ReasonQueryTimeout, "query timeout")
		}
		s.log.WithContext(ctx).Errorf("list playlists failed: creator_id=%s err=%v", creatorID, err)
		return nil, errors.InternalServer(ReasonStorageFailure, "failed to list playlists").WithCause(fmt.Errorf("list playlists: %w", err))
	}

	infos := make([]vo.PlaylistInfo, 0, len(playlists))
	for _, playlist := range playlists {
		infos = append(infos, *vo.NewPlaylistInfo(playlist))
	}
	result := vo.NewPage(infos, page, pageSize, total)
	return &result, nil
}

func summarize(items []repositories.VideoWithCounts) []vo.VideoSummary {
	summaries := make([]vo.VideoSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, vo.NewVideoSummary(item.Video, item.Metrics))
	}
	return summaries
}
