package controllers

import (
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// PlaylistHandler 负责用户自建播放列表的增删改查请求。
type PlaylistHandler struct {
	*BaseHandler
	playlists *services.PlaylistUsecase
	queries   *services.LibraryQueryService
}

// NewPlaylistHandler 构造播放列表 Handler。
func NewPlaylistHandler(
	playlists *services.PlaylistUsecase,
	queries *services.LibraryQueryService,
	base *BaseHandler,
) *PlaylistHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &PlaylistHandler{BaseHandler: base, playlists: playlists, queries: queries}
}

// RegisterRoutes 挂载播放列表路由。
func (h *PlaylistHandler) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/v1/library/playlists")
	r.GET("", h.ListPlaylists)
	r.POST("", h.CreatePlaylist)
	r.PATCH("/{playlist_id}", h.UpdatePlaylist)
	r.DELETE("/{playlist_id}", h.DeletePlaylist)
}

type createPlaylistRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// CreatePlaylist 处理 POST /v1/library/playlists。
func (h *PlaylistHandler) CreatePlaylist(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	var req createPlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonInvalidArgument, "invalid request body")
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	info, err := h.playlists.CreatePlaylist(timeoutCtx, services.CreatePlaylistInput{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusCreated, info)
}

type updatePlaylistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// UpdatePlaylist 处理 PATCH /v1/library/playlists/{playlist_id}，支持部分更新。
func (h *PlaylistHandler) UpdatePlaylist(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	playlistID, err := h.PathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req updatePlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonInvalidArgument, "invalid request body")
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	info, err := h.playlists.UpdatePlaylist(timeoutCtx, services.UpdatePlaylistInput{
		PlaylistID:  playlistID,
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, info)
}

// DeletePlaylist 处理 DELETE /v1/library/playlists/{playlist_id}。
func (h *PlaylistHandler) DeletePlaylist(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	playlistID, err := h.PathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.playlists.DeletePlaylist(timeoutCtx, userID, playlistID); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

// ListPlaylists 处理 GET /v1/library/playlists，返回调用者的播放列表分页。
func (h *PlaylistHandler) ListPlaylists(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	page, pageSize := h.PageParams(ctx)

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	result, err := h.queries.ListPlaylists(timeoutCtx, userID, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, result)
}
