package controllers

import (
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// LibraryHandler 负责集合成员变更与投票相关的 HTTP 请求。
type LibraryHandler struct {
	*BaseHandler
	library *services.LibraryUsecase
	votes   *services.VoteUsecase
	queries *services.LibraryQueryService
}

// NewLibraryHandler 构造集合 Handler。
func NewLibraryHandler(
	library *services.LibraryUsecase,
	votes *services.VoteUsecase,
	queries *services.LibraryQueryService,
	base *BaseHandler,
) *LibraryHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &LibraryHandler{BaseHandler: base, library: library, votes: votes, queries: queries}
}

// RegisterRoutes 挂载集合与投票路由。
func (h *LibraryHandler) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/v1/library")
	r.GET("/collections/{collection}", h.GetCollection)
	r.PUT("/collections/{collection}/videos/{video_id}", h.AddToCollection)
	r.DELETE("/collections/{collection}/videos/{video_id}", h.RemoveFromCollection)
	r.PUT("/videos/{video_id}/vote", h.SetVote)
}

// AddToCollection 处理 PUT /v1/library/collections/{collection}/videos/{video_id}。
func (h *LibraryHandler) AddToCollection(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	key, err := services.ParseCollectionKey(ctx.Vars().Get("collection"))
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}
	videoID, err := h.PathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	info, err := h.library.AddToCollection(timeoutCtx, userID, key, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, info)
}

// RemoveFromCollection 处理 DELETE /v1/library/collections/{collection}/videos/{video_id}。
func (h *LibraryHandler) RemoveFromCollection(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	key, err := services.ParseCollectionKey(ctx.Vars().Get("collection"))
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}
	videoID, err := h.PathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	info, err := h.library.RemoveFromCollection(timeoutCtx, userID, key, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, info)
}

// GetCollection 处理 GET /v1/library/collections/{collection}，返回集合详情及一页视频。
func (h *LibraryHandler) GetCollection(ctx khttp.Context) error {
	userID := h.OptionalUser(ctx)
	key, err := services.ParseCollectionKey(ctx.Vars().Get("collection"))
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}
	page, pageSize := h.PageParams(ctx)

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	result, err := h.queries.GetPlaylist(timeoutCtx, userID, key, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, result)
}

type setVoteRequest struct {
	State string `json:"state"`
}

// SetVote 处理 PUT /v1/library/videos/{video_id}/vote。
func (h *LibraryHandler) SetVote(ctx khttp.Context) error {
	userID, err := h.RequireUser(ctx)
	if err != nil {
		return err
	}
	videoID, err := h.PathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req setVoteRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonInvalidArgument, "invalid request body")
	}
	target, err := services.ParseVoteState(req.State)
	if err != nil {
		return errors.BadRequest(reasonInvalidArgument, err.Error())
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	metadata, err := h.votes.SetVote(timeoutCtx, userID, videoID, target)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, metadata)
}
