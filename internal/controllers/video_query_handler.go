package controllers

import (
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-library/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// VideoQueryHandler 负责视频投影查询相关的 HTTP 请求。
type VideoQueryHandler struct {
	*BaseHandler
	svc *services.VideoQueryService
}

// NewVideoQueryHandler 构造查询 Handler。
func NewVideoQueryHandler(svc *services.VideoQueryService, base *BaseHandler) *VideoQueryHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &VideoQueryHandler{BaseHandler: base, svc: svc}
}

// RegisterRoutes 挂载视频查询路由。
func (h *VideoQueryHandler) RegisterRoutes(srv *khttp.Server) {
	videos := srv.Route("/v1/videos")
	videos.GET("/{video_id}", h.GetVideo)
	videos.GET("/{video_id}/metadata", h.GetVideoMetadata)

	creators := srv.Route("/v1/creators")
	creators.GET("/{creator_id}/videos", h.ListVideosByCreator)
	creators.GET("/{creator_id}/stats", h.GetCreatorStats)
}

// GetVideo 处理 GET /v1/videos/{video_id}，仅返回公开视频。
func (h *VideoQueryHandler) GetVideo(ctx khttp.Context) error {
	videoID, err := h.PathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	detail, err := h.svc.GetVideo(timeoutCtx, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, detail)
}

// GetVideoMetadata 处理 GET /v1/videos/{video_id}/metadata，
// 携带身份时附带调用者的投票状态。
func (h *VideoQueryHandler) GetVideoMetadata(ctx khttp.Context) error {
	videoID, err := h.PathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	userID := h.OptionalUser(ctx)

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	metadata, err := h.svc.GetVideoMetadata(timeoutCtx, videoID, userID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, metadata)
}

// ListVideosByCreator 处理 GET /v1/creators/{creator_id}/videos。
func (h *VideoQueryHandler) ListVideosByCreator(ctx khttp.Context) error {
	creatorID, err := h.PathUUID(ctx, "creator_id")
	if err != nil {
		return err
	}
	page, pageSize := h.PageParams(ctx)
	query := ctx.Query()

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	result, err := h.svc.ListVideosByCreator(timeoutCtx, services.ListVideosByCreatorInput{
		CreatorID: creatorID,
		Page:      page,
		PageSize:  pageSize,
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, result)
}

type creatorStatsResponse struct {
	VideosCount int64 `json:"videos_count"`
	TotalViews  int64 `json:"total_views"`
}

// GetCreatorStats 处理 GET /v1/creators/{creator_id}/stats，返回聚合计数。
func (h *VideoQueryHandler) GetCreatorStats(ctx khttp.Context) error {
	creatorID, err := h.PathUUID(ctx, "creator_id")
	if err != nil {
		return err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	count, err := h.svc.CountVideosByCreator(timeoutCtx, creatorID)
	if err != nil {
		return err
	}
	views, err := h.svc.TotalViewsByCreator(timeoutCtx, creatorID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, &creatorStatsResponse{
		VideosCount: count,
		TotalViews:  views,
	})
}
