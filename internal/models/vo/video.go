package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/google/uuid"
)

// VideoSummary 封装列表场景使用的视频精简视图。
type VideoSummary struct {
	VideoID             uuid.UUID `json:"video_id"`
	CreatorID           uuid.UUID `json:"creator_id"`
	Title               string    `json:"title"`
	ThumbnailURL        *string   `json:"thumbnail_url"`
	PreviewThumbnailURL *string   `json:"preview_thumbnail_url"`
	LengthSeconds       int32     `json:"length_seconds"`
	ViewsCount          int64     `json:"views_count"`
	LikesCount          int64     `json:"likes_count"`
	CreatedAt           time.Time `json:"created_at"`
}

// VideoDetail 封装单视频详情视图。
type VideoDetail struct {
	VideoID             uuid.UUID `json:"video_id"`
	CreatorID           uuid.UUID `json:"creator_id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	ThumbnailURL        *string   `json:"thumbnail_url"`
	PreviewThumbnailURL *string   `json:"preview_thumbnail_url"`
	LengthSeconds       int32     `json:"length_seconds"`
	Visibility          string    `json:"visibility"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// VideoMetadata 封装视频计数与请求者投票状态的组合视图。
type VideoMetadata struct {
	VideoID       uuid.UUID `json:"video_id"`
	ViewsCount    int64     `json:"views_count"`
	LikesCount    int64     `json:"likes_count"`
	DislikesCount int64     `json:"dislikes_count"`
	UserVote      string    `json:"user_vote"`
}

// NewVideoSummary 从实体与计数快照构造精简视图。
func NewVideoSummary(video *po.Video, metrics *po.VideoMetrics) VideoSummary {
	summary := VideoSummary{
		VideoID:             video.VideoID,
		CreatorID:           video.CreatorID,
		Title:               video.Title,
		ThumbnailURL:        video.ThumbnailURL,
		PreviewThumbnailURL: video.PreviewThumbnailURL,
		LengthSeconds:       video.LengthSeconds,
		CreatedAt:           video.CreatedAt,
	}
	if metrics != nil {
		summary.ViewsCount = metrics.ViewsCount
		summary.LikesCount = metrics.LikesCount
	}
	return summary
}

// NewVideoDetail 从实体构造详情视图。
func NewVideoDetail(video *po.Video) *VideoDetail {
	if video == nil {
		return nil
	}
	return &VideoDetail{
		VideoID:             video.VideoID,
		CreatorID:           video.CreatorID,
		Title:               video.Title,
		Description:         video.Description,
		ThumbnailURL:        video.ThumbnailURL,
		PreviewThumbnailURL: video.PreviewThumbnailURL,
		LengthSeconds:       video.LengthSeconds,
		Visibility:          string(video.Visibility),
		CreatedAt:           video.CreatedAt,
		UpdatedAt:           video.UpdatedAt,
	}
}

// NewVideoMetadata 组合计数快照与投票状态。
func NewVideoMetadata(metrics *po.VideoMetrics, vote po.VoteState) *VideoMetadata {
	if metrics == nil {
		return nil
	}
	return &VideoMetadata{
		VideoID:       metrics.VideoID,
		ViewsCount:    metrics.ViewsCount,
		LikesCount:    metrics.LikesCount,
		DislikesCount: metrics.DislikesCount,
		UserVote:      string(vote),
	}
}
