// Package mappers 提供仓储层的模型转换工具，将存储层结果映射为领域实体。
package mappers

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	librarysql "github.com/bionicotaku/lingo-services-library/internal/repositories/sqlc"

	"github.com/jackc/pgx/v5/pgtype"
)

// VideoFromRow 将 sqlc 生成的 LibraryVideo 转换为领域实体 po.Video。
func VideoFromRow(v librarysql.LibraryVideo) *po.Video {
	return &po.Video{
		VideoID:             v.VideoID,
		CreatorID:           v.CreatorID,
		Title:               v.Title,
		Description:         textPtr(v.Description),
		ThumbnailURL:        textPtr(v.ThumbnailUrl),
		PreviewThumbnailURL: textPtr(v.PreviewThumbnailUrl),
		LengthSeconds:       v.LengthSeconds,
		Visibility:          po.VideoVisibility(v.Visibility),
		Status:              po.VideoStatus(v.Status),
		CreatedAt:           mustTimestamp(v.CreatedAt),
		UpdatedAt:           mustTimestamp(v.UpdatedAt),
	}
}

// VideoMetricsFromRow 将 sqlc 计数行转换为 po.VideoMetrics。
func VideoMetricsFromRow(m librarysql.LibraryVideoMetric) *po.VideoMetrics {
	return &po.VideoMetrics{
		VideoID:             m.VideoID,
		ViewsCount:          m.ViewsCount,
		LikesCount:          m.LikesCount,
		DislikesCount:       m.DislikesCount,
		ViewsCountUpdatedAt: timestampPtr(m.ViewsCountUpdatedAt),
		UpdatedAt:           mustTimestamp(m.UpdatedAt),
	}
}

// VideoWithCountsFromListRow 将创作者视频列表行拆分为实体与计数快照。
func VideoWithCountsFromListRow(row librarysql.ListVideosByCreatorRow) (*po.Video, *po.VideoMetrics) {
	video := &po.Video{
		VideoID:             row.VideoID,
		CreatorID:           row.CreatorID,
		Title:               row.Title,
		Description:         textPtr(row.Description),
		ThumbnailURL:        textPtr(row.ThumbnailUrl),
		PreviewThumbnailURL: textPtr(row.PreviewThumbnailUrl),
		LengthSeconds:       row.LengthSeconds,
		Visibility:          po.VideoVisibility(row.Visibility),
		Status:              po.VideoStatus(row.Status),
		CreatedAt:           mustTimestamp(row.CreatedAt),
		UpdatedAt:           mustTimestamp(row.UpdatedAt),
	}
	metrics := &po.VideoMetrics{
		VideoID:    row.VideoID,
		ViewsCount: row.ViewsCount,
		LikesCount: row.LikesCount,
	}
	return video, metrics
}

func mustTimestamp(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}

func timestampPtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func textFromPtr(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{
		String: *value,
		Valid:  true,
	}
}

// ToPgText 将 string 指针转换为 pgtype.Text。
func ToPgText(value *string) pgtype.Text {
	return textFromPtr(value)
}

// ToPgTimestamptz 将 time 指针转换为 pgtype.Timestamptz。
func ToPgTimestamptz(value *time.Time) pgtype.Timestamptz {
	if value == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{
		Time:  value.UTC(),
		Valid: true,
	}
}
