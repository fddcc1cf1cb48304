package mappers

import (
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	librarysql "github.com/bionicotaku/lingo-services-library/internal/repositories/sqlc"
)

// PlaylistFromRow 将 sqlc 生成的 LibraryPlaylist 转换为领域实体。
func PlaylistFromRow(p librarysql.LibraryPlaylist) *po.Playlist {
	return &po.Playlist{
		PlaylistID:  p.PlaylistID,
		CreatorID:   p.CreatorID,
		Title:       p.Title,
		Description: textPtr(p.Description),
		Visibility:  po.VideoVisibility(p.Visibility),
		ItemsCount:  p.ItemsCount,
		CreatedAt:   mustTimestamp(p.CreatedAt),
		UpdatedAt:   mustTimestamp(p.UpdatedAt),
	}
}

// SpecialPlaylistFromRow 将 sqlc 生成的 LibrarySpecialPlaylist 转换为领域实体。
func SpecialPlaylistFromRow(p librarysql.LibrarySpecialPlaylist) *po.SpecialPlaylist {
	return &po.SpecialPlaylist{
		CreatorID:  p.CreatorID,
		Kind:       po.SpecialPlaylistKind(p.Kind),
		ItemsCount: p.ItemsCount,
		UpdatedAt:  mustTimestamp(p.UpdatedAt),
	}
}

// PlaylistItemVideoFromRow 将播放列表成员查询行拆分为实体与计数快照。
func PlaylistItemVideoFromRow(row librarysql.ListPlaylistItemsRow) (*po.Video, *po.VideoMetrics) {
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

// SpecialPlaylistItemVideoFromRow 将特殊播放列表成员查询行拆分为实体与计数快照。
func SpecialPlaylistItemVideoFromRow(row librarysql.ListSpecialPlaylistItemsRow) (*po.Video, *po.VideoMetrics) {
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
