package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/google/uuid"
)

// PlaylistInfo 封装播放列表摘要视图。特殊播放列表的 PlaylistID 为空。
type PlaylistInfo struct {
	PlaylistID  *uuid.UUID `json:"playlist_id,omitempty"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	Kind        string     `json:"kind,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`
	ItemsCount  int64      `json:"items_count"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PlaylistPage 封装播放列表详情及其一页视频。
type PlaylistPage struct {
	Info   PlaylistInfo       `json:"info"`
	Videos Page[VideoSummary] `json:"videos"`
}

// NewPlaylistInfo 从用户自建播放列表实体构造摘要视图。
func NewPlaylistInfo(p *po.Playlist) *PlaylistInfo {
	id := p.PlaylistID
	return &PlaylistInfo{
		PlaylistID:  &id,
		CreatorID:   p.CreatorID,
		Title:       p.Title,
		Description: p.Description,
		Visibility:  string(p.Visibility),
		ItemsCount:  p.ItemsCount,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewSpecialPlaylistInfo 从特殊播放列表实体构造摘要视图。
func NewSpecialPlaylistInfo(p *po.SpecialPlaylist) *PlaylistInfo {
	return &PlaylistInfo{
		CreatorID:  p.CreatorID,
		Kind:       string(p.Kind),
		Title:      specialPlaylistTitle(p.Kind),
		ItemsCount: p.ItemsCount,
		UpdatedAt:  p.UpdatedAt,
	}
}

func specialPlaylistTitle(kind po.SpecialPlaylistKind) string {
	switch kind {
	case po.SpecialPlaylistLiked:
		return "Liked videos"
	case po.SpecialPlaylistDisliked:
		return "Disliked videos"
	case po.SpecialPlaylistWatchLater:
		return "Watch later"
	default:
		return string(kind)
	}
}
