package po

import (
	"time"

	"github.com/google/uuid"
)

// SpecialPlaylistKind 表示系统托管的特殊播放列表类型。
// 每个用户每种类型至多一个，按 (creator_id, kind) 唯一。
type SpecialPlaylistKind string

// 特殊播放列表类型常量定义
const (
	SpecialPlaylistLiked      SpecialPlaylistKind = "liked"
	SpecialPlaylistDisliked   SpecialPlaylistKind = "disliked"
	SpecialPlaylistWatchLater SpecialPlaylistKind = "watch_later"
)

// VoteState 表示用户对某个视频的投票状态，由 liked/disliked 集合成员关系推导。
type VoteState string

// 投票状态常量定义
const (
	VoteNone     VoteState = "None"
	VoteLiked    VoteState = "Liked"
	VoteDisliked VoteState = "Disliked"
)

// Playlist 表示 library.playlists 表的用户自建播放列表。
// ItemsCount 是去范式化计数，必须与 playlist_items 基数在同一事务内保持一致。
type Playlist struct {
	PlaylistID  uuid.UUID       `db:"playlist_id"`
	CreatorID   uuid.UUID       `db:"creator_id"`
	Title       string          `db:"title"`
	Description *string         `db:"description"`
	Visibility  VideoVisibility `db:"visibility"`
	ItemsCount  int64           `db:"items_count"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// PlaylistItem 表示 library.playlist_items 表的成员关系行。
type PlaylistItem struct {
	PlaylistID uuid.UUID `db:"playlist_id"`
	VideoID    uuid.UUID `db:"video_id"`
	AddedAt    time.Time `db:"added_at"`
}

// SpecialPlaylist 表示 library.special_playlists 表的记录，首次写入时惰性创建。
type SpecialPlaylist struct {
	CreatorID  uuid.UUID           `db:"creator_id"`
	Kind       SpecialPlaylistKind `db:"kind"`
	ItemsCount int64               `db:"items_count"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

// SpecialPlaylistItem 表示 library.special_playlist_items 表的成员关系行。
type SpecialPlaylistItem struct {
	CreatorID uuid.UUID           `db:"creator_id"`
	Kind      SpecialPlaylistKind `db:"kind"`
	VideoID   uuid.UUID           `db:"video_id"`
	AddedAt   time.Time           `db:"added_at"`
}
