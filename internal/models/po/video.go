// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，不直接暴露给上层业务逻辑。
package po

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus 表示视频在本服务中的注册状态。
type VideoStatus string

// 视频状态常量定义
const (
	VideoStatusActive       VideoStatus = "active"       // 已注册，可参与播放列表/投票
	VideoStatusUnregistered VideoStatus = "unregistered" // 已注销，只读且不可恢复
)

// VideoVisibility 表示视频对外可见性。
type VideoVisibility string

// 可见性常量定义
const (
	VisibilityPublic   VideoVisibility = "public"
	VisibilityUnlisted VideoVisibility = "unlisted"
	VisibilityPrivate  VideoVisibility = "private"
)

// Video 表示 library.videos 表的数据库实体。
// 这是 catalog 服务视频元数据在本服务内的本地投影，由事件流维护。
type Video struct {
	VideoID             uuid.UUID       `db:"video_id"`              // 主键（与 catalog 服务共享）
	CreatorID           uuid.UUID       `db:"creator_id"`            // 创作者用户 ID
	Title               string          `db:"title"`                 // 视频标题
	Description         *string         `db:"description"`           // 视频描述（可选）
	ThumbnailURL        *string         `db:"thumbnail_url"`         // 缩略图 URL
	PreviewThumbnailURL *string         `db:"preview_thumbnail_url"` // 预览缩略图 URL
	LengthSeconds       int32           `db:"length_seconds"`        // 视频时长（秒）
	Visibility          VideoVisibility `db:"visibility"`            // 可见性
	Status              VideoStatus     `db:"status"`                // 注册状态
	CreatedAt           time.Time       `db:"created_at"`            // 记录创建时间
	UpdatedAt           time.Time       `db:"updated_at"`            // 最近更新时间
}

// Registered 返回视频是否仍处于注册状态。
func (v *Video) Registered() bool {
	return v != nil && v.Status == VideoStatusActive
}
