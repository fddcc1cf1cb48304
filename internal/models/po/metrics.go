package po

import (
	"time"

	"github.com/google/uuid"
)

// VideoMetrics 表示 library.video_metrics 表的计数快照。
// likes/dislikes 由投票状态机维护，views 由 sync_view_metrics 事件同步。
type VideoMetrics struct {
	VideoID             uuid.UUID  `db:"video_id"`
	ViewsCount          int64      `db:"views_count"`
	LikesCount          int64      `db:"likes_count"`
	DislikesCount       int64      `db:"dislikes_count"`
	ViewsCountUpdatedAt *time.Time `db:"views_count_updated_at"` // 上一次成功应用的 views 事件时间戳
	UpdatedAt           time.Time  `db:"updated_at"`
}
