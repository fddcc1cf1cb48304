package vo_test

import (
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoSummary(t *testing.T) {
	now := time.Now().UTC()
	video := &po.Video{
		VideoID:       uuid.New(),
		CreatorID:     uuid.New(),
		Title:         "测试视频",
		ThumbnailURL:  stringPtr("https://cdn.example.com/thumb.jpg"),
		LengthSeconds: 90,
		CreatedAt:     now,
	}
	metrics := &po.VideoMetrics{VideoID: video.VideoID, ViewsCount: 12, LikesCount: 3}

	summary := vo.NewVideoSummary(video, metrics)
	assert.Equal(t, video.VideoID, summary.VideoID)
	assert.Equal(t, "测试视频", summary.Title)
	assert.Equal(t, int64(12), summary.ViewsCount)
	assert.Equal(t, int64(3), summary.LikesCount)

	// 缺失计数行时退化为零值
	summary = vo.NewVideoSummary(video, nil)
	assert.Equal(t, int64(0), summary.ViewsCount)
	assert.Equal(t, int64(0), summary.LikesCount)
}

func TestNewVideoMetadata(t *testing.T) {
	metrics := &po.VideoMetrics{VideoID: uuid.New(), ViewsCount: 100, LikesCount: 10, DislikesCount: 2}

	metadata := vo.NewVideoMetadata(metrics, po.VoteLiked)
	require.NotNil(t, metadata)
	assert.Equal(t, metrics.VideoID, metadata.VideoID)
	assert.Equal(t, int64(100), metadata.ViewsCount)
	assert.Equal(t, "Liked", metadata.UserVote)

	assert.Nil(t, vo.NewVideoMetadata(nil, po.VoteNone))
}

func TestNewSpecialPlaylistInfo(t *testing.T) {
	special := &po.SpecialPlaylist{
		CreatorID:  uuid.New(),
		Kind:       po.SpecialPlaylistWatchLater,
		ItemsCount: 5,
	}

	info := vo.NewSpecialPlaylistInfo(special)
	assert.Nil(t, info.PlaylistID)
	assert.Equal(t, "watch_later", info.Kind)
	assert.Equal(t, "Watch later", info.Title)
	assert.Equal(t, int64(5), info.ItemsCount)
}

func stringPtr(s string) *string {
	return &s
}
