package catalogsync_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/tasks/catalogsync"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestEventHandlerUpsertCreatesProjection(t *testing.T) {
	videos := newFakeVideoRepository()
	metrics := newFakeMetricsRepository()
	handler := catalogsync.NewEventHandler(videos, metrics, log.NewStdLogger(io.Discard), nil)

	ctx := context.Background()
	sess := fakeSession{}
	videoID := uuid.New()
	creatorID := uuid.New()
	updatedAt := time.Now().Add(-time.Minute).UTC()

	evt := marshalEvent(t, map[string]any{
		"video_id":       videoID.String(),
		"creator_id":     creatorID.String(),
		"title":          "First upload",
		"length_seconds": 120,
		"visibility":     "public",
		"updated_at":     updatedAt,
	})
	require.NoError(t, handler.Handle(ctx, sess, evt, &store.InboxEvent{EventType: "upsert_video"}))

	video, ok := videos.get(videoID)
	require.True(t, ok)
	require.Equal(t, "First upload", video.Title)
	require.Equal(t, po.VisibilityPublic, video.Visibility)
	require.Equal(t, po.VideoStatusActive, video.Status)
	require.True(t, metrics.has(videoID), "counter row must be created with the projection")

	// Replays with newer metadata overwrite the stored row.
	evt = marshalEvent(t, map[string]any{
		"video_id":       videoID.String(),
		"creator_id":     creatorID.String(),
		"title":          "Renamed upload",
		"length_seconds": 120,
		"visibility":     "unlisted",
		"updated_at":     updatedAt.Add(time.Minute),
	})
	require.NoError(t, handler.Handle(ctx, sess, evt, &store.InboxEvent{EventType: "upsert_video"}))

	video, _ = videos.get(videoID)
	require.Equal(t, "Renamed upload", video.Title)
	require.Equal(t, po.VisibilityUnlisted, video.Visibility)
}

func TestEventHandlerUpsertSkipsUnregisteredVideo(t *testing.T) {
	videos := newFakeVideoRepository()
	metrics := newFakeMetricsRepository()
	handler := catalogsync.NewEventHandler(videos, metrics, log.NewStdLogger(io.Discard), nil)

	videoID := uuid.New()
	videos.seed(&po.Video{VideoID: videoID, Title: "gone", Status: po.VideoStatusUnregistered})

	evt := marshalEvent(t, map[string]any{
		"video_id":   videoID.String(),
		"creator_id": uuid.New().String(),
		"title":      "resurrected",
		"visibility": "public",
		"updated_at": time.Now().UTC(),
	})
	require.NoError(t, handler.Handle(context.Background(), fakeSession{}, evt, &store.InboxEvent{EventType: "upsert_video"}))

	video, _ := videos.get(videoID)
	require.Equal(t, "gone", video.Title, "unregistered projection must stay frozen")
	require.False(t, metrics.has(videoID))
}

func TestEventHandlerUnregisterIsOneWay(t *testing.T) {
	videos := newFakeVideoRepository()
	handler := catalogsync.NewEventHandler(videos, newFakeMetricsRepository(), log.NewStdLogger(io.Discard), nil)

	ctx := context.Background()
	videoID := uuid.New()
	videos.seed(&po.Video{VideoID: videoID, Title: "demo", Status: po.VideoStatusActive})

	evt := marshalEvent(t, map[string]any{"video_id": videoID.String()})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, evt, &store.InboxEvent{EventType: "unregister_video"}))

	video, _ := videos.get(videoID)
	require.Equal(t, po.VideoStatusUnregistered, video.Status)

	// Redelivery and unknown videos are both no-ops.
	require.NoError(t, handler.Handle(ctx, fakeSession{}, evt, &store.InboxEvent{EventType: "unregister_video"}))
	unknown := marshalEvent(t, map[string]any{"video_id": uuid.New().String()})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, unknown, &store.InboxEvent{EventType: "unregister_video"}))
}

func TestEventHandlerSyncViewsLastWriteWins(t *testing.T) {
	videos := newFakeVideoRepository()
	metrics := newFakeMetricsRepository()
	handler := catalogsync.NewEventHandler(videos, metrics, log.NewStdLogger(io.Discard), nil)

	ctx := context.Background()
	videoID := uuid.New()
	videos.seed(&po.Video{VideoID: videoID, Status: po.VideoStatusActive})
	baseTime := time.Now().Add(-10 * time.Minute).UTC()

	evt := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": 100,
		"updated_at":  baseTime,
	})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, evt, &store.InboxEvent{EventType: "sync_view_metrics"}))
	require.Equal(t, int64(100), metrics.views(videoID))

	// Out-of-order delivery: an older snapshot must not win.
	stale := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": 50,
		"updated_at":  baseTime.Add(-time.Minute),
	})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, stale, &store.InboxEvent{EventType: "sync_view_metrics"}))
	require.Equal(t, int64(100), metrics.views(videoID))

	newer := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": 250,
		"updated_at":  baseTime.Add(time.Minute),
	})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, newer, &store.InboxEvent{EventType: "sync_view_metrics"}))
	require.Equal(t, int64(250), metrics.views(videoID))
}

func TestEventHandlerSyncViewsSkipsUnknownAndUnregistered(t *testing.T) {
	videos := newFakeVideoRepository()
	metrics := newFakeMetricsRepository()
	handler := catalogsync.NewEventHandler(videos, metrics, log.NewStdLogger(io.Discard), nil)

	ctx := context.Background()
	unknown := marshalEvent(t, map[string]any{
		"video_id":    uuid.New().String(),
		"views_count": 10,
		"updated_at":  time.Now().UTC(),
	})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, unknown, &store.InboxEvent{EventType: "sync_view_metrics"}))

	videoID := uuid.New()
	videos.seed(&po.Video{VideoID: videoID, Status: po.VideoStatusUnregistered})
	evt := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": 10,
		"updated_at":  time.Now().UTC(),
	})
	require.NoError(t, handler.Handle(ctx, fakeSession{}, evt, &store.InboxEvent{EventType: "sync_view_metrics"}))
	require.Equal(t, int64(0), metrics.views(videoID))
}

func TestEventHandlerSyncViewsRejectsInvalidPayload(t *testing.T) {
	videos := newFakeVideoRepository()
	handler := catalogsync.NewEventHandler(videos, newFakeMetricsRepository(), log.NewStdLogger(io.Discard), nil)

	videoID := uuid.New()
	videos.seed(&po.Video{VideoID: videoID, Status: po.VideoStatusActive})

	negative := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": -5,
		"updated_at":  time.Now().UTC(),
	})
	err := handler.Handle(context.Background(), fakeSession{}, negative, &store.InboxEvent{EventType: "sync_view_metrics"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative views_count")

	missingTimestamp := marshalEvent(t, map[string]any{
		"video_id":    videoID.String(),
		"views_count": 5,
	})
	err = handler.Handle(context.Background(), fakeSession{}, missingTimestamp, &store.InboxEvent{EventType: "sync_view_metrics"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing updated_at")
}

func TestEventHandlerUpsertRejectsInvalidVisibility(t *testing.T) {
	handler := catalogsync.NewEventHandler(newFakeVideoRepository(), newFakeMetricsRepository(), log.NewStdLogger(io.Discard), nil)

	evt := marshalEvent(t, map[string]any{
		"video_id":   uuid.New().String(),
		"creator_id": uuid.New().String(),
		"title":      "demo",
		"visibility": "internal",
		"updated_at": time.Now().UTC(),
	})
	err := handler.Handle(context.Background(), fakeSession{}, evt, &store.InboxEvent{EventType: "upsert_video"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid visibility")
}

func TestEventHandlerSkipsUnknownEventType(t *testing.T) {
	handler := catalogsync.NewEventHandler(newFakeVideoRepository(), newFakeMetricsRepository(), log.NewStdLogger(io.Discard), nil)

	evt := marshalEvent(t, map[string]any{"anything": true})
	require.NoError(t, handler.Handle(context.Background(), fakeSession{}, evt, &store.InboxEvent{EventType: "catalog.something.else"}))
}

func TestEventHandlerRejectsEmptyEvent(t *testing.T) {
	handler := catalogsync.NewEventHandler(newFakeVideoRepository(), newFakeMetricsRepository(), log.NewStdLogger(io.Discard), nil)

	err := handler.Handle(context.Background(), fakeSession{}, &catalogsync.Event{}, &store.InboxEvent{EventType: "upsert_video"})
	require.Error(t, err)
}

// ---- Test Doubles ----

type fakeVideoRepository struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*po.Video
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{videos: make(map[uuid.UUID]*po.Video)}
}

func (f *fakeVideoRepository) seed(video *po.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos[video.VideoID] = video
}

func (f *fakeVideoRepository) get(videoID uuid.UUID) (po.Video, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	video, ok := f.videos[videoID]
	if !ok {
		return po.Video{}, false
	}
	return *video, true
}

func (f *fakeVideoRepository) Upsert(_ context.Context, _ txmanager.Session, input repositories.UpsertVideoInput) (*po.Video, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.videos[input.VideoID]; ok && existing.Status == po.VideoStatusUnregistered {
		return nil, false, nil
	}
	video := &po.Video{
		VideoID:             input.VideoID,
		CreatorID:           input.CreatorID,
		Title:               input.Title,
		Description:         input.Description,
		ThumbnailURL:        input.ThumbnailURL,
		PreviewThumbnailURL: input.PreviewThumbnailURL,
		LengthSeconds:       input.LengthSeconds,
		Visibility:          input.Visibility,
		Status:              po.VideoStatusActive,
		UpdatedAt:           input.UpdatedAt,
	}
	f.videos[input.VideoID] = video
	copied := *video
	return &copied, true, nil
}

func (f *fakeVideoRepository) Unregister(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	video, ok := f.videos[videoID]
	if !ok || video.Status == po.VideoStatusUnregistered {
		return false, nil
	}
	video.Status = po.VideoStatusUnregistered
	return true, nil
}

func (f *fakeVideoRepository) Get(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	video, ok := f.videos[videoID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	copied := *video
	return &copied, nil
}

type fakeMetricsRepository struct {
	rows map[uuid.UUID]*po.VideoMetrics
}

func newFakeMetricsRepository() *fakeMetricsRepository {
	return &fakeMetricsRepository{rows: make(map[uuid.UUID]*po.VideoMetrics)}
}

func (f *fakeMetricsRepository) has(videoID uuid.UUID) bool {
	_, ok := f.rows[videoID]
	return ok
}

func (f *fakeMetricsRepository) views(videoID uuid.UUID) int64 {
	row, ok := f.rows[videoID]
	if !ok {
		return 0
	}
	return row.ViewsCount
}

func (f *fakeMetricsRepository) EnsureExists(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if _, ok := f.rows[videoID]; !ok {
		f.rows[videoID] = &po.VideoMetrics{VideoID: videoID}
	}
	return nil
}

func (f *fakeMetricsRepository) SyncViews(_ context.Context, _ txmanager.Session, videoID uuid.UUID, viewsCount int64, updatedAt time.Time) (bool, error) {
	row, ok := f.rows[videoID]
	if !ok {
		row = &po.VideoMetrics{VideoID: videoID}
		f.rows[videoID] = row
	}
	if row.ViewsCountUpdatedAt != nil && !updatedAt.After(*row.ViewsCountUpdatedAt) {
		return false, nil
	}
	row.ViewsCount = viewsCount
	ts := updatedAt
	row.ViewsCountUpdatedAt = &ts
	return true, nil
}

type fakeSession struct{}

func (fakeSession) Tx() pgx.Tx { return nil }

func (fakeSession) Context() context.Context { return context.Background() }

func marshalEvent(t *testing.T, payload map[string]any) *catalogsync.Event {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return &catalogsync.Event{Payload: data}
}
