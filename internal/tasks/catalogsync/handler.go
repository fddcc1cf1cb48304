package catalogsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// 支持的事件类型。
const (
	eventTypeUpsertVideo     = "upsert_video"
	eventTypeUnregisterVideo = "unregister_video"
	eventTypeSyncViewMetrics = "sync_view_metrics"
)

type videoStore interface {
	Upsert(ctx context.Context, sess txmanager.Session, input repositories.UpsertVideoInput) (*po.Video, bool, error)
	Unregister(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (bool, error)
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
}

var _ videoStore = (*repositories.VideoRepository)(nil)

type metricsStore interface {
	EnsureExists(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
	SyncViews(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, viewsCount int64, updatedAt time.Time) (bool, error)
}

var _ metricsStore = (*repositories.VideoMetricsRepository)(nil)

// EventHandler 将 catalog 事件应用到本地投影。
//
// 幂等性由两层保证：inbox 表对 event_id 去重，SQL 层对乱序事件做
// last-write-wins 守卫。落后于已存储状态的事件在此静默丢弃。
type EventHandler struct {
	videos  videoStore
	metrics metricsStore
	log     *log.Helper
	stats   *syncMetrics
	clock   func() time.Time
}

// NewEventHandler 构造 catalog 事件处理器。
func NewEventHandler(videos videoStore, metrics metricsStore, logger log.Logger, stats *syncMetrics) *EventHandler {
	if logger == nil {
		logger = log.NewStdLogger(nil)
	}
	return &EventHandler{
		videos:  videos,
		metrics: metrics,
		log:     log.NewHelper(logger),
		stats:   stats,
		clock:   time.Now,
	}
}

// Handle 按事件类型分发处理。未知类型直接跳过并 ACK。
func (h *EventHandler) Handle(ctx context.Context, sess txmanager.Session, evt *Event, inboxEvt *store.InboxEvent) error {
	if evt == nil || len(evt.Payload) == 0 {
		return fmt.Errorf("catalogsync: empty event payload")
	}
	if inboxEvt == nil {
		return fmt.Errorf("catalogsync: inbox event metadata missing")
	}

	eventType := strings.TrimSpace(inboxEvt.EventType)
	var err error
	switch eventType {
	case eventTypeUpsertVideo:
		err = h.handleUpsert(ctx, sess, evt.Payload)
	case eventTypeUnregisterVideo:
		err = h.handleUnregister(ctx, sess, evt.Payload)
	case eventTypeSyncViewMetrics:
		err = h.handleSyncViews(ctx, sess, evt.Payload)
	default:
		h.log.WithContext(ctx).Debugf("catalogsync: skip unsupported event type %s", eventType)
		return nil
	}
	if err != nil {
		h.stats.recordFailure(ctx, eventType, err)
	}
	return err
}

type upsertVideoPayload struct {
	VideoID             string    `json:"video_id"`
	CreatorID           string    `json:"creator_id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description,omitempty"`
	ThumbnailURL        *string   `json:"thumbnail_url,omitempty"`
	PreviewThumbnailURL *string   `json:"preview_thumbnail_url,omitempty"`
	LengthSeconds       int32     `json:"length_seconds"`
	Visibility          string    `json:"visibility"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (h *EventHandler) handleUpsert(ctx context.Context, sess txmanager.Session, payload []byte) error {
	var msg upsertVideoPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("catalogsync: unmarshal upsert_video: %w", err)
	}
	videoID, err := uuid.Parse(strings.TrimSpace(msg.VideoID))
	if err != nil {
		return fmt.Errorf("catalogsync: invalid video_id: %w", err)
	}
	creatorID, err := uuid.Parse(strings.TrimSpace(msg.CreatorID))
	if err != nil {
		return fmt.Errorf("catalogsync: invalid creator_id: %w", err)
	}
	visibility, err := parseVisibility(msg.Visibility)
	if err != nil {
		return err
	}
	updatedAt := msg.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = h.clock().UTC()
	}

	video, applied, err := h.videos.Upsert(ctx, sess, repositories.UpsertVideoInput{
		VideoID:             videoID,
		CreatorID:           creatorID,
		Title:               msg.Title,
		Description:         msg.Description,
		ThumbnailURL:        msg.ThumbnailURL,
		PreviewThumbnailURL: msg.PreviewThumbnailURL,
		LengthSeconds:       msg.LengthSeconds,
		Visibility:          visibility,
		UpdatedAt:           updatedAt,
	})
	if err != nil {
		return err
	}
	if !applied {
		// 已注销的视频不再接受元数据更新。
		h.log.WithContext(ctx).Debugf("catalogsync: skip upsert for unregistered video_id=%s", videoID)
		return nil
	}

	if err := h.metrics.EnsureExists(ctx, sess, videoID); err != nil {
		return err
	}
	h.stats.recordSuccess(ctx, eventTypeUpsertVideo, updatedAt, h.clock())
	h.log.WithContext(ctx).Infof("catalogsync: upserted video_id=%s title=%q", video.VideoID, video.Title)
	return nil
}

type unregisterVideoPayload struct {
	VideoID string `json:"video_id"`
}

func (h *EventHandler) handleUnregister(ctx context.Context, sess txmanager.Session, payload []byte) error {
	var msg unregisterVideoPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("catalogsync: unmarshal unregister_video: %w", err)
	}
	videoID, err := uuid.Parse(strings.TrimSpace(msg.VideoID))
	if err != nil {
		return fmt.Errorf("catalogsync: invalid video_id: %w", err)
	}

	applied, err := h.videos.Unregister(ctx, sess, videoID)
	if err != nil {
		return err
	}
	if !applied {
		// 注销是单向迁移，重复注销与未知视频均为 no-op。
		h.log.WithContext(ctx).Debugf("catalogsync: skip unregister for video_id=%s", videoID)
		return nil
	}
	h.stats.recordSuccess(ctx, eventTypeUnregisterVideo, h.clock(), h.clock())
	h.log.WithContext(ctx).Infof("catalogsync: unregistered video_id=%s", videoID)
	return nil
}

type syncViewMetricsPayload struct {
	VideoID    string    `json:"video_id"`
	ViewsCount int64     `json:"views_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *EventHandler) handleSyncViews(ctx context.Context, sess txmanager.Session, payload []byte) error {
	var msg syncViewMetricsPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("catalogsync: unmarshal sync_view_metrics: %w", err)
	}
	videoID, err := uuid.Parse(strings.TrimSpace(msg.VideoID))
	if err != nil {
		return fmt.Errorf("catalogsync: invalid video_id: %w", err)
	}
	if msg.ViewsCount < 0 {
		return fmt.Errorf("catalogsync: negative views_count %d", msg.ViewsCount)
	}
	updatedAt := msg.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		return fmt.Errorf("catalogsync: sync_view_metrics missing updated_at")
	}

	video, err := h.videos.Get(ctx, sess, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			h.log.WithContext(ctx).Debugf("catalogsync: skip view sync for unknown video_id=%s", videoID)
			return nil
		}
		return err
	}
	if !video.Registered() {
		h.log.WithContext(ctx).Debugf("catalogsync: skip view sync for unregistered video_id=%s", videoID)
		return nil
	}

	applied, err := h.metrics.SyncViews(ctx, sess, videoID, msg.ViewsCount, updatedAt)
	if err != nil {
		return err
	}
	if !applied {
		h.log.WithContext(ctx).Debugf("catalogsync: skip stale view sync video_id=%s updated_at=%s", videoID, updatedAt)
		return nil
	}
	h.stats.recordSuccess(ctx, eventTypeSyncViewMetrics, updatedAt, h.clock())
	h.log.WithContext(ctx).Infof("catalogsync: synced views video_id=%s views=%d", videoID, msg.ViewsCount)
	return nil
}

func parseVisibility(raw string) (po.VideoVisibility, error) {
	val := po.VideoVisibility(strings.TrimSpace(strings.ToLower(raw)))
	switch val {
	case po.VisibilityPublic, po.VisibilityUnlisted, po.VisibilityPrivate:
		return val, nil
	case "":
		return po.VisibilityPrivate, nil
	default:
		return "", fmt.Errorf("catalogsync: invalid visibility %q", raw)
	}
}
