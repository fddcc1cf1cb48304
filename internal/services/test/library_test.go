package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

func newLibraryUsecase(videos *videoRepoStub, playlists *playlistStoreStub, specials *specialStoreStub, metrics *metricsStoreStub) *services.LibraryUsecase {
	logger := log.NewStdLogger(io.Discard)
	return services.NewLibraryUsecase(videos, playlists, specials, metrics, noopTxManager{}, logger)
}

func playlistKey(playlistID uuid.UUID) services.CollectionKey {
	return services.CollectionKey{PlaylistID: &playlistID}
}

func TestAddToPlaylistAdjustsItemsCount(t *testing.T) {
	userID := uuid.New()
	video := activeVideo(uuid.New())
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: userID, Title: "watchlist", Visibility: po.VisibilityPrivate}
	playlists := newPlaylistStoreStub(playlist)
	uc := newLibraryUsecase(newVideoRepoStub(video), playlists, newSpecialStoreStub(), newMetricsStoreStub())

	info, err := uc.AddToCollection(context.Background(), userID, playlistKey(playlist.PlaylistID), video.VideoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PlaylistID == nil || *info.PlaylistID != playlist.PlaylistID {
		t.Fatal("expected playlist info for the target playlist")
	}
	if info.ItemsCount != 1 {
		t.Fatalf("expected items_count 1, got %d", info.ItemsCount)
	}
	if !playlists.members[playlist.PlaylistID][video.VideoID] {
		t.Fatal("expected membership row")
	}
}

func TestAddToPlaylistForbidden(t *testing.T) {
	video := activeVideo(uuid.New())
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: uuid.New(), Title: "watchlist"}
	uc := newLibraryUsecase(newVideoRepoStub(video), newPlaylistStoreStub(playlist), newSpecialStoreStub(), newMetricsStoreStub())

	_, err := uc.AddToCollection(context.Background(), uuid.New(), playlistKey(playlist.PlaylistID), video.VideoID)
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 403 || e.Reason != services.ReasonPlaylistForbidden {
		t.Fatalf("expected 403 %s, got %d %s", services.ReasonPlaylistForbidden, e.Code, e.Reason)
	}
}

func TestAddToPlaylistDuplicate(t *testing.T) {
	userID := uuid.New()
	video := activeVideo(uuid.New())
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: userID, Title: "watchlist"}
	playlists := newPlaylistStoreStub(playlist)
	playlists.members[playlist.PlaylistID] = map[uuid.UUID]bool{video.VideoID: true}
	uc := newLibraryUsecase(newVideoRepoStub(video), playlists, newSpecialStoreStub(), newMetricsStoreStub())

	_, err := uc.AddToCollection(context.Background(), userID, playlistKey(playlist.PlaylistID), video.VideoID)
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 409 || e.Reason != services.ReasonAlreadyInPlaylist {
		t.Fatalf("expected 409 %s, got %d %s", services.ReasonAlreadyInPlaylist, e.Code, e.Reason)
	}
}

func TestAddToPlaylistVideoNotFound(t *testing.T) {
	userID := uuid.New()
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: userID, Title: "watchlist"}
	uc := newLibraryUsecase(newVideoRepoStub(), newPlaylistStoreStub(playlist), newSpecialStoreStub(), newMetricsStoreStub())

	_, err := uc.AddToCollection(context.Background(), userID, playlistKey(playlist.PlaylistID), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 404 || e.Reason != services.ReasonVideoNotFound {
		t.Fatalf("expected 404 %s, got %d %s", services.ReasonVideoNotFound, e.Code, e.Reason)
	}
}

func TestAddToPlaylistMissing(t *testing.T) {
	video := activeVideo(uuid.New())
	uc := newLibraryUsecase(newVideoRepoStub(video), newPlaylistStoreStub(), newSpecialStoreStub(), newMetricsStoreStub())

	_, err := uc.AddToCollection(context.Background(), uuid.New(), playlistKey(uuid.New()), video.VideoID)
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 404 || e.Reason != services.ReasonPlaylistNotFound {
		t.Fatalf("expected 404 %s, got %d %s", services.ReasonPlaylistNotFound, e.Code, e.Reason)
	}
}

func TestAddToWatchLater(t *testing.T) {
	userID := uuid.New()
	video := activeVideo(uuid.New())
	specials := newSpecialStoreStub()
	metrics := newMetricsStoreStub()
	uc := newLibraryUsecase(newVideoRepoStub(video), newPlaylistStoreStub(), specials, metrics)

	key, err := services.ParseCollectionKey("WL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := uc.AddToCollection(context.Background(), userID, key, video.VideoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Kind != string(po.SpecialPlaylistWatchLater) {
		t.Fatalf("unexpected kind: %s", info.Kind)
	}
	if info.ItemsCount != 1 {
		t.Fatalf("expected items_count 1, got %d", info.ItemsCount)
	}
	if len(metrics.applied) != 0 {
		t.Fatal("watch later must not touch vote counters")
	}
}

func TestAddToLikedDelegatesToVoteMachine(t *testing.T) {
	userID := uuid.New()
	video := activeVideo(uuid.New())
	specials := newSpecialStoreStub()
	metrics := newMetricsStoreStub(&po.VideoMetrics{VideoID: video.VideoID})
	uc := newLibraryUsecase(newVideoRepoStub(video), newPlaylistStoreStub(), specials, metrics)

	key, err := services.ParseCollectionKey("LL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := uc.AddToCollection(context.Background(), userID, key, video.VideoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Kind != string(po.SpecialPlaylistLiked) {
		t.Fatalf("unexpected kind: %s", info.Kind)
	}
	if len(metrics.applied) != 1 || metrics.applied[0].LikeDelta != 1 {
		t.Fatalf("expected like delta application, got %+v", metrics.applied)
	}
}

func TestRemoveFromPlaylistNotPresent(t *testing.T) {
	userID := uuid.New()
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: userID, Title: "watchlist"}
	uc := newLibraryUsecase(newVideoRepoStub(), newPlaylistStoreStub(playlist), newSpecialStoreStub(), newMetricsStoreStub())

	_, err := uc.RemoveFromCollection(context.Background(), userID, playlistKey(playlist.PlaylistID), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 404 || e.Reason != services.ReasonNotInPlaylist {
		t.Fatalf("expected 404 %s, got %d %s", services.ReasonNotInPlaylist, e.Code, e.Reason)
	}
}

func TestRemoveFromLiked(t *testing.T) {
	userID := uuid.New()
	videoID := uuid.New()
	specials := newSpecialStoreStub()
	specials.seed(userID, po.SpecialPlaylistLiked, videoID)
	metrics := newMetricsStoreStub(&po.VideoMetrics{VideoID: videoID, LikesCount: 1})
	uc := newLibraryUsecase(newVideoRepoStub(), newPlaylistStoreStub(), specials, metrics)

	key, _ := services.ParseCollectionKey("LL")
	info, err := uc.RemoveFromCollection(context.Background(), userID, key, videoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ItemsCount != 0 {
		t.Fatalf("expected items_count 0, got %d", info.ItemsCount)
	}
	if len(metrics.applied) != 1 || metrics.applied[0].LikeDelta != -1 {
		t.Fatalf("expected like revocation delta, got %+v", metrics.applied)
	}
}

func TestRemoveFromLikedNotVoted(t *testing.T) {
	metrics := newMetricsStoreStub()
	uc := newLibraryUsecase(newVideoRepoStub(), newPlaylistStoreStub(), newSpecialStoreStub(), metrics)

	key, _ := services.ParseCollectionKey("LL")
	_, err := uc.RemoveFromCollection(context.Background(), uuid.New(), key, uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 404 || e.Reason != services.ReasonNotInPlaylist {
		t.Fatalf("expected 404 %s, got %d %s", services.ReasonNotInPlaylist, e.Code, e.Reason)
	}
	if len(metrics.applied) != 0 {
		t.Fatal("no counters should change when membership is absent")
	}
}

func TestRemoveFromDislikedDoesNotTouchLiked(t *testing.T) {
	userID := uuid.New()
	videoID := uuid.New()
	specials := newSpecialStoreStub()
	specials.seed(userID, po.SpecialPlaylistLiked, videoID)
	metrics := newMetricsStoreStub(&po.VideoMetrics{VideoID: videoID, LikesCount: 1})
	uc := newLibraryUsecase(newVideoRepoStub(), newPlaylistStoreStub(), specials, metrics)

	key, _ := services.ParseCollectionKey("DL")
	_, err := uc.RemoveFromCollection(context.Background(), userID, key, videoID)
	if err == nil {
		t.Fatal("expected error")
	}
	if e := errors.FromError(err); e.Reason != services.ReasonNotInPlaylist {
		t.Fatalf("expected %s, got %s", services.ReasonNotInPlaylist, e.Reason)
	}
	if !specials.members[specialKey{userID, po.SpecialPlaylistLiked}][videoID] {
		t.Fatal("liked membership must stay intact")
	}
}

func TestParseCollectionKey(t *testing.T) {
	cases := map[string]po.SpecialPlaylistKind{
		"LL":   po.SpecialPlaylistLiked,
		"dl":   po.SpecialPlaylistDisliked,
		" wl ": po.SpecialPlaylistWatchLater,
	}
	for raw, want := range cases {
		key, err := services.ParseCollectionKey(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !key.IsSpecial() || key.Special != want {
			t.Fatalf("unexpected key for %q: %+v", raw, key)
		}
	}

	id := uuid.New()
	key, err := services.ParseCollectionKey(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.IsSpecial() || *key.PlaylistID != id {
		t.Fatalf("unexpected key: %+v", key)
	}

	if _, err := services.ParseCollectionKey("not-a-key"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}
