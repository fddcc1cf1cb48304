package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

func newLibraryQueryService(playlists *playlistStoreStub, specials *specialStoreStub) *services.LibraryQueryService {
	logger := log.NewStdLogger(io.Discard)
	return services.NewLibraryQueryService(playlists, specials, noopTxManager{}, logger)
}

func TestGetSpecialPlaylistRequiresAuth(t *testing.T) {
	svc := newLibraryQueryService(newPlaylistStoreStub(), newSpecialStoreStub())

	key, _ := services.ParseCollectionKey("WL")
	_, err := svc.GetPlaylist(context.Background(), uuid.Nil, key, 1, 20)
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 403 || e.Reason != services.ReasonPlaylistForbidden {
		t.Fatalf("expected 403 %s, got %d %s", services.ReasonPlaylistForbidden, e.Code, e.Reason)
	}
}

func TestGetSpecialPlaylist(t *testing.T) {
	userID := uuid.New()
	videoID := uuid.New()
	specials := newSpecialStoreStub()
	specials.seed(userID, po.SpecialPlaylistWatchLater, videoID)
	specials.listRows = []repositories.VideoWithCounts{{
		Video:   &po.Video{VideoID: videoID, CreatorID: uuid.New(), Title: "demo", Status: po.VideoStatusActive},
		Metrics: &po.VideoMetrics{VideoID: videoID, ViewsCount: 5},
	}}
	specials.itemsTotal = 1
	svc := newLibraryQueryService(newPlaylistStoreStub(), specials)

	key, _ := services.ParseCollectionKey("WL")
	page, err := svc.GetPlaylist(context.Background(), userID, key, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Info.Kind != string(po.SpecialPlaylistWatchLater) {
		t.Fatalf("unexpected kind: %s", page.Info.Kind)
	}
	if page.Info.PlaylistID != nil {
		t.Fatal("special playlist must not carry a playlist id")
	}
	if len(page.Videos.List) != 1 || page.Videos.List[0].ViewsCount != 5 {
		t.Fatalf("unexpected videos: %+v", page.Videos.List)
	}
	if page.Videos.Pagination.Total != 1 {
		t.Fatalf("unexpected total: %d", page.Videos.Pagination.Total)
	}
}

func TestGetPrivatePlaylistHiddenFromOthers(t *testing.T) {
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: uuid.New(), Title: "secret", Visibility: po.VisibilityPrivate}
	svc := newLibraryQueryService(newPlaylistStoreStub(playlist), newSpecialStoreStub())

	_, err := svc.GetPlaylist(context.Background(), uuid.New(), playlistKey(playlist.PlaylistID), 1, 20)
	if err == nil {
		t.Fatal("expected error")
	}
	e := errors.FromError(err)
	if e.Code != 404 || e.Reason != services.ReasonPlaylistNotFound {
		t.Fatalf("expected 404 %s, got %d %s", services.ReasonPlaylistNotFound, e.Code, e.Reason)
	}
}

func TestGetUnlistedPlaylistVisibleToAnyone(t *testing.T) {
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: uuid.New(), Title: "shared", Visibility: po.VisibilityUnlisted, ItemsCount: 2}
	playlists := newPlaylistStoreStub(playlist)
	playlists.itemsTotal = 2
	svc := newLibraryQueryService(playlists, newSpecialStoreStub())

	page, err := svc.GetPlaylist(context.Background(), uuid.Nil, playlistKey(playlist.PlaylistID), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Info.PlaylistID == nil || *page.Info.PlaylistID != playlist.PlaylistID {
		t.Fatal("expected playlist info")
	}
	if page.Info.ItemsCount != 2 {
		t.Fatalf("unexpected items_count: %d", page.Info.ItemsCount)
	}
}

func TestGetPrivatePlaylistVisibleToOwner(t *testing.T) {
	creatorID := uuid.New()
	playlist := &po.Playlist{PlaylistID: uuid.New(), CreatorID: creatorID, Title: "mine", Visibility: po.VisibilityPrivate}
	svc := newLibraryQueryService(newPlaylistStoreStub(playlist), newSpecialStoreStub())

	page, err := svc.GetPlaylist(context.Background(), creatorID, playlistKey(playlist.PlaylistID), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Info.Title != "mine" {
		t.Fatalf("unexpected title: %s", page.Info.Title)
	}
}

func TestListPlaylists(t *testing.T) {
	creatorID := uuid.New()
	playlists := newPlaylistStoreStub()
	playlists.total = 25
	playlists.byCreator = []*po.Playlist{
		{PlaylistID: uuid.New(), CreatorID: creatorID, Title: "a", Visibility: po.VisibilityPrivate},
		{PlaylistID: uuid.New(), CreatorID: creatorID, Title: "b", Visibility: po.VisibilityPublic},
	}
	svc := newLibraryQueryService(playlists, newSpecialStoreStub())

	page, err := svc.ListPlaylists(context.Background(), creatorID, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.List) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(page.List))
	}
	if page.Pagination.PageCount != 2 {
		t.Fatalf("expected 2 pages, got %d", page.Pagination.PageCount)
	}
	if page.Pagination.NextPage == nil || *page.Pagination.NextPage != 2 {
		t.Fatal("expected nextPage 2")
	}
}
