package services_test

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type noopTxManager struct{}

type noopSession struct{}

func (noopSession) Tx() pgx.Tx               { return nil }
func (noopSession) Context() context.Context { return context.Background() }

func (noopTxManager) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}

func (noopTxManager) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, noopSession{})
}

type videoRepoStub struct {
	videos   map[uuid.UUID]*po.Video
	err      error
	listRows []repositories.VideoWithCounts
	listErr  error
	total    int64
	countErr error
	lastList repositories.ListVideosByCreatorInput
}

func newVideoRepoStub(videos ...*po.Video) *videoRepoStub {
	stub := &videoRepoStub{videos: map[uuid.UUID]*po.Video{}}
	for _, video := range videos {
		stub.videos[video.VideoID] = video
	}
	return stub
}

func (s *videoRepoStub) Get(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	video, ok := s.videos[videoID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	return video, nil
}

func (s *videoRepoStub) ListByCreator(_ context.Context, _ txmanager.Session, input repositories.ListVideosByCreatorInput) ([]repositories.VideoWithCounts, error) {
	s.lastList = input
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

func (s *videoRepoStub) CountByCreator(_ context.Context, _ txmanager.Session, _ uuid.UUID) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

type specialKey struct {
	creator uuid.UUID
	kind    po.SpecialPlaylistKind
}

type specialStoreStub struct {
	lists      map[specialKey]*po.SpecialPlaylist
	members    map[specialKey]map[uuid.UUID]bool
	listRows   []repositories.VideoWithCounts
	itemsTotal int64

	ensureErr error
	getErr    error
	addErr    error
	removeErr error
	adjustErr error
	hasErr    error
	listErr   error
	countErr  error
}

func newSpecialStoreStub() *specialStoreStub {
	return &specialStoreStub{
		lists:   map[specialKey]*po.SpecialPlaylist{},
		members: map[specialKey]map[uuid.UUID]bool{},
	}
}

func (s *specialStoreStub) seed(creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoIDs ...uuid.UUID) {
	key := specialKey{creatorID, kind}
	s.lists[key] = &po.SpecialPlaylist{CreatorID: creatorID, Kind: kind, ItemsCount: int64(len(videoIDs))}
	members := map[uuid.UUID]bool{}
	for _, id := range videoIDs {
		members[id] = true
	}
	s.members[key] = members
}

func (s *specialStoreStub) Ensure(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) error {
	if s.ensureErr != nil {
		return s.ensureErr
	}
	key := specialKey{creatorID, kind}
	if _, ok := s.lists[key]; !ok {
		s.lists[key] = &po.SpecialPlaylist{CreatorID: creatorID, Kind: kind}
	}
	return nil
}

func (s *specialStoreStub) Get(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind) (*po.SpecialPlaylist, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if list, ok := s.lists[specialKey{creatorID, kind}]; ok {
		copied := *list
		return &copied, nil
	}
	return &po.SpecialPlaylist{CreatorID: creatorID, Kind: kind}, nil
}

func (s *specialStoreStub) AddItem(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (*po.SpecialPlaylistItem, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	key := specialKey{creatorID, kind}
	if s.members[key] == nil {
		s.members[key] = map[uuid.UUID]bool{}
	}
	if s.members[key][videoID] {
		return nil, repositories.ErrDuplicatePlaylistItem
	}
	s.members[key][videoID] = true
	return &po.SpecialPlaylistItem{CreatorID: creatorID, Kind: kind, VideoID: videoID}, nil
}

func (s *specialStoreStub) RemoveItem(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	key := specialKey{creatorID, kind}
	if !s.members[key][videoID] {
		return repositories.ErrPlaylistItemNotFound
	}
	delete(s.members[key], videoID)
	return nil
}

func (s *specialStoreStub) AdjustItemsCount(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, delta int64) (*po.SpecialPlaylist, error) {
	if s.adjustErr != nil {
		return nil, s.adjustErr
	}
	key := specialKey{creatorID, kind}
	list, ok := s.lists[key]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	list.ItemsCount += delta
	copied := *list
	return &copied, nil
}

func (s *specialStoreStub) HasItem(_ context.Context, _ txmanager.Session, creatorID uuid.UUID, kind po.SpecialPlaylistKind, videoID uuid.UUID) (bool, error) {
	if s.hasErr != nil {
		return false, s.hasErr
	}
	return s.members[specialKey{creatorID, kind}][videoID], nil
}

func (s *specialStoreStub) ListItems(_ context.Context, _ txmanager.Session, _ uuid.UUID, _ po.SpecialPlaylistKind, _, _ int32) ([]repositories.VideoWithCounts, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

func (s *specialStoreStub) CountItems(_ context.Context, _ txmanager.Session, _ uuid.UUID, _ po.SpecialPlaylistKind) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.itemsTotal, nil
}

type metricsStoreStub struct {
	metrics    map[uuid.UUID]*po.VideoMetrics
	totalViews int64
	applied    []repositories.VoteDelta

	ensureErr error
	getErr    error
	applyErr  error
	totalErr  error
}

func newMetricsStoreStub(rows ...*po.VideoMetrics) *metricsStoreStub {
	stub := &metricsStoreStub{metrics: map[uuid.UUID]*po.VideoMetrics{}}
	for _, row := range rows {
		stub.metrics[row.VideoID] = row
	}
	return stub
}

func (s *metricsStoreStub) EnsureExists(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if s.ensureErr != nil {
		return s.ensureErr
	}
	if _, ok := s.metrics[videoID]; !ok {
		s.metrics[videoID] = &po.VideoMetrics{VideoID: videoID}
	}
	return nil
}

func (s *metricsStoreStub) Get(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*po.VideoMetrics, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	row, ok := s.metrics[videoID]
	if !ok {
		return nil, repositories.ErrMetricsNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *metricsStoreStub) ApplyVoteDeltas(_ context.Context, _ txmanager.Session, videoID uuid.UUID, delta repositories.VoteDelta) (*po.VideoMetrics, error) {
	if s.applyErr != nil {
		return nil, s.applyErr
	}
	row, ok := s.metrics[videoID]
	if !ok {
		return nil, repositories.ErrMetricsNotFound
	}
	s.applied = append(s.applied, delta)
	row.LikesCount += delta.LikeDelta
	row.DislikesCount += delta.DislikeDelta
	copied := *row
	return &copied, nil
}

func (s *metricsStoreStub) TotalViewsByCreator(_ context.Context, _ txmanager.Session, _ uuid.UUID) (int64, error) {
	if s.totalErr != nil {
		return 0, s.totalErr
	}
	return s.totalViews, nil
}

type playlistStoreStub struct {
	playlists  map[uuid.UUID]*po.Playlist
	members    map[uuid.UUID]map[uuid.UUID]bool
	byCreator  []*po.Playlist
	total      int64
	listRows   []repositories.VideoWithCounts
	itemsTotal int64
	deleted    []uuid.UUID

	createErr error
	updateErr error
	deleteErr error
	getErr    error
	addErr    error
	removeErr error
	adjustErr error
	listErr   error
	countErr  error
}

func newPlaylistStoreStub(playlists ...*po.Playlist) *playlistStoreStub {
	stub := &playlistStoreStub{
		playlists: map[uuid.UUID]*po.Playlist{},
		members:   map[uuid.UUID]map[uuid.UUID]bool{},
	}
	for _, playlist := range playlists {
		stub.playlists[playlist.PlaylistID] = playlist
	}
	return stub
}

func (s *playlistStoreStub) Create(_ context.Context, _ txmanager.Session, input repositories.CreatePlaylistInput) (*po.Playlist, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	playlist := &po.Playlist{
		PlaylistID:  input.PlaylistID,
		CreatorID:   input.CreatorID,
		Title:       input.Title,
		Description: input.Description,
		Visibility:  input.Visibility,
	}
	s.playlists[playlist.PlaylistID] = playlist
	copied := *playlist
	return &copied, nil
}

func (s *playlistStoreStub) Update(_ context.Context, _ txmanager.Session, input repositories.UpdatePlaylistInput) (*po.Playlist, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	playlist, ok := s.playlists[input.PlaylistID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	if input.Title != nil {
		playlist.Title = *input.Title
	}
	if input.Description != nil {
		playlist.Description = input.Description
	}
	if input.Visibility != nil {
		playlist.Visibility = po.VideoVisibility(*input.Visibility)
	}
	copied := *playlist
	return &copied, nil
}

func (s *playlistStoreStub) Delete(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.playlists[playlistID]; !ok {
		return repositories.ErrPlaylistNotFound
	}
	delete(s.playlists, playlistID)
	s.deleted = append(s.deleted, playlistID)
	return nil
}

func (s *playlistStoreStub) Get(_ context.Context, _ txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	playlist, ok := s.playlists[playlistID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	copied := *playlist
	return &copied, nil
}

func (s *playlistStoreStub) ListByCreator(_ context.Context, _ txmanager.Session, _ uuid.UUID, _, _ int32) ([]*po.Playlist, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byCreator, nil
}

func (s *playlistStoreStub) CountByCreator(_ context.Context, _ txmanager.Session, _ uuid.UUID) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

func (s *playlistStoreStub) AddItem(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistItem, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	if s.members[playlistID] == nil {
		s.members[playlistID] = map[uuid.UUID]bool{}
	}
	if s.members[playlistID][videoID] {
		return nil, repositories.ErrDuplicatePlaylistItem
	}
	s.members[playlistID][videoID] = true
	return &po.PlaylistItem{PlaylistID: playlistID, VideoID: videoID}, nil
}

func (s *playlistStoreStub) RemoveItem(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	if !s.members[playlistID][videoID] {
		return repositories.ErrPlaylistItemNotFound
	}
	delete(s.members[playlistID], videoID)
	return nil
}

func (s *playlistStoreStub) AdjustItemsCount(_ context.Context, _ txmanager.Session, playlistID uuid.UUID, delta int64) (*po.Playlist, error) {
	if s.adjustErr != nil {
		return nil, s.adjustErr
	}
	playlist, ok := s.playlists[playlistID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	playlist.ItemsCount += delta
	copied := *playlist
	return &copied, nil
}

func (s *playlistStoreStub) HasItem(_ context.Context, _ txmanager.Session, playlistID, videoID uuid.UUID) (bool, error) {
	return s.members[playlistID][videoID], nil
}

func (s *playlistStoreStub) ListItems(_ context.Context, _ txmanager.Session, _ uuid.UUID, _, _ int32) ([]repositories.VideoWithCounts, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

func (s *playlistStoreStub) CountItems(_ context.Context, _ txmanager.Session, _ uuid.UUID) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.itemsTotal, nil
}

func activeVideo(creatorID uuid.UUID) *po.Video {
	return &po.Video{
		VideoID:    uuid.New(),
		CreatorID:  creatorID,
		Title:      "demo",
		Visibility: po.VisibilityPublic,
		Status:     po.VideoStatusActive,
	}
}
