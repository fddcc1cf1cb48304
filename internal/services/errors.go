package services

import "github.com/go-kratos/kratos/v2/errors"

// 业务错误原因码，沿错误响应的 reason 字段返回。
const (
	ReasonVideoNotFound     = "VIDEO_NOT_FOUND"
	ReasonPlaylistNotFound  = "PLAYLIST_NOT_FOUND"
	ReasonPlaylistForbidden = "PLAYLIST_FORBIDDEN"
	ReasonAlreadyInPlaylist = "ALREADY_IN_PLAYLIST"
	ReasonNotInPlaylist     = "NOT_IN_PLAYLIST"
	ReasonAlreadyLiked      = "ALREADY_LIKED"
	ReasonAlreadyDisliked   = "ALREADY_DISLIKED"
	ReasonVideoNotVoted     = "VIDEO_NOT_VOTED"
	ReasonInvalidArgument   = "INVALID_ARGUMENT"
	ReasonQueryTimeout      = "QUERY_TIMEOUT"
	ReasonStorageFailure    = "STORAGE_FAILURE"
)

// 服务层哨兵错误。
var (
	ErrVideoNotFound     = errors.NotFound(ReasonVideoNotFound, "video not found")
	ErrPlaylistNotFound  = errors.NotFound(ReasonPlaylistNotFound, "playlist not found")
	ErrPlaylistForbidden = errors.Forbidden(ReasonPlaylistForbidden, "playlist belongs to another user")
	ErrAlreadyInPlaylist = errors.Conflict(ReasonAlreadyInPlaylist, "video already in playlist")
	ErrNotInPlaylist     = errors.NotFound(ReasonNotInPlaylist, "video not in playlist")
	ErrAlreadyLiked      = errors.Conflict(ReasonAlreadyLiked, "video already liked")
	ErrAlreadyDisliked   = errors.Conflict(ReasonAlreadyDisliked, "video already disliked")
	ErrVideoNotVoted     = errors.Conflict(ReasonVideoNotVoted, "video does not have votes yet")
)
