// Package controllers 实现 HTTP 入口层：解析请求、调用服务层并返回视图对象。
package controllers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// HandlerType 表示 Handler 的语义类别，用于选择超时策略。
type HandlerType int

const (
	// HandlerTypeDefault 表示未显式区分的 Handler。
	HandlerTypeDefault HandlerType = iota
	// HandlerTypeCommand 表示写模型命令 Handler。
	HandlerTypeCommand
	// HandlerTypeQuery 表示读模型查询 Handler。
	HandlerTypeQuery
)

// HandlerTimeouts 聚合不同类型 Handler 的超时策略。
type HandlerTimeouts struct {
	Default time.Duration
	Command time.Duration
	Query   time.Duration
}

const (
	fallbackDefaultTimeout = 5 * time.Second
	fallbackQueryTimeout   = 3 * time.Second

	headerUserID = "x-md-global-user-id"

	reasonUnauthenticated = "UNAUTHENTICATED"
	reasonInvalidArgument = "INVALID_ARGUMENT"
)

// BaseHandler 提供公共的超时与请求解析能力，供具体 Handler 内嵌复用。
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler 构造基础 Handler，并为缺省值填充合理的回退策略。
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Default <= 0 {
		if timeouts.Command > 0 {
			timeouts.Default = timeouts.Command
		} else if timeouts.Query > 0 {
			timeouts.Default = timeouts.Query
		} else {
			timeouts.Default = fallbackDefaultTimeout
		}
	}
	if timeouts.Command <= 0 {
		timeouts.Command = timeouts.Default
	}
	if timeouts.Query <= 0 {
		if timeouts.Default > 0 {
			timeouts.Query = timeouts.Default
		} else {
			timeouts.Query = fallbackQueryTimeout
		}
	}
	return &BaseHandler{timeouts: timeouts}
}

// WithTimeout 根据 Handler 类型包装上下文，返回绑定超时的新 Context 与取消函数。
func (h *BaseHandler) WithTimeout(ctx context.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	if h == nil {
		return context.WithTimeout(ctx, fallbackDefaultTimeout)
	}
	var timeout time.Duration
	switch kind {
	case HandlerTypeCommand:
		timeout = h.timeouts.Command
	case HandlerTypeQuery:
		timeout = h.timeouts.Query
	default:
		timeout = h.timeouts.Default
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// RequireUser 从请求头解析调用者身份，缺失或非法时返回 401。
func (h *BaseHandler) RequireUser(ctx khttp.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(ctx.Header().Get(headerUserID))
	if raw == "" {
		return uuid.Nil, errors.Unauthorized(reasonUnauthenticated, "missing user identity")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Unauthorized(reasonUnauthenticated, "invalid user identity")
	}
	return userID, nil
}

// OptionalUser 解析可选的调用者身份，未携带时返回 uuid.Nil。
func (h *BaseHandler) OptionalUser(ctx khttp.Context) uuid.UUID {
	raw := strings.TrimSpace(ctx.Header().Get(headerUserID))
	if raw == "" {
		return uuid.Nil
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return userID
}

// PathUUID 解析路径参数中的 UUID。
func (h *BaseHandler) PathUUID(ctx khttp.Context, name string) (uuid.UUID, error) {
	raw := ctx.Vars().Get(name)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.BadRequest(reasonInvalidArgument, "invalid "+name)
	}
	return id, nil
}

// PageParams 从查询串解析 page/pageSize，非法值交由服务层归一化。
func (h *BaseHandler) PageParams(ctx khttp.Context) (page, pageSize int32) {
	query := ctx.Query()
	if raw := query.Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			page = int32(v)
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
