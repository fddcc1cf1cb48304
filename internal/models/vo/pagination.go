// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，隔离内部数据结构。
package vo

// PageInfo 描述分页游标信息。PrevPage/NextPage 仅在存在对应页时出现。
type PageInfo struct {
	Page      int32  `json:"page"`
	PageSize  int32  `json:"pageSize"`
	PageCount int32  `json:"pageCount"`
	Total     int64  `json:"total"`
	PrevPage  *int32 `json:"prevPage,omitempty"`
	NextPage  *int32 `json:"nextPage,omitempty"`
}

// Page 将一页结果与分页信息打包返回。
type Page[T any] struct {
	List       []T      `json:"list"`
	Pagination PageInfo `json:"pagination"`
}

// NewPage 根据总数和页参数计算分页信息。
// pageCount 向上取整；prevPage 要求当前页落在合法范围内，nextPage 要求后面还有页。
func NewPage[T any](list []T, page, pageSize int32, total int64) Page[T] {
	if list == nil {
		list = []T{}
	}
	info := PageInfo{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	if pageSize > 0 {
		info.PageCount = int32((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if page > 1 && page <= info.PageCount {
		prev := page - 1
		info.PrevPage = &prev
	}
	if page < info.PageCount {
		next := page + 1
		info.NextPage = &next
	}
	return Page[T]{List: list, Pagination: info}
}
