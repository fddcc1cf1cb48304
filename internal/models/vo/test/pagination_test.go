package vo_test

import (
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/models/vo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		page      int32
		pageSize  int32
		total     int64
		pageCount int32
		prevPage  *int32
		nextPage  *int32
	}{
		{
			name:      "首页有下一页",
			page:      1,
			pageSize:  20,
			total:     45,
			pageCount: 3,
			prevPage:  nil,
			nextPage:  int32Ptr(2),
		},
		{
			name:      "中间页前后均有",
			page:      2,
			pageSize:  20,
			total:     45,
			pageCount: 3,
			prevPage:  int32Ptr(1),
			nextPage:  int32Ptr(3),
		},
		{
			name:      "末页只有上一页",
			page:      3,
			pageSize:  20,
			total:     45,
			pageCount: 3,
			prevPage:  int32Ptr(2),
			nextPage:  nil,
		},
		{
			name:      "整除不产生多余页",
			page:      2,
			pageSize:  20,
			total:     40,
			pageCount: 2,
			prevPage:  int32Ptr(1),
			nextPage:  nil,
		},
		{
			name:      "空结果集",
			page:      1,
			pageSize:  20,
			total:     0,
			pageCount: 0,
			prevPage:  nil,
			nextPage:  nil,
		},
		{
			name:      "超出范围的页码不产生游标",
			page:      9,
			pageSize:  20,
			total:     45,
			pageCount: 3,
			prevPage:  nil,
			nextPage:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := vo.NewPage([]string{"a"}, tt.page, tt.pageSize, tt.total)

			assert.Equal(t, tt.page, result.Pagination.Page)
			assert.Equal(t, tt.pageSize, result.Pagination.PageSize)
			assert.Equal(t, tt.total, result.Pagination.Total)
			assert.Equal(t, tt.pageCount, result.Pagination.PageCount)
			assert.Equal(t, tt.prevPage, result.Pagination.PrevPage)
			assert.Equal(t, tt.nextPage, result.Pagination.NextPage)
		})
	}
}

func TestNewPageNilListBecomesEmpty(t *testing.T) {
	result := vo.NewPage[string](nil, 1, 10, 0)
	require.NotNil(t, result.List)
	assert.Len(t, result.List, 0)
}

func int32Ptr(v int32) *int32 {
	return &v
}
