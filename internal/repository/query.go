package repository

const (
	// DefaultPageSize 未指定或非法时使用的每页条数
	DefaultPageSize = 20
	// MaxPageSize 每页条数上限
	MaxPageSize = 100
)

// PageRequest 描述一次分页查询。Page 从 1 开始。
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest 规范化分页参数：page < 1 视为 1，perPage <= 0 使用 defaultSize，超过上限则截断。
func NewPageRequest(page, perPage, defaultSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if perPage <= 0 {
		perPage = defaultSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset 返回 SQL OFFSET
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pages 根据总数计算总页数 (total 为 0 时返回 0)
func (p PageRequest) Pages(total int64) int {
	if p.PerPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// 可参与自由文本搜索的列。列名只来自这些常量，不接受外部输入。
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldFullName     = "full_name"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldLocation     = "location"
	FieldRequirements = "requirements"
)

// Search 表示在一组固定列上的子串匹配
type Search struct {
	Term   string
	Fields []string
}

// Empty 是否无需搜索
func (s Search) Empty() bool {
	return s.Term == "" || len(s.Fields) == 0
}
