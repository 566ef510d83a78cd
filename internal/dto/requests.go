package dto

// 请求体。必填项由服务层校验，以便返回统一的错误原因；这里只做格式校验。

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string  `json:"username" binding:"omitempty,max=80"`
	Email       string  `json:"email" binding:"omitempty,max=120"`
	Password    string  `json:"password"`
	UserType    string  `json:"user_type"`
	FullName    string  `json:"full_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileRequest 资料更新，缺省字段保持不变，phone / company_name 为 null 时清空。
type ProfileRequest struct {
	FullName    *string          `json:"full_name" binding:"omitempty,max=100"`
	Email       *string          `json:"email" binding:"omitempty,max=120"`
	Phone       Nullable[string] `json:"phone"`
	CompanyName Nullable[string] `json:"company_name"`
}

// JobRequest 创建或更新职位。更新时缺省字段保持不变，salary / requirements 为 null 时清空。
type JobRequest struct {
	Title        *string          `json:"title" binding:"omitempty,max=100"`
	Description  *string          `json:"description"`
	Location     *string          `json:"location" binding:"omitempty,max=100"`
	Salary       Nullable[string] `json:"salary"`
	Requirements Nullable[string] `json:"requirements"`
	IsActive     *bool            `json:"is_active"`
}

// ApplyRequest 申请职位
type ApplyRequest struct {
	CoverLetter    *string `json:"cover_letter"`
	ResumeFilename *string `json:"resume_filename" binding:"omitempty,max=255"`
}

// StatusRequest 修改申请状态
type StatusRequest struct {
	Status string `json:"status"`
}

// ListQuery 列表查询参数，来自 URL query
type ListQuery struct {
	Page     int
	PerPage  int
	Search   string
	Location string
	UserType string
	Status   string
}
