// Package dto 定义对外的 JSON 记录，把领域实体投影为扁平结构。
package dto

import (
	"time"

	"job-board/internal/domain"
)

// TimeFormat 统一的时间格式，始终以 UTC 输出
const TimeFormat = time.RFC3339Nano

// UserRecord 用户的对外表示，不含密码哈希
type UserRecord struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	UserType    domain.Role `json:"user_type"`
	FullName    string      `json:"full_name"`
	Phone       *string     `json:"phone"`
	CompanyName *string     `json:"company_name"`
	CreatedAt   *string     `json:"created_at"`
}

// JobRecord 职位的对外表示，employer_name 取自雇主的公司名
type JobRecord struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	Salary       *string `json:"salary"`
	Requirements *string `json:"requirements"`
	EmployerID   uint    `json:"employer_id"`
	EmployerName *string `json:"employer_name"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    *string `json:"created_at"`
}

// ApplicationRecord 申请的对外表示，附带职位名称和申请人姓名
type ApplicationRecord struct {
	ID             uint                     `json:"id"`
	JobID          uint                     `json:"job_id"`
	JobTitle       *string                  `json:"job_title"`
	ApplicantID    uint                     `json:"applicant_id"`
	ApplicantName  *string                  `json:"applicant_name"`
	CoverLetter    *string                  `json:"cover_letter"`
	ResumeFilename *string                  `json:"resume_filename"`
	Status         domain.ApplicationStatus `json:"status"`
	AppliedAt      *string                  `json:"applied_at"`
}

// FormatTime 零值返回 nil
func FormatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimeFormat)
	return &s
}

func NewUserRecord(u *domain.User) UserRecord {
	return UserRecord{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		UserType:    u.Role,
		FullName:    u.FullName,
		Phone:       u.Phone,
		CompanyName: u.CompanyName,
		CreatedAt:   FormatTime(u.CreatedAt),
	}
}

// NewJobRecord 雇主未加载或已不存在时 employer_name 为 null
func NewJobRecord(j *domain.Job) JobRecord {
	rec := JobRecord{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Location:     j.Location,
		Salary:       j.Salary,
		Requirements: j.Requirements,
		EmployerID:   j.EmployerID,
		IsActive:     j.IsActive,
		CreatedAt:    FormatTime(j.CreatedAt),
	}
	if j.Employer != nil {
		rec.EmployerName = j.Employer.CompanyName
	}
	return rec
}

// NewApplicationRecord 关联对象缺失时对应字段为 null
func NewApplicationRecord(a *domain.Application) ApplicationRecord {
	rec := ApplicationRecord{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		CoverLetter:    a.CoverLetter,
		ResumeFilename: a.ResumeFilename,
		Status:         a.Status,
		AppliedAt:      FormatTime(a.AppliedAt),
	}
	if a.Job != nil {
		title := a.Job.Title
		rec.JobTitle = &title
	}
	if a.Applicant != nil {
		name := a.Applicant.FullName
		rec.ApplicantName = &name
	}
	return rec
}

func UserRecords(users []domain.User) []UserRecord {
	out := make([]UserRecord, 0, len(users))
	for i := range users {
		out = append(out, NewUserRecord(&users[i]))
	}
	return out
}

func JobRecords(jobs []domain.Job) []JobRecord {
	out := make([]JobRecord, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobRecord(&jobs[i]))
	}
	return out
}

func ApplicationRecords(apps []domain.Application) []ApplicationRecord {
	out := make([]ApplicationRecord, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationRecord(&apps[i]))
	}
	return out
}
