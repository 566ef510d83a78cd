package domain

import "time"

// Job 表示雇主发布的一个职位。
type Job struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"type:varchar(100);not null"`
	Description  string    `gorm:"type:text;not null"`
	Location     string    `gorm:"type:varchar(100);not null"`
	Salary       *string   `gorm:"type:varchar(50)"`
	Requirements *string   `gorm:"type:text"`
	EmployerID   uint      `gorm:"not null;index:idx_jobs_employer_id"` // 外键关联 User.ID，由服务端强制设置
	IsActive     bool      `gorm:"column:is_active;not null;default:true;index:idx_jobs_is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_jobs_created_at"`

	// Employer 仅用于序列化时反查公司名，写入时忽略
	Employer *User `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE"`
}

// OwnedBy 判断职位是否属于指定用户
func (j *Job) OwnedBy(userID uint) bool {
	return j != nil && j.EmployerID == userID
}
