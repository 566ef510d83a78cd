package domain

import "time"

// ApplicationStatus 申请状态
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid 判断状态是否为四个枚举值之一
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application 表示求职者对某个职位的一次申请。
// (job_id, applicant_id) 上有联合唯一索引，保证同一求职者对同一职位最多一条申请。
type Application struct {
	ID             uint              `gorm:"primaryKey"`
	JobID          uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant,priority:1"`
	ApplicantID    uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant,priority:2;index:idx_applications_applicant_id"`
	CoverLetter    *string           `gorm:"type:text"`
	ResumeFilename *string           `gorm:"type:varchar(255)"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:pending;index:idx_applications_status"`
	AppliedAt      time.Time         `gorm:"autoCreateTime;index:idx_applications_applied_at"`

	Job       *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Applicant *User `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE"`
}
