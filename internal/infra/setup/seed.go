package setup

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"job-board/internal/credential"
	"job-board/internal/domain"
)

// SeedAdminUsername 种子管理员的用户名；存在即视为已初始化
const SeedAdminUsername = "admin"

type seedUser struct {
	username, email, password, fullName string
	role                                domain.Role
	phone, companyName                  *string
}

func strPtr(s string) *string { return &s }

var seedUsers = []seedUser{
	{username: SeedAdminUsername, email: "admin@jobportal.com", password: "admin123", fullName: "System Administrator", role: domain.RoleAdmin},
	{username: "techcorp", email: "hr@techcorp.com", password: "employer123", fullName: "Tech Corp HR", role: domain.RoleEmployer,
		phone: strPtr("123-456-7890"), companyName: strPtr("Tech Corp Solutions")},
	{username: "johndoe", email: "john.doe@email.com", password: "seeker123", fullName: "John Doe", role: domain.RoleJobSeeker,
		phone: strPtr("098-765-4321")},
}

// Seed 写入一个管理员、一个雇主、一个求职者和一个示例职位。
// 管理员已存在时什么都不做，返回 false。
func Seed(db *gorm.DB, hasher credential.Hasher) (bool, error) {
	var admin domain.User
	err := db.Where("username = ?", SeedAdminUsername).First(&admin).Error
	if err == nil {
		logrus.Info("Seed skipped: admin user already exists")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check seed state: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		created := make(map[domain.Role]*domain.User, len(seedUsers))
		for _, su := range seedUsers {
			hash, err := hasher.Hash(su.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", su.username, err)
			}
			u := &domain.User{
				Username:     su.username,
				Email:        su.email,
				PasswordHash: hash,
				Role:         su.role,
				FullName:     su.fullName,
				Phone:        su.phone,
				CompanyName:  su.companyName,
			}
			if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
				return fmt.Errorf("create seed user %s: %w", su.username, err)
			}
			created[su.role] = u
		}

		job := &domain.Job{
			Title:        "Software Developer",
			Description:  "We are looking for a skilled software developer to join our team.",
			Location:     "New York, NY",
			Salary:       strPtr("$70,000 - $90,000"),
			Requirements: strPtr("Bachelor's degree in Computer Science, 2+ years experience with Python/Flask"),
			EmployerID:   created[domain.RoleEmployer].ID,
			IsActive:     true,
		}
		if err := tx.Omit(clause.Associations).Create(job).Error; err != nil {
			return fmt.Errorf("create seed job: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logrus.Info("Seed data created")
	return true, nil
}
