package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"job-board/internal/domain"
)

// MigrateDB 根据领域模型创建或更新表结构，包括 (job_id, applicant_id) 的联合唯一索引。
// 顺序按外键依赖：users → jobs → applications。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	for _, model := range []interface{}{&domain.User{}, &domain.Job{}, &domain.Application{}} {
		if err := db.AutoMigrate(model); err != nil {
			logrus.Errorf("Failed to auto-migrate %T: %v", model, err)
			return fmt.Errorf("failed to auto-migrate %T: %w", model, err)
		}
	}

	// 旧库可能缺少联合唯一索引，单独确认一次
	if !db.Migrator().HasIndex(&domain.Application{}, "idx_applications_job_applicant") {
		if err := db.Migrator().CreateIndex(&domain.Application{}, "idx_applications_job_applicant"); err != nil {
			return fmt.Errorf("failed to create applications unique index: %w", err)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
