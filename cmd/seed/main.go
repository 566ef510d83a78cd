// Command seed 初始化演示数据：一个管理员、一个雇主、一个求职者和一个示例职位。
package main

import (
	"github.com/sirupsen/logrus"

	"job-board/internal/bootstrap"
	"job-board/internal/credential"
	"job-board/internal/infra/setup"
)

func main() {
	cfg, err := bootstrap.LoadDBConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg)

	db, err := setup.InitDB(cfg.DBConfig())
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	created, err := setup.Seed(db, credential.NewBcryptHasher(0))
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	if created {
		log.Info("Sample data created: users admin, techcorp, johndoe and one sample job")
	}
}
