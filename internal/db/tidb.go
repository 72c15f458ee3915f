package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/envutil"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// TiDBService owns the gorm handle. TiDB speaks the MySQL wire protocol,
// so the stock mysql driver is used.
type TiDBService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTiDBService(log *logger.Logger) (*TiDBService, error) {
	serviceLog := log.With("service", "TiDBService")

	host := envutil.String("TIDB_HOST", "localhost")
	port := envutil.String("TIDB_PORT", "4000")
	user := envutil.String("TIDB_USER", "root")
	password := envutil.String("TIDB_PASSWORD", "")
	name := envutil.String("TIDB_NAME", "studyloop")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&tls=%s",
		user, password, host, port, name, envutil.String("TIDB_TLS", "false"))

	serviceLog.Info("Connecting to TiDB...", "host", host, "port", port, "db", name)
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		serviceLog.Error("Failed to connect to TiDB", "error", err)
		return nil, fmt.Errorf("failed to connect to TiDB: %w", err)
	}

	return &TiDBService{db: gdb, log: serviceLog}, nil
}

func (s *TiDBService) AutoMigrateAll() error {
	s.log.Info("Auto migrating TiDB tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Workspace{},
		&types.DashboardItem{},
		&types.Folder{},
		&types.ItemFolder{},
		&types.QuizResult{},
		&types.ChatMessage{},
		&types.LearningPath{},
		&types.LearningStep{},
		&types.StudySession{},
		&types.ResearchQuery{},
		&types.VideoGeneration{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for TiDB tables", "error", err)
		return err
	}
	return nil
}

func (s *TiDBService) DB() *gorm.DB {
	return s.db
}
