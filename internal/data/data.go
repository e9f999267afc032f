package data

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/newslens/newslens-backend/internal/conf"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	pkgredis "github.com/newslens/newslens-backend/internal/pkg/redis"
	"github.com/newslens/newslens-backend/internal/prefs/models"
)

// Data holds the optional shared infrastructure clients. Either field
// may be nil when the corresponding backend is disabled in config.
type Data struct {
	DB     *gorm.DB
	Redis  *pkgredis.Client
	Logger *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	d := &Data{Logger: log}

	if config.Database.Enabled {
		db, err := initDB(config, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init database: %w", err)
		}
		d.DB = db
	} else {
		log.Info("database disabled, preferences endpoints will answer 503")
	}

	if config.Redis.Enabled {
		client, err := pkgredis.New(&pkgredis.Config{
			Host:     config.Redis.Host,
			Port:     config.Redis.Port,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init redis: %w", err)
		}
		d.Redis = client
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if d.DB != nil {
			if sqlDB, err := d.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}

		if d.Redis != nil {
			d.Redis.Close()
		}
	}

	return d, cleanup, nil
}

func initDB(config *conf.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	log.Info("database initialized successfully",
		zap.String("host", config.Database.Host),
		zap.String("dbname", config.Database.DBName))
	return db, nil
}
