package db

import (
	"os"
	"path/filepath"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"nagoyameshi/config"
	"nagoyameshi/logger"
	"nagoyameshi/models"
)

// Connect opens the configured database (sqlite3 unless "postgres" is set) and
// runs AutoMigrate plus the seeders when automigrate is on.
func Connect(conf config.Configuration) (*gorm.DB, error) {
	log := logger.Log()

	var (
		db  *gorm.DB
		err error
	)

	switch conf.Database {
	case "postgres", "postgresql":
		log.Info("using postgresql connection")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=disable"
		db, err = gorm.Open("postgres", path)
	default:
		log.Info("using sqlite3 connection")
		file := conf.DbPath
		if file == "" {
			file = "db/database.db"
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, err
		}
		db, err = gorm.Open("sqlite3", file)
	}

	if err != nil {
		log.WithError(err).Error("could not connect to database")
		return nil, err
	}

	db.LogMode(conf.LogLevel == "debug")

	if conf.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		if err := Seed(db, conf); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...).Error
}
