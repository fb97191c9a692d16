package db

import (
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the facility database. DATABASE_URL selects Postgres;
// otherwise we fall back to a local SQLite file (SCAN_DB_PATH, default
// mvscanner.db), which is how single-facility deployments run.
func Connect() *gorm.DB {
	// Verbose logger to surface slow queries in deployment logs.
	lg := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             100 * time.Millisecond, // log queries > 100ms
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		path := os.Getenv("SCAN_DB_PATH")
		if path == "" {
			path = "mvscanner.db"
		}
		dialector = sqlite.Open(path)
	}

	// TranslateError turns driver constraint violations into gorm's
	// sentinel errors; the stores rely on that to classify them.
	db, err := gorm.Open(dialector, &gorm.Config{Logger: lg, TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB: ", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("Connected to database")
	return db
}
