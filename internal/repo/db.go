package repo

import (
	"strings"

	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"BirthdayKeeper/internal/model"
)

// InitDB opens the server database and runs migrations. A postgres DSN
// selects the postgres driver; anything else is treated as a SQLite
// file path, which keeps single-binary deployments trivial.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = gormpostgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "birthdaykeeper.sqlite"
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Birthday{}); err != nil {
		return nil, err
	}
	return db, nil
}
