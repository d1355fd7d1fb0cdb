package database

import (
	"bergerie_backend/internal/config"
	"bergerie_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.City{},
			&model.Visitor{},
			&model.Bergerie{},
			&model.KPIRecord{},
			&model.PresenceRecord{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		// Default cities so the per-city views work on a fresh install
		var count int64
		db.Model(&model.City{}).Count(&count)
		if count == 0 {
			defaultCities := []string{"Paris", "Lyon", "Marseille", "Strasbourg"}
			for _, name := range defaultCities {
				db.Create(&model.City{Name: name, Enabled: true})
			}
		}
	}

	return db, nil
}
