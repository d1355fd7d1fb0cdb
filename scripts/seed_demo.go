// Demo data seeder.
//
// Fills a fresh database with an admin account, one bergerie per default
// city, and a handful of visitors with scoring history and attendance, so
// the dashboard and fidelity views have something to show.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"bergerie_backend/internal/config"
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/scoring"
	"bergerie_backend/internal/service"
	"bergerie_backend/pkg/database"
	"bergerie_backend/pkg/logger"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	cityRepo := repository.NewCityRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	bergerieRepo := repository.NewBergerieRepository(db)
	kpiRepo := repository.NewKPIRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)

	if _, err := userRepo.FindByEmail("admin@bergerie.local"); err == nil {
		log.Println("Demo data already present, nothing to do")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	admin := &model.User{
		Name:     "Administrateur",
		Email:    "admin@bergerie.local",
		Password: string(hash),
		Role:     model.Admin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Cannot create admin account: %v", err)
	}

	cities, err := cityRepo.FindAll(true)
	if err != nil || len(cities) == 0 {
		log.Fatalf("No cities available: %v", err)
	}
	if len(cities) > 2 {
		cities = cities[:2]
	}

	cohort := time.Now().Format(model.PeriodFormat)
	kpiService := service.NewKPIService(kpiRepo, visitorRepo, scoring.NewTable(scoring.Default()))

	names := [][2]string{
		{"Marie", "Dupont"},
		{"Jean", "Martin"},
		{"Awa", "Diallo"},
		{"Paul", "Bernard"},
		{"Esther", "Kouassi"},
	}

	for _, city := range cities {
		bergerie := &model.Bergerie{
			Name:     "Bergerie " + city.Name + " Centre",
			CityID:   city.ID,
			Cohort:   cohort,
			Active:   true,
			Location: city.Name,
		}
		if err := bergerieRepo.Create(bergerie); err != nil {
			log.Fatalf("Cannot create bergerie: %v", err)
		}

		for i, name := range names {
			visitor := &model.Visitor{
				FirstName:   name[0],
				LastName:    name[1],
				CityID:      city.ID,
				BergerieID:  &bergerie.ID,
				Status:      model.StatusVisiteur,
				Source:      model.SourceManuelle,
				InvitedBy:   "Frère Samuel",
				ArrivalDate: time.Now().AddDate(0, -2, 0),
			}
			if err := visitorRepo.Create(visitor); err != nil {
				log.Fatalf("Cannot create visitor: %v", err)
			}

			values := map[string]int{
				"culte":          (i % 4),
				"bergerie":       (i % 4),
				"priere":         (i % 4),
				"offrande":       (i % 3),
				"formation":      (i % 3),
				"service":        (i % 3),
				"evangelisation": (i % 3),
			}
			if _, err := kpiService.Save(visitor.ID, cohort, values, "données de démonstration"); err != nil {
				log.Fatalf("Cannot save KPI record: %v", err)
			}

			for week := 0; week < 4; week++ {
				date := time.Now().AddDate(0, 0, -7*week).Truncate(24 * time.Hour)
				record := &model.PresenceRecord{
					VisitorID: visitor.ID,
					Date:      date,
					Category:  model.PresenceCulte,
					Present:   (i+week)%3 != 0,
				}
				if err := presenceRepo.Upsert(record); err != nil {
					log.Fatalf("Cannot save presence record: %v", err)
				}
			}
		}
	}

	log.Println("Demo data seeded: admin@bergerie.local / admin1234")
}
