package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with deputy governors and queue subscriptions for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM trip_queues").Error; err != nil {
				log.Fatalf("failed to clear trip queues: %v", err)
			}
			if err := db.Exec("DELETE FROM passport_data").Error; err != nil {
				log.Fatalf("failed to clear passport data: %v", err)
			}
			if err := db.Exec("DELETE FROM trips").Error; err != nil {
				log.Fatalf("failed to clear trips: %v", err)
			}
			fmt.Println("Cleared existing trip data")
		}

		deputyGovernors := []struct {
			FullName         string
			Position         string
			FullNameDocument string
			PositionDocument string
		}{
			{
				FullName: "Голицын Евгений Викторович",
				Position: "Заместитель Губернатора – руководителя Аппарата Губернатора" +
					" и Правительства Челябинской области",
				FullNameDocument: "Е.В. Голицыну",
				PositionDocument: "Заместителю Губернатора – руководителю Аппарата" +
					" Губернатора и Правительства Челябинской области",
			},
			{
				FullName:         "Мамин Виктор Викторович",
				Position:         "Первый заместитель Губернатора Челябинской области",
				FullNameDocument: "В.В. Мамину",
				PositionDocument: "Первому заместителю Губернатора Челябинской области",
			},
		}

		for _, dg := range deputyGovernors {
			var exists int
			row := db.Raw("SELECT 1 FROM deputy_governors WHERE full_name = ?", dg.FullName).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("deputy governor already exists:", dg.FullName)
				continue
			}

			err := db.Exec("INSERT INTO deputy_governors (full_name, position, full_name_document, position_document, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				dg.FullName, dg.Position, dg.FullNameDocument, dg.PositionDocument).Error
			if err != nil {
				log.Fatalf("failed to insert deputy governor: %v", err)
			}
			fmt.Println("Seeded deputy governor:", dg.FullName)
		}

		subscriptions := []struct {
			Email      string
			Department string
		}{
			{"head@example.org", "HEAD_OF_DEPARTMENT"},
			{"deputy@example.org", "DEPUTY_GOVERNOR"},
			{"personnel@example.org", "PERSONNEL_DEPARTMENT"},
			{"purchasing@example.org", "PURCHASING_DEPARTMENT"},
			{"bookkeeping@example.org", "BOOKKEEPING"},
		}

		for _, sub := range subscriptions {
			var exists int
			row := db.Raw("SELECT 1 FROM email_subscriptions WHERE email = ? AND department = ?", sub.Email, sub.Department).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			err := db.Exec("INSERT INTO email_subscriptions (email, department, active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
				sub.Email, sub.Department).Error
			if err != nil {
				log.Fatalf("failed to insert subscription: %v", err)
			}
			fmt.Println("Seeded queue subscription:", sub.Email)
		}
	},
}
