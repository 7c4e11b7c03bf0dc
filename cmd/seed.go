package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/core/isotime"
	"github.com/frahmantamala/financeflow/internal/persistence"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := persistence.Open(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to open document store: %v", err)
		}
		if err := db.AutoMigrate(&persistence.Document{}); err != nil {
			log.Fatalf("failed to migrate document store: %v", err)
		}

		docs := persistence.NewDocumentStore(db)

		if clearData {
			for _, key := range persistence.CollectionKeys {
				if err := docs.Delete(key); err != nil {
					log.Fatalf("failed to clear %s: %v", key, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seed := map[string]interface{}{
			persistence.KeyExpenses:   sampleExpenses(),
			persistence.KeyEarnings:   sampleEarnings(),
			persistence.KeyCategories: datamodel.DefaultCategories(),
			persistence.KeyBudgets:    sampleBudgets(),
		}

		for key, value := range seed {
			raw, err := json.Marshal(value)
			if err != nil {
				log.Fatalf("failed to encode %s: %v", key, err)
			}
			if err := docs.Put(key, string(raw)); err != nil {
				log.Fatalf("failed to seed %s: %v", key, err)
			}
			fmt.Printf("Seeded collection: %s\n", key)
		}

		fmt.Println("Sample data seeded successfully")
	},
}

func sampleExpenses() []datamodel.Expense {
	at := func(value string) isotime.Time {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			log.Fatalf("bad sample date %s: %v", value, err)
		}
		return isotime.FromTime(t)
	}

	return []datamodel.Expense{
		{ID: "exp-1", Description: "Groceries", Amount: 75.43, CategoryID: "cat-1", Date: at("2024-07-20T10:00:00Z")},
		{ID: "exp-2", Description: "Gasoline", Amount: 45.00, CategoryID: "cat-2", Date: at("2024-07-20T12:30:00Z")},
		{ID: "exp-3", Description: "Electricity Bill", Amount: 120.00, CategoryID: "cat-3", Date: at("2024-07-19T09:00:00Z")},
		{ID: "exp-4", Description: "Movie tickets", Amount: 30.00, CategoryID: "cat-4", Date: at("2024-07-18T20:00:00Z")},
		{ID: "exp-5", Description: "Pharmacy", Amount: 25.50, CategoryID: "cat-5", Date: at("2024-07-18T15:00:00Z")},
		{ID: "exp-6", Description: "Dinner out", Amount: 60.20, CategoryID: "cat-1", Date: at("2024-07-17T19:00:00Z")},
		{ID: "exp-7", Description: "New shoes", Amount: 99.99, CategoryID: "cat-6", Date: at("2024-07-16T16:45:00Z")},
		{ID: "exp-8", Description: "Coffee shop", Amount: 5.75, CategoryID: "cat-1", Date: at("2024-07-21T08:30:00Z")},
		{ID: "exp-9", Description: "Public transport pass", Amount: 55.00, CategoryID: "cat-2", Date: at("2024-07-01T08:00:00Z")},
	}
}

func sampleEarnings() []datamodel.Earning {
	return []datamodel.Earning{
		{ID: "earn-1", Description: "Monthly Salary", Amount: 2500, Date: isotime.Now()},
	}
}

func sampleBudgets() datamodel.Budgets {
	return datamodel.Budgets{
		"cat-1": 500,
		"cat-2": 150,
		"cat-3": 200,
		"cat-4": 100,
		"cat-5": 80,
		"cat-6": 250,
	}
}
