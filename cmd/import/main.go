package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"vocabquest/internal/config"
	"vocabquest/internal/database"
	"vocabquest/internal/importer"
)

func main() {
	input := flag.String("input", "", "Path to the units file, .xlsx or .csv (required)")
	sheet := flag.String("sheet", "Sheet1", "Worksheet name for Excel files")
	keepHeader := flag.Bool("keep-header", false, "Treat the first row as data instead of a header")
	flag.Parse()

	if *input == "" {
		fmt.Println("Error: -input flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	importCfg := importer.DefaultConfig(*input)
	importCfg.SheetName = *sheet
	importCfg.SkipHeader = !*keepHeader

	result, err := importer.New(db).ImportUnits(importCfg)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Processed %d rows: %d units created, %d words added, %d skipped\n",
		result.TotalRows, result.UnitsCreated, result.WordsAdded, result.Skipped)
	for _, importErr := range result.Errors {
		fmt.Printf("  warning: %s\n", importErr)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
