package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"flicksclub/internal/config"
	"flicksclub/internal/database"
	"flicksclub/internal/service"
)

func main() {
	exportPath := flag.String("export", "", "Export all data to a JSON file at the given path")
	importPath := flag.String("import", "", "Import data from a JSON file at the given path")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: backup -export <path> | -import <path>")
		os.Exit(2)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db)

	if *exportPath != "" {
		if err := backupService.Export(*exportPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Exported data to %s", *exportPath)
		return
	}

	if err := backupService.Import(*importPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported data from %s", *importPath)
}
