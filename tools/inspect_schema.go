package main

import (
	"fmt"
	"log"

	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Prints the tables AutoMigrate creates, for comparing against data/mysql_schema.sql
func main() {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig(logger.Discard()))
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
