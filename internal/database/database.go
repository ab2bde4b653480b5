// Package database owns the relational store handle and the schema for the
// book, card and borrow tables. Repositories in the subpackages run every
// logical operation inside one transaction scoped to that call; nothing in
// this package holds a session across requests.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ycyaw66/library-backoffice/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset drops and recreates all three tables. Borrow goes first so the rows
// referencing book and card never outlive them. Used by test fixtures and the
// seeder, not by normal request traffic.
func (d *Database) Reset() error {
	m := d.DB.Migrator()
	for _, table := range []any{&entities.Borrow{}, &entities.Book{}, &entities.Card{}} {
		if m.HasTable(table) {
			if err := m.DropTable(table); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}
	return migrate(d.DB)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Book{},
		&entities.Card{},
		&entities.Borrow{},
	)
}
