// Package cards manages patron card records: registration, updates,
// removal and listing.
package cards

import (
	"gorm.io/gorm"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

// Repository handles all card registry database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Register inserts a new card and fills in its generated CardID. Rejects
// when the type is outside the closed enumeration or a card with the same
// (name, department, type) already exists.
func (r *Repository) Register(card *entities.Card) error {
	if !card.Type.Valid() {
		return database.ErrInvalidCardType
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		dup, err := sameCardExists(tx, card, 0)
		if err != nil {
			return err
		}
		if dup {
			return database.ErrDuplicateCard
		}
		return tx.Create(card).Error
	})
}

// Update overwrites a card's name, department and type. The uniqueness check
// against other cards is re-run so an edit can never alias another card.
func (r *Repository) Update(card *entities.Card) error {
	if !card.Type.Valid() {
		return database.ErrInvalidCardType
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := cardExists(tx, card.CardID)
		if err != nil {
			return err
		}
		if !exists {
			return database.ErrCardNotFound
		}

		dup, err := sameCardExists(tx, card, card.CardID)
		if err != nil {
			return err
		}
		if dup {
			return database.ErrDuplicateCard
		}

		return tx.Model(&entities.Card{}).Where("card_id = ?", card.CardID).Updates(map[string]any{
			"name":       card.Name,
			"department": card.Department,
			"type":       card.Type,
		}).Error
	})
}

// Delete removes a card. Rejects while the card still has open loans.
func (r *Repository) Delete(cardID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var open int64
		err := tx.Model(&entities.Borrow{}).
			Where("card_id = ? AND return_time = 0", cardID).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return database.ErrCardHasLoans
		}

		exists, err := cardExists(tx, cardID)
		if err != nil {
			return err
		}
		if !exists {
			return database.ErrCardNotFound
		}

		return tx.Delete(&entities.Card{}, "card_id = ?", cardID).Error
	})
}

// List returns every card ordered by identity ascending.
func (r *Repository) List() ([]entities.Card, error) {
	var cards []entities.Card
	err := r.db.Order("card_id ASC").Find(&cards).Error
	return cards, err
}

func cardExists(tx *gorm.DB, cardID int64) (bool, error) {
	var count int64
	err := tx.Model(&entities.Card{}).Where("card_id = ?", cardID).Count(&count).Error
	return count > 0, err
}

func sameCardExists(tx *gorm.DB, card *entities.Card, excludeID int64) (bool, error) {
	var count int64
	err := tx.Model(&entities.Card{}).
		Where("name = ? AND department = ? AND type = ? AND card_id <> ?",
			card.Name, card.Department, card.Type, excludeID).
		Count(&count).Error
	return count > 0, err
}
