package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarisNvr/test-case-shop/internal/models"
)

// maxUpsertAttempts bounds retries after losing an insert race on the
// (user_id, product_id) unique index.
const maxUpsertAttempts = 3

// MergeFunc receives the locked current entry (nil when there is none) and
// returns the quantity to store. Returning an error aborts the transaction.
type MergeFunc func(current *models.CartItem) (decimal.Decimal, error)

func (r *GormRepo) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetEntry(ctx context.Context, userID uuid.UUID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertEntry creates or updates the entry for (userID, productID) in one
// transaction. The existing row is locked while merge decides the new
// quantity, so concurrent merges on the same pair are serialized.
func (r *GormRepo) UpsertEntry(ctx context.Context, userID uuid.UUID, productID uint, merge MergeFunc) (*models.CartItem, bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		item, created, err := r.upsertOnce(ctx, userID, productID, merge)
		if err == nil {
			return item, created, nil
		}
		if !IsDuplicateKey(err) {
			return nil, false, err
		}
		lastErr = err
	}
	return nil, false, fmt.Errorf("upsert cart entry after %d attempts: %w", maxUpsertAttempts, lastErr)
}

func (r *GormRepo) upsertOnce(ctx context.Context, userID uuid.UUID, productID uint, merge MergeFunc) (*models.CartItem, bool, error) {
	var (
		item    models.CartItem
		created bool
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error

		switch {
		case err == nil:
			qty, err := merge(&item)
			if err != nil {
				return err
			}
			if err := tx.Model(&item).Update("quantity", qty).Error; err != nil {
				return err
			}
			item.Quantity = qty
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			qty, err := merge(nil)
			if err != nil {
				return err
			}
			item = models.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  qty,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			created = true
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

// UpdateQuantity overwrites the quantity of an existing entry. It returns
// gorm.ErrRecordNotFound when the entry does not exist.
func (r *GormRepo) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uint, qty decimal.Decimal) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", qty)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteEntry removes one entry and returns gorm.ErrRecordNotFound when there
// was nothing to delete.
func (r *GormRepo) DeleteEntry(ctx context.Context, userID uuid.UUID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
