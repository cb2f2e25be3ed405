// Package menurepo provides the read-only Postgres adapter over the menu
// catalog table. Order creation only reads per-item price and availability;
// the catalog itself is owned by the menu service.
package menurepo

import (
	"context"
	"errors"

	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/menu"
	"mealorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeMenuItemNotFound is the machine-readable code for missing menu items.
const CodeMenuItemNotFound = "MENU_ITEM_NOT_FOUND"

// MenuItemDTO maps the menu_items table.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	PriceAmount int64
	Currency    string
	Available   bool
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuCatalog implements ports.MenuCatalog over the shared catalog table.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a catalog adapter over the given connection.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// GetItem retrieves a menu item snapshot by ID.
func (c *GormMenuCatalog) GetItem(ctx context.Context, id kernel.UUID) (menu.ItemSnapshot, error) {
	if err := id.Validate(); err != nil {
		return menu.ItemSnapshot{}, err
	}

	var dto MenuItemDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menu.ItemSnapshot{}, errs.NewObjectNotFoundError(CodeMenuItemNotFound, "menuItemId", id.String())
		}
		return menu.ItemSnapshot{}, errs.NewDependencyError("menu catalog", err)
	}

	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return menu.ItemSnapshot{}, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount, dto.Currency)
	if err != nil {
		return menu.ItemSnapshot{}, err
	}

	return menu.NewItemSnapshot(itemID, dto.Name, price, dto.Available)
}
