// Package migrations applies the relational schema for the orders service.
package migrations

import (
	"gorm.io/gorm"

	orderspostgres "ordersvc/internal/orders/adapters/persistence/postgres"
)

// Run applies the order/item schema, including the foreign-key cascade and
// the quantity/unit_price check constraints.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderspostgres.OrderRecord{},
		&orderspostgres.ItemRecord{},
	)
}
