package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and schema migration.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the orders table.
type OrderRecord struct {
	ID         int64        `gorm:"primaryKey;column:id"`
	CustomerID string       `gorm:"column:customer_id;type:varchar(16);not null;index"`
	Items      []ItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
	UpdatedAt  time.Time    `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

// ItemRecord maps an order line item to the items table. The quantity and
// unit price invariants are enforced by database check constraints, not just
// application code.
type ItemRecord struct {
	ID        int64   `gorm:"primaryKey;column:id"`
	OrderID   int64   `gorm:"column:order_id;not null;index"`
	Name      string  `gorm:"column:name;type:varchar(64)"`
	Quantity  int32   `gorm:"column:quantity;not null;check:chk_items_quantity_positive,quantity > 0"`
	UnitPrice float64 `gorm:"column:unit_price;not null;check:chk_items_unit_price_non_negative,unit_price >= 0"`
}

func (ItemRecord) TableName() string { return "items" }

// Create inserts an order together with its owned items in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	// Ids are system-generated; anything the client supplied is discarded.
	record.ID = 0
	for i := range record.Items {
		record.Items[i].ID = 0
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// Update fully replaces an existing order, including its item set.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing OrderRecord
		if err := tx.First(&existing, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&OrderRecord{}).Where("id = ?", order.ID).
			Update("customer_id", order.CustomerID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&ItemRecord{}).Error; err != nil {
			return err
		}
		items := toItemRecords(order.ID, order.Items)
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, order.ID)
}

// Delete removes an order; the foreign key cascade removes its items.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&OrderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByID fetches an order with its items preloaded in insertion order.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []OrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") }).
		Order("orders.id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// AddItem appends an item to an existing order.
func (r *Repository) AddItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := r.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}
	record := toItemRecord(orderID, *item)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	result := record.toDomain()
	return &result, nil
}

// FindItem returns the item only when it exists and belongs to the order.
func (r *Repository) FindItem(ctx context.Context, orderID, itemID int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ItemRecord
	err := r.db.WithContext(ctx).
		First(&record, "id = ? AND order_id = ?", itemID, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	result := record.toDomain()
	return &result, nil
}

// UpdateItem persists changes to an item scoped to its owning order.
func (r *Repository) UpdateItem(ctx context.Context, orderID int64, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&ItemRecord{}).
		Where("id = ? AND order_id = ?", item.ID, orderID).
		Updates(map[string]any{
			"name":       item.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.FindItem(ctx, orderID, item.ID)
}

// DeleteItem removes an item scoped to its owning order.
func (r *Repository) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Delete(&ItemRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r *Repository) requireOrder(ctx context.Context, orderID int64) error {
	var record OrderRecord
	if err := r.db.WithContext(ctx).Select("id").First(&record, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return err
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	return OrderRecord{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Items:      toItemRecords(order.ID, order.Items),
	}
}

func toItemRecords(orderID int64, items []domain.Item) []ItemRecord {
	if len(items) == 0 {
		return nil
	}
	records := make([]ItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, toItemRecord(orderID, item))
	}
	return records
}

func toItemRecord(orderID int64, item domain.Item) ItemRecord {
	return ItemRecord{
		ID:        item.ID,
		OrderID:   orderID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

func (r OrderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toDomain())
	}
	return &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Items:      items,
	}
}

func (r ItemRecord) toDomain() domain.Item {
	return domain.Item{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
	}
}
