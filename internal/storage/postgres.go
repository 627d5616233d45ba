package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/heywrld/internal/models"
)

// PostgresStore implements Storage on top of GORM. Identity assignment is
// delegated to the database; uniqueness is backed by unique indexes and
// surfaced as ErrDuplicate via GORM's translated errors, so the contract
// is enforced in one place rather than left to the route layer.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an initialized gorm.DB. The connection must be
// opened with TranslateError enabled (database.Connect does this).
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// Users

func (s *PostgresStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	return getOne[models.User](ctx, s.db, "id = ?", id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return getOne[models.User](ctx, s.db, "username = ?", username)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getOne[models.User](ctx, s.db, "email = ?", email)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Country == "" {
		user.Country = "Nigeria"
	}
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int, patch UserPatch) (*models.User, error) {
	values := map[string]any{}
	setString(values, "email", patch.Email)
	setString(values, "full_name", patch.FullName)
	setString(values, "phone", patch.Phone)
	setString(values, "address", patch.Address)
	setString(values, "city", patch.City)
	setString(values, "state", patch.State)
	setString(values, "zip_code", patch.ZipCode)
	setString(values, "country", patch.Country)

	if err := s.applyPatch(ctx, &models.User{}, id, values); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *PostgresStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// Categories

func (s *PostgresStore) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return getOne[models.Category](ctx, s.db, "id = ?", id)
}

func (s *PostgresStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return getOne[models.Category](ctx, s.db, "slug = ?", slug)
}

func (s *PostgresStore) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.db.WithContext(ctx).Create(category).Error)
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*models.Category, error) {
	values := map[string]any{}
	setString(values, "name", patch.Name)
	setString(values, "slug", patch.Slug)
	setString(values, "description", patch.Description)
	setString(values, "image_url", patch.ImageURL)
	if patch.IsActive != nil {
		values["is_active"] = *patch.IsActive
	}

	if err := s.applyPatch(ctx, &models.Category{}, id, values); err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: category %d still has products", ErrConflict, id)
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}

// Products

func (s *PostgresStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return getOne[models.Product](ctx, s.db, "id = ?", id)
}

func (s *PostgresStore) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return getOne[models.Product](ctx, s.db, "sku = ?", sku)
}

func (s *PostgresStore) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, err
}

func (s *PostgresStore) GetProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&products).Error
	return products, err
}

func (s *PostgresStore) GetFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("featured = ? AND is_active = ?", true, true).
		Order("id").
		Find(&products).Error
	return products, err
}

func (s *PostgresStore) GetRelatedProducts(ctx context.Context, productID, categoryID int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("id <> ? AND category_id = ? AND is_active = ?", productID, categoryID, true).
		Order("id").
		Limit(4).
		Find(&products).Error
	return products, err
}

// SearchProducts applies the same rule as the memory store: active
// products only, case-insensitive substring on name, description or SKU.
func (s *PostgresStore) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + query + "%"
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND (name ILIKE ? OR description ILIKE ? OR sku ILIKE ?)",
			true, pattern, pattern, pattern).
		Order("id").
		Find(&products).Error
	return products, err
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*models.Product, error) {
	values := map[string]any{}
	setString(values, "name", patch.Name)
	setString(values, "description", patch.Description)
	setString(values, "sku", patch.SKU)
	if patch.CategoryID != nil {
		values["category_id"] = *patch.CategoryID
	}
	if patch.Price != nil {
		values["price"] = *patch.Price
	}
	if patch.DiscountPrice != nil {
		values["discount_price"] = *patch.DiscountPrice
	}
	if patch.Quantity != nil {
		values["quantity"] = *patch.Quantity
	}
	if patch.Images != nil {
		values["images"] = toTextArray(*patch.Images)
	}
	if patch.Featured != nil {
		values["featured"] = *patch.Featured
	}
	if patch.IsActive != nil {
		values["is_active"] = *patch.IsActive
	}

	if err := s.applyPatch(ctx, &models.Product{}, id, values); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// Orders

func (s *PostgresStore) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return getOne[models.Order](ctx, s.db, "id = ?", id)
}

// GetAllOrders is explicitly newest-first by creation timestamp.
func (s *PostgresStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&orders).Error
	return orders, err
}

// CreateOrder wraps the order and its items in a single transaction so a
// partial failure can never leave a headless order behind.
func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	if order.ShippingCountry == "" {
		order.ShippingCountry = "Nigeria"
	}
	if order.ShippingMethod == "" {
		order.ShippingMethod = "standard"
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return translate(err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return translate(err)
			}
		}
		order.Items = items
		return nil
	})
}

func (s *PostgresStore) UpdateOrder(ctx context.Context, id int, patch OrderPatch) (*models.Order, error) {
	values := map[string]any{}
	setString(values, "status", patch.Status)
	setString(values, "payment_status", patch.PaymentStatus)
	setString(values, "tracking_number", patch.TrackingNumber)
	setString(values, "shipping_method", patch.ShippingMethod)
	setString(values, "notes", patch.Notes)

	if err := s.applyPatch(ctx, &models.Order{}, id, values); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func (s *PostgresStore) GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error
	return items, err
}

// applyPatch runs a merge-style partial update and reports ErrNotFound
// when the target row does not exist. An empty patch still requires the
// row to be present.
func (s *PostgresStore) applyPatch(ctx context.Context, model any, id int, values map[string]any) error {
	if len(values) == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil
	}

	result := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func getOne[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var record T
	err := db.WithContext(ctx).First(&record, append([]any{query}, args...)...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func setString(values map[string]any, column string, value *string) {
	if value != nil {
		values[column] = *value
	}
}

func toTextArray(values []string) pq.StringArray {
	return pq.StringArray(values)
}
