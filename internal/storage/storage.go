package storage

import (
	"context"
	"errors"

	"github.com/example/heywrld/internal/models"
)

// Error taxonomy shared by both backends. Lookups report a missing record
// by returning a nil value with a nil error; update targets that do not
// exist fail with ErrNotFound. Deletes of missing records are silent
// no-ops.
var (
	// ErrNotFound marks an update against a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate marks a violated uniqueness constraint
	// (username, email, category name, slug, sku).
	ErrDuplicate = errors.New("duplicate value")
	// ErrConflict marks a rejected operation that would break referential
	// integrity, e.g. deleting a category that still has products.
	ErrConflict = errors.New("conflict")
)

// Storage is the persistence contract over the five aggregates. It is
// implemented by both the in-memory store and the Postgres store; callers
// pick one at process start and stay implementation-agnostic.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id int, patch UserPatch) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// Categories
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	// Products
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]models.Product, error)
	GetRelatedProducts(ctx context.Context, productID, categoryID int) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	// Orders. CreateOrder persists the order and all of its items as one
	// atomic unit: either everything lands or nothing does.
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error
	UpdateOrder(ctx context.Context, id int, patch OrderPatch) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error)
}

// Patch structs implement merge-style partial updates: a nil field leaves
// the stored value unchanged. This is a merge, never a replace.

type UserPatch struct {
	Email    *string
	FullName *string
	Phone    *string
	Address  *string
	City     *string
	State    *string
	ZipCode  *string
	Country  *string
}

type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	IsActive    *bool
}

type ProductPatch struct {
	Name          *string
	Description   *string
	CategoryID    *int
	Price         *float64
	DiscountPrice *float64
	Quantity      *int
	SKU           *string
	Images        *[]string
	Featured      *bool
	IsActive      *bool
}

type OrderPatch struct {
	Status         *string
	PaymentStatus  *string
	TrackingNumber *string
	ShippingMethod *string
	Notes          *string
}
