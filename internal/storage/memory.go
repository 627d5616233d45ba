package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/heywrld/internal/models"
)

// MemoryStore is the reference Storage implementation backed by maps. It
// needs no external database and is used for demos and tests. Identities
// start at 1 and increment monotonically; they are never reused, even
// after deletion.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[int]models.User
	categories map[int]models.Category
	products   map[int]models.Product
	orders     map[int]models.Order
	orderItems map[int]models.OrderItem

	nextUserID      int
	nextCategoryID  int
	nextProductID   int
	nextOrderID     int
	nextOrderItemID int
}

// NewMemoryStore returns an empty store. Demo data is loaded only through
// the explicit Seed function, never as a constructor side effect.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:           make(map[int]models.User),
		categories:      make(map[int]models.Category),
		products:        make(map[int]models.Product),
		orders:          make(map[int]models.Order),
		orderItems:      make(map[int]models.OrderItem),
		nextUserID:      1,
		nextCategoryID:  1,
		nextProductID:   1,
		nextOrderID:     1,
		nextOrderItemID: 1,
	}
}

// Users

func (s *MemoryStore) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
		}
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email %q", ErrDuplicate, user.Email)
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	if user.Country == "" {
		user.Country = "Nigeria"
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, id int, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}

	if patch.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, fmt.Errorf("%w: email %q", ErrDuplicate, *patch.Email)
			}
		}
		user.Email = *patch.Email
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.City != nil {
		user.City = *patch.City
	}
	if patch.State != nil {
		user.State = *patch.State
	}
	if patch.ZipCode != nil {
		user.ZipCode = *patch.ZipCode
	}
	if patch.Country != nil {
		user.Country = *patch.Country
	}

	s.users[id] = user
	return &user, nil
}

func (s *MemoryStore) GetAllUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.users[id])
	}
	return users, nil
}

// Categories

func (s *MemoryStore) GetCategory(_ context.Context, id int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category, ok := s.categories[id]; ok {
		return &category, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.Slug == slug {
			category := category
			return &category, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetAllCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, id := range sortedKeys(s.categories) {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return fmt.Errorf("%w: category name %q", ErrDuplicate, category.Name)
		}
		if existing.Slug == category.Slug {
			return fmt.Errorf("%w: slug %q", ErrDuplicate, category.Slug)
		}
	}

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, id int, patch CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}

	if patch.Name != nil {
		for otherID, other := range s.categories {
			if otherID != id && other.Name == *patch.Name {
				return nil, fmt.Errorf("%w: category name %q", ErrDuplicate, *patch.Name)
			}
		}
		category.Name = *patch.Name
	}
	if patch.Slug != nil {
		for otherID, other := range s.categories {
			if otherID != id && other.Slug == *patch.Slug {
				return nil, fmt.Errorf("%w: slug %q", ErrDuplicate, *patch.Slug)
			}
		}
		category.Slug = *patch.Slug
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		category.ImageURL = *patch.ImageURL
	}
	if patch.IsActive != nil {
		category.IsActive = *patch.IsActive
	}

	s.categories[id] = category
	return &category, nil
}

// DeleteCategory refuses to orphan products: a category that is still
// referenced fails with ErrConflict. Deleting a missing category is a
// no-op.
func (s *MemoryStore) DeleteCategory(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.products {
		if product.CategoryID == id {
			return fmt.Errorf("%w: category %d still has products", ErrConflict, id)
		}
	}

	delete(s.categories, id)
	return nil
}

// Products

func (s *MemoryStore) GetProduct(_ context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if product, ok := s.products[id]; ok {
		return &product, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetProductBySKU(_ context.Context, sku string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, product := range s.products {
		if product.SKU == sku {
			product := product
			return &product, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetAllProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(models.Product) bool { return true }, 0), nil
}

func (s *MemoryStore) GetProductsByCategory(_ context.Context, categoryID int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p models.Product) bool {
		return p.CategoryID == categoryID
	}, 0), nil
}

func (s *MemoryStore) GetFeaturedProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p models.Product) bool {
		return p.Featured && p.IsActive
	}, 0), nil
}

func (s *MemoryStore) GetRelatedProducts(_ context.Context, productID, categoryID int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p models.Product) bool {
		return p.ID != productID && p.CategoryID == categoryID && p.IsActive
	}, 4), nil
}

// SearchProducts matches the query case-insensitively against name,
// description and SKU, and only ever returns active products. Both
// backends implement the same rule.
func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	return s.collectProducts(func(p models.Product) bool {
		if !p.IsActive {
			return false
		}
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle)
	}, 0), nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.SKU == product.SKU {
			return fmt.Errorf("%w: sku %q", ErrDuplicate, product.SKU)
		}
	}

	product.ID = s.nextProductID
	s.nextProductID++
	product.CreatedAt = time.Now()
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, id int, patch ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}

	if patch.SKU != nil {
		for otherID, other := range s.products {
			if otherID != id && other.SKU == *patch.SKU {
				return nil, fmt.Errorf("%w: sku %q", ErrDuplicate, *patch.SKU)
			}
		}
		product.SKU = *patch.SKU
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.DiscountPrice != nil {
		price := *patch.DiscountPrice
		product.DiscountPrice = &price
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.Images != nil {
		product.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.Featured != nil {
		product.Featured = *patch.Featured
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}

	s.products[id] = product
	return &product, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

// Orders

func (s *MemoryStore) GetOrder(_ context.Context, id int) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if order, ok := s.orders[id]; ok {
		return &order, nil
	}
	return nil, nil
}

// GetAllOrders returns orders newest-first by creation time, matching the
// relational backend.
func (s *MemoryStore) GetAllOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// CreateOrder assigns identities to the order and every item under one
// lock, so the aggregate lands all at once or not at all.
func (s *MemoryStore) CreateOrder(_ context.Context, order *models.Order, items []models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	order.CreatedAt = time.Now()
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

	created := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = s.nextOrderItemID
		s.nextOrderItemID++
		item.OrderID = order.ID
		created = append(created, item)
	}

	s.orders[order.ID] = *order
	for _, item := range created {
		s.orderItems[item.ID] = item
	}
	order.Items = created
	return nil
}

func (s *MemoryStore) UpdateOrder(_ context.Context, id int, patch OrderPatch) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}

	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		order.PaymentStatus = *patch.PaymentStatus
	}
	if patch.TrackingNumber != nil {
		order.TrackingNumber = *patch.TrackingNumber
	}
	if patch.ShippingMethod != nil {
		order.ShippingMethod = *patch.ShippingMethod
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}

	s.orders[id] = order
	return &order, nil
}

func (s *MemoryStore) GetOrderItems(_ context.Context, orderID int) ([]models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.OrderItem, 0)
	for _, id := range sortedKeys(s.orderItems) {
		if item := s.orderItems[id]; item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

// collectProducts walks products in stable id order, applying the filter
// and an optional result cap (0 means unlimited). Callers must hold the
// lock.
func (s *MemoryStore) collectProducts(keep func(models.Product) bool, limit int) []models.Product {
	products := make([]models.Product, 0)
	for _, id := range sortedKeys(s.products) {
		product := s.products[id]
		if !keep(product) {
			continue
		}
		products = append(products, product)
		if limit > 0 && len(products) >= limit {
			break
		}
	}
	return products
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
