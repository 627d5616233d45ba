package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/heywrld/internal/models"
)

func newCategory(t *testing.T, s *MemoryStore, name, slug string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug, IsActive: active}
	require.NoError(t, s.CreateCategory(context.Background(), category))
	return category
}

func newProduct(t *testing.T, s *MemoryStore, name, sku string, categoryID int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      1000,
		SKU:        sku,
		IsActive:   active,
	}
	require.NoError(t, s.CreateProduct(context.Background(), product))
	return product
}

func TestCreateUserEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x", FullName: "Ada"}
	require.NoError(t, s.CreateUser(ctx, first))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Nigeria", first.Country)

	dupUsername := &models.User{Username: "ada", Email: "other@example.com", PasswordHash: "x", FullName: "Other"}
	assert.ErrorIs(t, s.CreateUser(ctx, dupUsername), ErrDuplicate)

	dupEmail := &models.User{Username: "other", Email: "ada@example.com", PasswordHash: "x", FullName: "Other"}
	assert.ErrorIs(t, s.CreateUser(ctx, dupEmail), ErrDuplicate)
}

func TestLookupsReturnNilNilWhenMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user, err := s.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, user)

	product, err := s.GetProductBySKU(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, product)

	category, err := s.GetCategoryBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, category)
}

func TestUpdateMissingRecordFails(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	name := "x"
	_, err := s.UpdateUser(ctx, 1, UserPatch{FullName: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateCategory(ctx, 1, CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateProduct(ctx, 1, ProductPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateOrder(ctx, 1, OrderPatch{Status: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)
	product := newProduct(t, s, "Tomatoes", "FP-TOM-001", category.ID, true)

	price := 1500.0
	updated, err := s.UpdateProduct(ctx, product.ID, ProductPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, updated.Price)
	assert.Equal(t, "Tomatoes", updated.Name)
	assert.Equal(t, "FP-TOM-001", updated.SKU)
	assert.True(t, updated.IsActive)
}

func TestCategoryUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	newCategory(t, s, "Perfumes", "perfumes", true)

	err := s.CreateCategory(ctx, &models.Category{Name: "Perfumes", Slug: "perfumes-2"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = s.CreateCategory(ctx, &models.Category{Name: "Fragrances", Slug: "perfumes"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteCategoryWithProductsConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)
	product := newProduct(t, s, "Tomatoes", "FP-TOM-001", category.ID, true)

	assert.ErrorIs(t, s.DeleteCategory(ctx, category.ID), ErrConflict)

	// The rejected delete leaves the category in place.
	kept, err := s.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)

	require.NoError(t, s.DeleteProduct(ctx, product.ID))
	require.NoError(t, s.DeleteCategory(ctx, category.ID))

	// Deleting twice is a silent no-op.
	assert.NoError(t, s.DeleteCategory(ctx, category.ID))
}

func TestIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)

	first := newProduct(t, s, "Tomatoes", "FP-TOM-001", category.ID, true)
	require.NoError(t, s.DeleteProduct(ctx, first.ID))

	second := newProduct(t, s, "Apples", "FP-APP-002", category.ID, true)
	assert.Greater(t, second.ID, first.ID)
}

func TestProductSKUUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)
	newProduct(t, s, "Tomatoes", "FP-TOM-001", category.ID, true)

	err := s.CreateProduct(ctx, &models.Product{
		Name: "Clone", CategoryID: category.ID, Price: 1, SKU: "FP-TOM-001",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)

	tomatoes := newProduct(t, s, "Premium Tomatoes", "FP-TOM-001", category.ID, true)
	tomatoes.Description = "juicy and fresh"
	_, err := s.UpdateProduct(ctx, tomatoes.ID, ProductPatch{Description: &tomatoes.Description})
	require.NoError(t, err)

	newProduct(t, s, "Hidden Tomatoes", "FP-TOM-002", category.ID, false)
	newProduct(t, s, "Organic Apples", "FP-APP-003", category.ID, true)

	// Case-insensitive name match; inactive products never surface.
	results, err := s.SearchProducts(ctx, "TOMATO")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, tomatoes.ID, results[0].ID)

	// Description and SKU are searched too.
	results, err = s.SearchProducts(ctx, "juicy")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = s.SearchProducts(ctx, "fp-app")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = s.SearchProducts(ctx, "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRelatedProducts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)
	other := newCategory(t, s, "Perfumes", "perfumes", true)

	subject := newProduct(t, s, "Tomatoes", "FP-001", category.ID, true)
	for i := 0; i < 5; i++ {
		newProduct(t, s, "Sibling", string(rune('A'+i))+"-SKU", category.ID, true)
	}
	newProduct(t, s, "Inactive Sibling", "INACTIVE-SKU", category.ID, false)
	newProduct(t, s, "Other Category", "OTHER-SKU", other.ID, true)

	related, err := s.GetRelatedProducts(ctx, subject.ID, subject.CategoryID)
	require.NoError(t, err)

	// Capped at four, never the subject itself, active same-category only.
	require.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, subject.ID, p.ID)
		assert.Equal(t, category.ID, p.CategoryID)
		assert.True(t, p.IsActive)
	}
}

func TestFeaturedProducts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	category := newCategory(t, s, "Farm Produce", "farm-produce", true)

	featured := newProduct(t, s, "Tomatoes", "FP-001", category.ID, true)
	flag := true
	_, err := s.UpdateProduct(ctx, featured.ID, ProductPatch{Featured: &flag})
	require.NoError(t, err)

	inactiveFeatured := newProduct(t, s, "Hidden", "FP-002", category.ID, false)
	_, err = s.UpdateProduct(ctx, inactiveFeatured.ID, ProductPatch{Featured: &flag})
	require.NoError(t, err)

	newProduct(t, s, "Plain", "FP-003", category.ID, true)

	results, err := s.GetFeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, featured.ID, results[0].ID)
}

func TestCreateOrderIsAtomicAndAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	order := &models.Order{Total: 3500, PaymentMethod: models.PaymentMethodPOD}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 1000},
		{ProductID: 2, Quantity: 1, Price: 500},
	}
	require.NoError(t, s.CreateOrder(ctx, order, items))

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "Nigeria", order.ShippingCountry)
	assert.Equal(t, "standard", order.ShippingMethod)

	stored, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, item := range stored {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotZero(t, item.ID)
	}
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 3; i++ {
		order := &models.Order{Total: 100, PaymentMethod: models.PaymentMethodPOD}
		require.NoError(t, s.CreateOrder(ctx, order, nil))
	}

	orders, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, 3, orders[0].ID)
	assert.Equal(t, 2, orders[1].ID)
	assert.Equal(t, 1, orders[2].ID)
}

func TestSeedLoadsDemoFixture(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, Seed(ctx, s))

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin)
	assert.NotEqual(t, "admin123", users[0].PasswordHash)

	categories, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	active := 0
	for _, c := range categories {
		if c.IsActive {
			active++
		}
	}
	assert.Equal(t, 2, active)

	products, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 12)

	orders, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}
