package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/heywrld/internal/models"
)

func testProduct(id int, price float64) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product",
		Price:    price,
		SKU:      "SKU",
		IsActive: true,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(context.Background(), NewMemoryStore(), "session")
}

func TestAddItemMergesQuantities(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	engine.AddItem(ctx, testProduct(1, 1000), 2)
	engine.AddItem(ctx, testProduct(1, 1000), 3)

	snapshot := engine.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 5, snapshot.Items[0].Quantity)
	assert.Equal(t, 5000.0, snapshot.Total)
}

func TestAddItemQuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	engine.AddItem(ctx, testProduct(1, 1000), 0)
	engine.AddItem(ctx, testProduct(2, 500), -3)

	snapshot := engine.Snapshot()
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, 1, snapshot.Items[1].Quantity)
	assert.Equal(t, 1500.0, snapshot.Total)
}

func TestTotalUsesDiscountPrice(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	discount := 800.0
	product := testProduct(1, 1000)
	product.DiscountPrice = &discount

	engine.AddItem(ctx, product, 3)
	assert.Equal(t, 2400.0, engine.Subtotal())
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	engine.AddItem(ctx, testProduct(1, 1000), 2)
	engine.UpdateQuantity(ctx, 1, 7)

	snapshot := engine.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 7, snapshot.Items[0].Quantity)
	assert.Equal(t, 7000.0, snapshot.Total)
}

func TestUpdateQuantityNonPositiveIsNoOp(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	engine.AddItem(ctx, testProduct(1, 1000), 2)
	engine.UpdateQuantity(ctx, 1, 0)
	engine.UpdateQuantity(ctx, 1, -5)

	snapshot := engine.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	engine.AddItem(ctx, testProduct(1, 1000), 1)
	engine.AddItem(ctx, testProduct(2, 500), 1)

	engine.RemoveItem(ctx, 1)
	snapshot := engine.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.Items[0].ProductID)
	assert.Equal(t, 500.0, snapshot.Total)

	// Removing an absent product changes nothing.
	engine.RemoveItem(ctx, 99)
	assert.Len(t, engine.Snapshot().Items, 1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	engine := NewEngine(ctx, store, "session")

	engine.AddItem(ctx, testProduct(1, 1000), 2)
	engine.Clear(ctx)

	assert.True(t, engine.IsEmpty())
	assert.Equal(t, 0.0, engine.Subtotal())

	data, err := store.Load(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRehydrationRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewEngine(ctx, store, "session")
	first.AddItem(ctx, testProduct(1, 1000), 2)
	first.AddItem(ctx, testProduct(2, 500), 1)

	second := NewEngine(ctx, store, "session")
	snapshot := second.Snapshot()
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, 2500.0, snapshot.Total)
}

func TestRehydrationIgnoresStoredTotal(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// A tampered blob with a total that does not match its items.
	blob := []byte(`{"items":[{"product_id":1,"quantity":2,"product":{"id":1,"price":1000,"is_active":true}}],"total":999999}`)
	require.NoError(t, store.Save(ctx, "session", blob))

	engine := NewEngine(ctx, store, "session")
	assert.Equal(t, 2000.0, engine.Subtotal())
}

func TestRehydrationFailsClosedOnGarbage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "session", []byte("not json")))

	engine := NewEngine(ctx, store, "session")
	assert.True(t, engine.IsEmpty())
	assert.Equal(t, 0.0, engine.Subtotal())
}

func TestManagerReturnsSameEnginePerSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore())

	a := manager.Cart(ctx, "one")
	b := manager.Cart(ctx, "one")
	c := manager.Cart(ctx, "two")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
