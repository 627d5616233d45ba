package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
)

type stubGateway struct {
	reference string
	err       error
	charged   []float64
}

func (g *stubGateway) Charge(_ context.Context, amount float64) (string, error) {
	g.charged = append(g.charged, amount)
	if g.err != nil {
		return "", g.err
	}
	return g.reference, nil
}

func validShipping() ShippingDetails {
	return ShippingDetails{
		FullName: "Ada Obi",
		Email:    "ada@example.com",
		Phone:    "08012345678",
		Address:  "12 Allen Avenue",
		City:     "Ikeja",
		State:    "Lagos",
		ZipCode:  "100001",
	}
}

type fixture struct {
	store   *storage.MemoryStore
	gateway *stubGateway
	engine  *cart.Engine
	product models.Product
}

// newFixture seeds one product, puts two units in the cart and returns
// everything a flow needs.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := storage.NewMemoryStore()
	product := models.Product{
		Name:       "Premium Tomatoes",
		CategoryID: 1,
		Price:      1000,
		Quantity:   50,
		SKU:        "FP-TOM-001",
		IsActive:   true,
	}
	require.NoError(t, store.CreateProduct(ctx, &product))

	engine := cart.NewEngine(ctx, cart.NewMemoryStore(), "session")
	engine.AddItem(ctx, product, 2)

	return &fixture{
		store:   store,
		gateway: &stubGateway{reference: "FLW-ABCDEF123456"},
		engine:  engine,
		product: product,
	}
}

func TestNewFlowRejectsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	engine := cart.NewEngine(ctx, cart.NewMemoryStore(), "session")

	_, err := NewFlow(store, &stubGateway{}, engine, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitShippingValidates(t *testing.T) {
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)

	details := validShipping()
	details.Email = "not-an-email"

	err = flow.SubmitShipping(details)
	assert.Error(t, err)
	assert.Equal(t, StepShipping, flow.Step())
}

func TestSubmitShippingForcesNigeria(t *testing.T) {
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)

	details := validShipping()
	details.Country = "Ghana"
	require.NoError(t, flow.SubmitShipping(details))

	order, err := flow.Pay(context.Background(), models.PaymentMethodPOD)
	require.NoError(t, err)
	assert.Equal(t, "Nigeria", order.ShippingCountry)
}

func TestBackToShipping(t *testing.T) {
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)

	// Not reachable from the shipping step.
	assert.ErrorIs(t, flow.BackToShipping(), ErrWrongStep)

	require.NoError(t, flow.SubmitShipping(validShipping()))
	require.NoError(t, flow.BackToShipping())
	assert.Equal(t, StepShipping, flow.Step())

	// Resubmitting moves forward again.
	require.NoError(t, flow.SubmitShipping(validShipping()))
	assert.Equal(t, StepPayment, flow.Step())
}

func TestPayRequiresPaymentStep(t *testing.T) {
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)

	_, err = flow.Pay(context.Background(), models.PaymentMethodPOD)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestPayRejectsUnknownMethod(t *testing.T) {
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	_, err = flow.Pay(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	assert.Equal(t, StepPayment, flow.Step())
}

func TestPayOnDelivery(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	order, err := flow.Pay(ctx, models.PaymentMethodPOD)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Empty(t, order.TransactionReference)
	assert.Empty(t, fx.gateway.charged)

	// Subtotal 2000 plus the flat shipping fee.
	assert.Equal(t, 3500.0, order.Total)
	assert.Nil(t, order.UserID)

	assert.True(t, fx.engine.IsEmpty())
	assert.Equal(t, StepConfirmed, flow.Step())
	assert.Equal(t, order, flow.Order())
}

func TestPayFlutterwave(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	order, err := flow.Pay(ctx, models.PaymentMethodFlutterwave)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "FLW-ABCDEF123456", order.TransactionReference)
	require.Len(t, fx.gateway.charged, 1)
	assert.Equal(t, order.Total, fx.gateway.charged[0])
}

func TestOrderItemsKeepCartTimePrices(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	// The catalog price changes after the item went into the cart.
	newPrice := 2000.0
	_, err := fx.store.UpdateProduct(ctx, fx.product.ID, storage.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	order, err := flow.Pay(ctx, models.PaymentMethodPOD)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 1000.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, fx.product.ID, order.Items[0].ProductID)
}

func TestFailedPaymentLeavesEverythingUntouched(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.gateway.err = errors.New("card declined")

	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	_, err = flow.Pay(ctx, models.PaymentMethodFlutterwave)
	assert.Error(t, err)

	assert.Equal(t, StepPayment, flow.Step())
	assert.False(t, fx.engine.IsEmpty())
	assert.Nil(t, flow.Order())

	orders, err := fx.store.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSaveAddressPersistsToProfile(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	user := models.User{
		Username:     "ada",
		PasswordHash: "x",
		Email:        "ada@example.com",
		FullName:     "Ada Obi",
	}
	require.NoError(t, fx.store.CreateUser(ctx, &user))

	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, &user.ID)
	require.NoError(t, err)

	details := validShipping()
	details.SaveAddress = true
	require.NoError(t, flow.SubmitShipping(details))

	order, err := flow.Pay(ctx, models.PaymentMethodPOD)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)

	saved, err := fx.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "12 Allen Avenue", saved.Address)
	assert.Equal(t, "Ikeja", saved.City)
	assert.Equal(t, "Lagos", saved.State)
}

func TestConfirmedFlowIsTerminal(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	flow, err := NewFlow(fx.store, fx.gateway, fx.engine, nil)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	_, err = flow.Pay(ctx, models.PaymentMethodPOD)
	require.NoError(t, err)

	assert.ErrorIs(t, flow.SubmitShipping(validShipping()), ErrWrongStep)
	_, err = flow.Pay(ctx, models.PaymentMethodPOD)
	assert.ErrorIs(t, err, ErrWrongStep)
}
