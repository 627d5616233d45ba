package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
)

// Step is the checkout state machine position. The flow runs
// shipping -> payment -> confirmed; stepping back from payment to
// shipping is allowed, a confirmed flow is terminal.
type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyCart guards checkout entry: nothing to buy, no flow.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrWrongStep marks an operation invoked out of order.
	ErrWrongStep = errors.New("operation not valid for current checkout step")
	// ErrUnknownPaymentMethod rejects methods other than flutterwave/pod.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// PaymentGateway charges the customer and returns a transaction
// reference. The pay-on-delivery path never touches it.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64) (reference string, err error)
}

// ShippingDetails is the validated shipping step input. Country is fixed
// to Nigeria and not user-editable.
type ShippingDetails struct {
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10"`
	Address     string `json:"address" validate:"required,min=5"`
	City        string `json:"city" validate:"required,min=2"`
	State       string `json:"state" validate:"required,min=2"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	SaveAddress bool   `json:"save_address"`
}

var validate = validator.New()

// Flow drives one checkout from cart to confirmed order. Failures during
// payment or persistence leave the cart and the step untouched so the
// customer can retry without re-entering shipping data.
type Flow struct {
	mu       sync.Mutex
	step     Step
	storage  storage.Storage
	gateway  PaymentGateway
	cart     *cart.Engine
	userID   *int
	shipping ShippingDetails
	order    *models.Order
}

// NewFlow opens a checkout for the given cart. UserID is nil for guest
// checkout.
func NewFlow(store storage.Storage, gateway PaymentGateway, engine *cart.Engine, userID *int) (*Flow, error) {
	if engine.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return &Flow{
		step:    StepShipping,
		storage: store,
		gateway: gateway,
		cart:    engine,
		userID:  userID,
	}, nil
}

// Step reports the current state machine position.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Order returns the persisted order after confirmation, nil before.
func (f *Flow) Order() *models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// SubmitShipping validates the shipping form and advances to the payment
// step. Resubmitting from the payment step is allowed (the customer went
// back); a confirmed flow is immutable.
func (f *Flow) SubmitShipping(details ShippingDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepConfirmed {
		return fmt.Errorf("%w: checkout already confirmed", ErrWrongStep)
	}

	details.Country = "Nigeria"
	if err := validate.Struct(details); err != nil {
		return fmt.Errorf("invalid shipping details: %w", err)
	}

	f.shipping = details
	f.step = StepPayment
	return nil
}

// BackToShipping returns from the payment step to the shipping step.
func (f *Flow) BackToShipping() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return fmt.Errorf("%w: can only return to shipping from payment", ErrWrongStep)
	}
	f.step = StepShipping
	return nil
}

// Pay runs the selected payment method, persists the order with all of
// its items atomically, clears the cart and confirms the flow. On any
// failure the cart and step are left exactly as they were.
func (f *Flow) Pay(ctx context.Context, method string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return nil, fmt.Errorf("%w: payment requires the payment step", ErrWrongStep)
	}

	snapshot := f.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := snapshot.Total
	total := cart.OrderTotal(subtotal)

	paymentStatus := models.PaymentStatusPending
	reference := ""
	switch method {
	case models.PaymentMethodFlutterwave:
		ref, err := f.gateway.Charge(ctx, total)
		if err != nil {
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		paymentStatus = models.PaymentStatusPaid
		reference = ref
	case models.PaymentMethodPOD:
		// Collected at delivery; nothing to charge now.
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}

	order := &models.Order{
		UserID:               f.userID,
		Status:               models.OrderStatusPending,
		Total:                total,
		PaymentMethod:        method,
		PaymentStatus:        paymentStatus,
		ShippingAddress:      f.shipping.Address,
		ShippingCity:         f.shipping.City,
		ShippingState:        f.shipping.State,
		ShippingZipCode:      f.shipping.ZipCode,
		ShippingCountry:      f.shipping.Country,
		Notes:                f.shipping.Notes,
		TransactionReference: reference,
	}

	items := make([]models.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.UnitPrice(),
		})
	}

	if err := f.storage.CreateOrder(ctx, order, items); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	f.saveAddressIfRequested(ctx)

	f.cart.Clear(ctx)
	f.order = order
	f.step = StepConfirmed
	return order, nil
}

// saveAddressIfRequested copies the shipping form onto the authenticated
// user's profile. Best effort: the order is already placed, so a profile
// write failure is logged rather than surfaced.
func (f *Flow) saveAddressIfRequested(ctx context.Context) {
	if !f.shipping.SaveAddress || f.userID == nil {
		return
	}

	patch := storage.UserPatch{
		Phone:   &f.shipping.Phone,
		Address: &f.shipping.Address,
		City:    &f.shipping.City,
		State:   &f.shipping.State,
		ZipCode: &f.shipping.ZipCode,
		Country: &f.shipping.Country,
	}
	if _, err := f.storage.UpdateUser(ctx, *f.userID, patch); err != nil {
		log.Printf("checkout: saving address for user %d failed: %v", *f.userID, err)
	}
}
