package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlutterwaveService simulates the Flutterwave card/bank-transfer gateway:
// a short processing delay followed by success. Real gateway integration
// is out of scope; the checkout flow only depends on the Charge contract.
type FlutterwaveService struct {
	delay time.Duration
}

// NewFlutterwaveService configures the simulated processing delay.
func NewFlutterwaveService(delay time.Duration) *FlutterwaveService {
	return &FlutterwaveService{delay: delay}
}

// Charge simulates processing a payment and returns a transaction
// reference. Honors context cancellation during the simulated delay.
func (s *FlutterwaveService) Charge(ctx context.Context, amount float64) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	reference := "FLW-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	log.Printf("[Flutterwave] charged %.2f, reference %s", amount, reference)
	return reference, nil
}

// VerifyReference reports whether a reference has the shape this service
// issues. Used by admin tooling to sanity-check manual entries.
func (s *FlutterwaveService) VerifyReference(reference string) error {
	if !strings.HasPrefix(reference, "FLW-") || len(reference) != 16 {
		return fmt.Errorf("malformed transaction reference %q", reference)
	}
	return nil
}
