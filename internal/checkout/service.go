// Package checkout simulates the payment flow: it validates the submitted
// form, waits a fixed processing delay, prices the order, clears the cart,
// and returns a confirmation. There is no real gateway; form validation is
// the only failure path surfaced to the shopper.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/techsolutions/storefront/internal/cart"
	"github.com/techsolutions/storefront/internal/common"
	"github.com/techsolutions/storefront/internal/events"
	"github.com/techsolutions/storefront/internal/money"
	"github.com/techsolutions/storefront/internal/obs"
)

// ErrEmptyCart rejects checkout of a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// orderNumberPrefix brands confirmation numbers.
const orderNumberPrefix = "TS"

// Input is the checkout form as submitted by the shopper.
type Input struct {
	CartID     string `json:"cartId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	ZipCode    string `json:"zipCode" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required,credit_card"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required,len=3"`
	CardHolder string `json:"cardHolder" validate:"required"`
}

// Confirmation is the order record produced on simulated success.
type Confirmation struct {
	OrderNumber  string          `json:"orderNumber"`
	Total        decimal.Decimal `json:"total"`
	Items        []cart.Line     `json:"items"`
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email"`
}

// Service runs the checkout simulation.
type Service struct {
	Carts       *cart.Manager
	Validate    *validator.Validate
	Delay       time.Duration
	ShippingFee money.Money
	Now         func() time.Time
	Events      *events.Bus
	Log         zerolog.Logger
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Process validates the form, simulates payment processing, and on success
// clears the cart and emits an order.created event.
func (s *Service) Process(ctx context.Context, in Input) (Confirmation, error) {
	if s == nil || s.Carts == nil {
		return Confirmation{}, errors.New("checkout service not configured")
	}
	if err := s.validate(in); err != nil {
		obs.IncCheckoutRejected("validation")
		return Confirmation{}, err
	}
	store, found := s.Carts.Lookup(ctx, in.CartID)
	if !found {
		obs.IncCheckoutRejected("unknown_cart")
		return Confirmation{}, common.NewAppError("NOT_FOUND", "cart not found", http.StatusNotFound, nil)
	}
	snapshot := store.Snapshot()
	if snapshot.ItemCount == 0 {
		obs.IncCheckoutRejected("empty_cart")
		return Confirmation{}, common.NewAppError("EMPTY_CART", "cart is empty", http.StatusUnprocessableEntity, ErrEmptyCart)
	}

	// Fixed-delay stand-in for a payment gateway round trip.
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-timer.C:
		}
	}

	total := s.orderTotal(snapshot)
	confirmation := Confirmation{
		OrderNumber:  orderNumberPrefix + strconv.FormatInt(s.now().UnixMilli(), 10),
		Total:        total,
		Items:        snapshot.Lines,
		CustomerName: in.FirstName + " " + in.LastName,
		Email:        in.Email,
	}

	store.Clear(ctx)
	obs.IncOrderCreated()
	if s.Events != nil {
		payload := map[string]any{
			"orderNumber": confirmation.OrderNumber,
			"total":       confirmation.Total,
			"email":       confirmation.Email,
		}
		if _, err := s.Events.Emit(ctx, events.TopicOrderCreated, in.CartID, payload); err != nil {
			s.Log.Warn().Err(err).Msg("emit order event")
		}
	}
	s.Log.Info().
		Str("order_number", confirmation.OrderNumber).
		Str("total", confirmation.Total.String()).
		Int("items", len(confirmation.Items)).
		Msg("order confirmed")
	return confirmation, nil
}

// orderTotal prices the order summary: the cart subtotal, tax rounded to
// the nearest peso, and a flat shipping fee for non-empty carts.
func (s *Service) orderTotal(snapshot cart.Cart) decimal.Decimal {
	tax := snapshot.Tax.Round(0)
	shipping := decimal.Zero
	if snapshot.ItemCount > 0 && s.ShippingFee > 0 {
		shipping = money.Decimal(s.ShippingFee)
	}
	return snapshot.Subtotal.Add(tax).Add(shipping)
}

func (s *Service) validate(in Input) error {
	v := s.Validate
	if v == nil {
		v = validator.New()
	}
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return common.NewAppError("VALIDATION", "invalid checkout form", http.StatusUnprocessableEntity, fmt.Errorf("validate checkout: %w", err)).
			WithDetails(details)
	}
	return common.NewAppError("VALIDATION", "invalid checkout form", http.StatusUnprocessableEntity, err)
}
