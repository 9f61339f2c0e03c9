package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/payment"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type CheckoutService struct {
	Repo      *repo.GormRepo
	Sessions  payment.SessionCreator
	PublicURL string
}

// CreateCheckout builds one payment line per cart line and returns the hosted
// checkout URL. The cart is not touched: an abandoned or completed payment
// leaves it as it was.
func (s *CheckoutService) CreateCheckout(ctx context.Context, userID uint) (string, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return "", err
	}

	lines, err := s.Repo.GetCartLines(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, ln := range lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(math.Round(ln.Price * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(ln.Name),
				},
			},
			Quantity: stripe.Int64(int64(ln.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:     lineItems,
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(s.PublicURL + "/success"),
		CancelURL:     stripe.String(s.PublicURL + "/cancel"),
		CustomerEmail: stripe.String(user.Email),
	}

	sess, err := s.Sessions.CreateSession(ctx, params)
	if err != nil {
		return "", fmt.Errorf("checkout session: %w", err)
	}
	return sess.URL, nil
}
