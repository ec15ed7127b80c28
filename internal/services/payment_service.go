// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/12pranavr/kirana911-backend/internal/config"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

// PaymentService wraps Stripe for online checkouts. Cash, UPI and khata
// sales never touch it.
type PaymentService struct {
	cfg *config.Config
}

type CreatePaymentIntentRequest struct {
	Amount   float64           `json:"amount" validate:"required,min=0.01"`
	Currency string            `json:"currency,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret   string `json:"client_secret"`
	PaymentID      string `json:"payment_id"`
	Status         string `json:"status"`
	PublishableKey string `json:"publishable_key"`
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{cfg: cfg}
}

func (s *PaymentService) CreatePaymentIntent(storeID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.Payment.Currency
	}

	// Stripe wants the amount in the smallest currency unit (paise for INR)
	amountInSubunits := int64(req.Amount * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInSubunits),
		Currency: stripe.String(currency),
	}

	params.AddMetadata("store_id", storeID.String())
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret:   pi.ClientSecret,
		PaymentID:      pi.ID,
		Status:         string(pi.Status),
		PublishableKey: s.cfg.Payment.StripePublishableKey,
	}, nil
}

// VerifyPayment reports whether a payment intent has succeeded. The POS
// calls this before recording an online sale as paid.
func (s *PaymentService) VerifyPayment(paymentIntentID string) (bool, error) {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get payment intent: %w", err)
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
