package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"bookcircle/config"
	"bookcircle/models"
	"bookcircle/services/credit"
	"bookcircle/services/notification"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// PaymentHandler processes marketplace charges.
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)

	// Refund compensates a charge whose downstream work failed.
	Refund(ctx context.Context, inv *models.Invoice) error
}

// UnifiedPaymentHandler supports card, Brocks and cash-on-handover payments.
// Card charges go through Stripe when a key is configured and demo mode is
// off; otherwise the gateway is simulated end to end.
type UnifiedPaymentHandler struct {
	logger   *zap.Logger
	credits  credit.CreditService
	notifier notification.NotificationService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(logger *zap.Logger, credits credit.CreditService, notifier notification.NotificationService) *UnifiedPaymentHandler {
	return &UnifiedPaymentHandler{
		logger:   logger,
		credits:  credits,
		notifier: notifier,
	}
}

// ProcessPayment charges the user and returns the resulting invoice.
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		RentalID:  req.RentalID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch req.Method {
	case models.PaymentMethodCard:
		return h.processCardPayment(ctx, req, inv)
	case models.PaymentMethodBrocks:
		return h.processBrocksPayment(ctx, req, inv)
	case models.PaymentMethodCash:
		return h.processCashPayment(ctx, req, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	if config.AppConfig.PaymentDemo || config.AppConfig.StripeKey == "" {
		// Simulated gateway.
		inv.PaymentID = "pi_" + uuid.New().String()
	} else {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))),
			Currency: stripe.String(req.Currency),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}
		params.Context = ctx
		pi, err := paymentintent.New(params)
		if err != nil {
			inv.Status = "failed"
			return nil, fmt.Errorf("card payment failed: %w", err)
		}
		inv.PaymentID = pi.ID
	}

	inv.Status = "paid"
	inv.UpdatedAt = time.Now()

	h.notifyPayment(req, inv)
	h.logger.Info("Card payment successful", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

func (h *UnifiedPaymentHandler) processBrocksPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	// Brocks are whole units; partial amounts round up against the payer.
	cost := int(math.Ceil(req.Amount))
	if err := h.credits.Spend(req.UserID, cost, "rental payment", req.RentalID); err != nil {
		inv.Status = "failed"
		return nil, fmt.Errorf("brocks payment failed: %w", err)
	}

	inv.PaymentID = "brk_" + uuid.New().String()
	inv.Status = "paid"
	inv.UpdatedAt = time.Now()

	h.notifyPayment(req, inv)
	h.logger.Info("Brocks payment successful", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

func (h *UnifiedPaymentHandler) processCashPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	// Cash settles at handover; the invoice stays pending.
	inv.UpdatedAt = time.Now()

	h.notifyPayment(req, inv)
	h.logger.Info("Cash payment recorded", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

// Refund reverses a charge. Brocks go back on the ledger; card charges are
// refunded through Stripe when one actually went through; cash never
// collected anything.
func (h *UnifiedPaymentHandler) Refund(ctx context.Context, inv *models.Invoice) error {
	if inv == nil || inv.Status != "paid" {
		return nil
	}

	switch inv.Method {
	case models.PaymentMethodBrocks:
		cost := int(math.Ceil(inv.Amount))
		if err := h.credits.Award(inv.UserID, cost, models.CreditTypeRefund, "payment refund", inv.InvoiceID); err != nil {
			return fmt.Errorf("brocks refund failed: %w", err)
		}
	case models.PaymentMethodCard:
		if !config.AppConfig.PaymentDemo && config.AppConfig.StripeKey != "" {
			params := &stripe.RefundParams{PaymentIntent: stripe.String(inv.PaymentID)}
			params.Context = ctx
			if _, err := refund.New(params); err != nil {
				return fmt.Errorf("card refund failed: %w", err)
			}
		}
	case models.PaymentMethodCash:
		// Nothing was collected.
	}

	inv.Status = "refunded"
	inv.UpdatedAt = time.Now()
	h.logger.Info("Payment refunded",
		zap.String("invoice", inv.InvoiceID), zap.String("method", inv.Method))
	return nil
}

func (h *UnifiedPaymentHandler) notifyPayment(req models.PaymentRequest, inv *models.Invoice) {
	err := h.notifier.Notify(req.UserID, "payment_confirmation",
		fmt.Sprintf("Payment of %s %.2f via %s was %s.", inv.Currency, inv.Amount, inv.Method, inv.Status),
		map[string]interface{}{
			"invoiceId": inv.InvoiceID,
			"rentalId":  inv.RentalID,
			"amount":    inv.Amount,
			"method":    inv.Method,
			"status":    inv.Status,
		})
	if err != nil {
		h.logger.Error("payment notification failed", zap.Error(err))
	}
}

func validateRequest(req models.PaymentRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if req.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	return nil
}
