package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// PaymentInput is the data-transfer structure for recording a payment.
type PaymentInput struct {
	AmountCents int64
	PaidOn      time.Time
	Method      string
}

// Validate checks the payment rules. Overpayment past the edition fee is
// deliberately not rejected here; the balance simply goes negative.
func (in *PaymentInput) Validate() []FieldError {
	var errs []FieldError
	if in.AmountCents <= 0 {
		errs = append(errs, FieldError{"amount", "must be positive"})
	}
	if in.PaidOn.IsZero() {
		errs = append(errs, FieldError{"paid_on", "is required"})
	}
	return errs
}

// PaymentService records contributions toward registration fees.
// Mutations require admin or editor.
type PaymentService struct {
	roleChecker
	store storage.Store
}

// NewPaymentService creates a payment service with the given storage and
// role resolver.
func NewPaymentService(store storage.Store, roles *auth.RoleResolver) *PaymentService {
	return &PaymentService{roleChecker: roleChecker{roles: roles}, store: store}
}

// Add records a payment for a person.
func (s *PaymentService) Add(ctx context.Context, callerID, personID string, in PaymentInput) (*models.Payment, error) {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return nil, err
	}
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	// The person must exist before the insert reaches the foreign key.
	if _, err := s.store.GetPersonDetail(ctx, personID); err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	payment := &models.Payment{
		PersonID:    personID,
		AmountCents: in.AmountCents,
		PaidOn:      in.PaidOn,
		Method:      in.Method,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("AddPayment failed", "person_id", personID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded", "payment_id", payment.ID, "person_id", personID, "amount_cents", payment.AmountCents)
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, callerID, paymentID string) error {
	if err := s.authorize(ctx, callerID, editors...); err != nil {
		return err
	}
	if err := s.store.DeletePayment(ctx, paymentID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", paymentID, "error", err)
		return err
	}
	slog.Info("Payment deleted", "payment_id", paymentID)
	return nil
}
