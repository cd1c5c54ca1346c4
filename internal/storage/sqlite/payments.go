package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfonseca/acamp/internal/models"
)

// CreatePayment persists a new payment, generating its ID.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = nowUnix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, person_id, amount_cents, paid_on, method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.PersonID, payment.AmountCents,
		formatDate(payment.PaidOn), payment.Method, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", translateErr(err))
	}
	return nil
}

// DeletePayment removes a payment.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return requireRow(res)
}

// ListPayments returns a person's payments, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, personID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, person_id, amount_cents, paid_on, method, created_at
		 FROM payments WHERE person_id = ? ORDER BY paid_on DESC, created_at DESC`,
		personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var (
			payment models.Payment
			paidOn  string
		)
		if err := rows.Scan(&payment.ID, &payment.PersonID, &payment.AmountCents,
			&paidOn, &payment.Method, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if payment.PaidOn, err = parseDate(paidOn); err != nil {
			return nil, fmt.Errorf("failed to parse payment date: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
