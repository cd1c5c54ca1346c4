package finance

import (
	"testing"

	"github.com/mfonseca/acamp/internal/models"
)

func payments(amounts ...int64) []models.Payment {
	var ps []models.Payment
	for _, a := range amounts {
		ps = append(ps, models.Payment{AmountCents: a})
	}
	return ps
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		feeCents    int64
		payments    []models.Payment
		wantPaid    int64
		wantBalance int64
		wantStatus  Status
	}{
		{
			name:       "zero fee is exempt regardless of payments",
			feeCents:   0,
			payments:   payments(1000),
			wantPaid:   1000, wantBalance: -1000,
			wantStatus: StatusExempt,
		},
		{
			name:     "no payments with fee is pending",
			feeCents: 10000,
			wantPaid: 0, wantBalance: 10000,
			wantStatus: StatusPending,
		},
		{
			name:     "fee 150 with two 50 payments is partial with 50 left",
			feeCents: 15000,
			payments: payments(5000, 5000),
			wantPaid: 10000, wantBalance: 5000,
			wantStatus: StatusPartial,
		},
		{
			name:     "exact payment is paid",
			feeCents: 10000,
			payments: payments(10000),
			wantPaid: 10000, wantBalance: 0,
			wantStatus: StatusPaid,
		},
		{
			name:     "overpayment is paid with negative balance",
			feeCents: 10000,
			payments: payments(6000, 6000),
			wantPaid: 12000, wantBalance: -2000,
			wantStatus: StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.feeCents, tt.payments)
			if got.TotalPaidCents != tt.wantPaid {
				t.Errorf("TotalPaidCents = %d, want %d", got.TotalPaidCents, tt.wantPaid)
			}
			if got.BalanceCents != tt.wantBalance {
				t.Errorf("BalanceCents = %d, want %d", got.BalanceCents, tt.wantBalance)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "150", want: 15000},
		{in: "150.00", want: 15000},
		{in: "150,50", want: 15050},
		{in: "0.5", want: 50},
		{in: "40", want: 4000},
		{in: " 12.34 ", want: 1234},
		{in: "", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "10.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{4000, "40"},
		{4050, "40.5"},
		{4055, "40.55"},
		{5, "0.05"},
		{0, "0"},
		{-1250, "-12.5"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.cents); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
