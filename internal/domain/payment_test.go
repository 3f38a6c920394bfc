package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		name    string
		total   float64
		advance float64
		want    PaymentStatus
	}{
		{name: "no advance", total: 400, advance: 0, want: PaymentStatusPending},
		{name: "partial advance", total: 400, advance: 100, want: PaymentStatusPartial},
		{name: "full advance", total: 400, advance: 400, want: PaymentStatusPaid},
		{name: "overpaid", total: 400, advance: 500, want: PaymentStatusPaid},
		{name: "zero total", total: 0, advance: 0, want: PaymentStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePaymentStatus(tc.total, tc.advance))
		})
	}
}

func TestPaymentBalance(t *testing.T) {
	assert.Equal(t, float64(300), PaymentBalance(400, 100))
	assert.Equal(t, float64(0), PaymentBalance(400, 400))
	assert.Equal(t, float64(0), PaymentBalance(400, 500))
}
