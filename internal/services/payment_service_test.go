package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	s := &PaymentService{keyID: "rzp_test_key", keySecret: "secret"}

	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	good := sign("secret", orderID+"|"+paymentID)

	if !s.verifySignature(orderID, paymentID, good) {
		t.Error("expected valid signature to verify")
	}
	if s.verifySignature(orderID, paymentID, "deadbeef") {
		t.Error("expected bad signature to fail")
	}
	if s.verifySignature("order_other", paymentID, good) {
		t.Error("expected signature for different order to fail")
	}

	// no secret means nothing can verify
	unset := &PaymentService{}
	if unset.verifySignature(orderID, paymentID, good) {
		t.Error("expected verification to fail without a key secret")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	s := &PaymentService{webhookSecret: "whsec"}

	body := []byte(`{"event":"payment.captured"}`)
	good := sign("whsec", string(body))

	if !s.VerifyWebhookSignature(body, good) {
		t.Error("expected valid webhook signature to verify")
	}
	if s.VerifyWebhookSignature(body, "deadbeef") {
		t.Error("expected bad webhook signature to fail")
	}

	// unset webhook secret skips verification
	unset := &PaymentService{}
	if !unset.VerifyWebhookSignature(body, "anything") {
		t.Error("expected verification to pass when no webhook secret is configured")
	}
}

func TestPaymentEnabled(t *testing.T) {
	if (&PaymentService{}).Enabled() {
		t.Error("expected payments disabled without credentials")
	}
	if !(&PaymentService{keyID: "k", keySecret: "s"}).Enabled() {
		t.Error("expected payments enabled with credentials")
	}
}

func TestAmountMinorUnits(t *testing.T) {
	tests := []struct {
		total float64
		want  int
	}{
		{123.0, 12300},
		{102.50, 10250},
		// 22.90 * 100 is 2289.9999... in float64; truncation would lose a cent
		{22.90, 2290},
		{119.99, 11999},
		{0, 0},
	}

	for _, tt := range tests {
		if got := amountMinorUnits(tt.total); got != tt.want {
			t.Errorf("amountMinorUnits(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
