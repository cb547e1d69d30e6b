package pay

import "testing"

func TestVerifyHMAC(t *testing.T) {
	secret := "secret"
	sig := SignPayload("order_1", "pay_1", secret)

	if !VerifyHMAC("order_1", "pay_1", sig, secret) {
		t.Fatal("expected signature to be valid")
	}
	if VerifyHMAC("order_1", "pay_1", "deadbeef", secret) {
		t.Fatal("unexpected valid signature")
	}
	if VerifyHMAC("order_2", "pay_1", sig, secret) {
		t.Fatal("signature must bind to the order id")
	}
	if VerifyHMAC("order_1", "pay_1", sig, "other") {
		t.Fatal("signature must bind to the secret")
	}
	if VerifyHMAC("order_1", "pay_1", "not-hex!", secret) {
		t.Fatal("malformed signature must not validate")
	}
}
