package domain

import (
	"strings"
	"testing"
)

func TestComputeSignatureDeterministic(t *testing.T) {
	t.Parallel()

	first := ComputeSignature("secret", "order_123", "pay_abc")
	second := ComputeSignature("secret", "order_123", "pay_abc")
	if first != second {
		t.Fatalf("same inputs produced different signatures: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if first != strings.ToLower(first) {
		t.Fatalf("signature must be lowercase hex: %s", first)
	}
}

func TestComputeSignatureSensitivity(t *testing.T) {
	t.Parallel()

	base := ComputeSignature("secret", "order_123", "pay_abc")
	if ComputeSignature("secret2", "order_123", "pay_abc") == base {
		t.Fatalf("different secret must change signature")
	}
	if ComputeSignature("secret", "order_124", "pay_abc") == base {
		t.Fatalf("different order id must change signature")
	}
	if ComputeSignature("secret", "order_123", "pay_abd") == base {
		t.Fatalf("different payment id must change signature")
	}
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	sig := ComputeSignature("secret", "order_123", "pay_abc")
	if !VerifySignature("secret", "order_123", "pay_abc", sig) {
		t.Fatalf("valid signature rejected")
	}

	// Flip one character anywhere in the signature and it must fail.
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if string(mutated) == sig {
			continue
		}
		if VerifySignature("secret", "order_123", "pay_abc", string(mutated)) {
			t.Fatalf("mutated signature at index %d accepted", i)
		}
	}

	if VerifySignature("secret", "order_123", "pay_abc", "") {
		t.Fatalf("empty signature accepted")
	}
	if VerifySignature("wrong", "order_123", "pay_abc", sig) {
		t.Fatalf("signature verified under a different secret")
	}
}

func TestCredentialPairUsable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pair CredentialPair
		want bool
	}{
		{"both present", CredentialPair{KeyID: "rzp_test_1", KeySecret: "s"}, true},
		{"missing secret", CredentialPair{KeyID: "rzp_test_1"}, false},
		{"missing key id", CredentialPair{KeySecret: "s"}, false},
		{"empty", CredentialPair{}, false},
	}
	for _, tc := range cases {
		if got := tc.pair.Usable(); got != tc.want {
			t.Fatalf("%s: Usable() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
