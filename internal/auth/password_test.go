package auth

import (
	"strings"
	"testing"
)

// testCost keeps bcrypt fast in tests. Cost 4 is the bcrypt minimum.
const testCost = 4

func TestHashAndVerify(t *testing.T) {
	ps := NewPasswordServiceForTest(testCost)

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("hash %q does not look like bcrypt output", hash)
	}

	if err := ps.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := NewPasswordServiceForTest(testCost)

	hash, err := ps.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "pw2"); err == nil {
		t.Error("Verify() with wrong password should have failed")
	}
}

func TestHash_Salted(t *testing.T) {
	ps := NewPasswordServiceForTest(testCost)

	// Two hashes of the same password must differ — bcrypt salts each one.
	h1, err := ps.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — missing salt?")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := NewPasswordServiceForTest(testCost)

	_, err := ps.Hash(strings.Repeat("a", 73))
	if err == nil {
		t.Error("Hash() should reject passwords over 72 bytes")
	}
}
