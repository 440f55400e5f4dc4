package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("CheckPassword rejected the right password: %v", err)
	}

	if err := CheckPassword(hash, "wrong password"); err == nil {
		t.Fatal("CheckPassword accepted the wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	h2, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// must error, never panic
	if err := CheckPassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatal("CheckPassword accepted a malformed hash")
	}

	if err := CheckPassword("", "anything"); err == nil {
		t.Fatal("CheckPassword accepted an empty hash")
	}
}
