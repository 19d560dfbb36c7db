package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == password {
		t.Fatal("HashPassword() returned the plain text password")
	}

	if err := VerifyPassword(hash, password); err != nil {
		t.Errorf("VerifyPassword() rejected correct password: %v", err)
	}

	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("VerifyPassword() accepted wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
