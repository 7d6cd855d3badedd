package auth

import (
	"strings"
	"testing"
)

func TestGenerateKeyID(t *testing.T) {
	id1, err := GenerateKeyID()
	if err != nil {
		t.Fatalf("GenerateKeyID failed: %v", err)
	}
	if !strings.HasPrefix(id1, KeyIDPrefix) {
		t.Errorf("key id %q missing prefix %q", id1, KeyIDPrefix)
	}
	if len(id1) != len(KeyIDPrefix)+KeyIDLength*2 {
		t.Errorf("key id length = %d, want %d", len(id1), len(KeyIDPrefix)+KeyIDLength*2)
	}

	id2, err := GenerateKeyID()
	if err != nil {
		t.Fatal(err)
	}
	if id1 == id2 {
		t.Error("key ids should be unique")
	}
}

func TestGenerateToken(t *testing.T) {
	token, prefix, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if !strings.HasPrefix(token, TokenPrefix) {
		t.Errorf("token %q missing prefix %q", token, TokenPrefix)
	}
	if len(prefix) != TokenPrefixLength {
		t.Errorf("prefix length = %d, want %d", len(prefix), TokenPrefixLength)
	}
	if ExtractTokenPrefix(token) != prefix {
		t.Error("extracted prefix does not match generated prefix")
	}
	if !IsValidTokenFormat(token) {
		t.Error("generated token should have a valid format")
	}
}

func TestHashAndVerifyToken(t *testing.T) {
	token, _, err := GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	if hash == token {
		t.Error("hash should not equal the token")
	}
	if !VerifyToken(token, hash) {
		t.Error("token should verify against its own hash")
	}
	if VerifyToken(TokenPrefix+strings.Repeat("0", TokenLength*2), hash) {
		t.Error("wrong token should not verify")
	}
}

func TestIsValidTokenFormat(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"MissingPrefix", strings.Repeat("a", TokenLength*2), false},
		{"TooShort", TokenPrefix + "abc123", false},
		{"NotHex", TokenPrefix + strings.Repeat("z", TokenLength*2), false},
		{"Valid", TokenPrefix + strings.Repeat("ab", TokenLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTokenFormat(tt.token); got != tt.want {
				t.Errorf("IsValidTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
