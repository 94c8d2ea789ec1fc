package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "test-issuer",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken("user-1", "user@example.com", "entrepreneur")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" || claims.Role != "entrepreneur" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateToken("user-1", "user@example.com", "mentor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = svc.ValidateAndExtractClaims(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test-issuer",
	})

	token, _, err := svc.GenerateToken("user-1", "user@example.com", "investor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateAndExtractClaims(token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw token", "abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password must not verify")
	}
}
