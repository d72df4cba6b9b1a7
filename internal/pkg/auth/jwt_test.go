package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
)

func newTestJWTService(expiry time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:     "test-secret-key-for-unit-tests",
		TokenExpiry:   expiry,
		TokenIssuer:   "sims.test",
		TokenAudience: "sims.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "jdoe",
		Role:     models.RoleTeacher,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "jdoe" {
		t.Errorf("Username = %q, want %q", claims.Username, "jdoe")
	}
	if claims.Role != string(models.RoleTeacher) {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleTeacher)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "42")
	}
	if claims.ID == "" {
		t.Error("token ID (jti) is empty")
	}
}

func TestValidateTokenFailuresAreUniform(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	expired := newTestJWTService(-time.Minute)
	expiredToken, _, err := expired.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	otherSecret := NewJWTService(JWTConfig{
		SecretKey:     "a-completely-different-secret",
		TokenExpiry:   time.Hour,
		TokenIssuer:   "sims.test",
		TokenAudience: "sims.test",
	})
	forgedToken, _, err := otherSecret.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	otherIssuer := NewJWTService(JWTConfig{
		SecretKey:     "test-secret-key-for-unit-tests",
		TokenExpiry:   time.Hour,
		TokenIssuer:   "someone-else",
		TokenAudience: "sims.test",
	})
	wrongIssuerToken, _, err := otherIssuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"garbage", "not.a.token"},
		{"expired", expiredToken},
		{"wrong signature", forgedToken},
		{"wrong issuer", wrongIssuerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			if !errors.Is(err, apperrors.ErrTokenInvalid) {
				t.Errorf("ValidateToken() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"no prefix", "abc.def.ghi", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"lowercase scheme", "bearer abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
