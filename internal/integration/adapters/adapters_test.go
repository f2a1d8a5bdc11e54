package adapters

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTokenServiceForTest(t *testing.T) *tokenService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenService("test-secret", client).(*tokenService)
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()

	t.Run("issued tokens validate as their own type", func(t *testing.T) {
		service := newTokenServiceForTest(t)
		userID := uuid.New()

		pair, err := service.GenerateTokenPair(ctx, userID, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID || claims.Username != "ayse" {
			t.Errorf("expected claims for ayse/%s, got %+v", userID, claims)
		}

		if _, err := service.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects a token of the wrong type", func(t *testing.T) {
		service := newTokenServiceForTest(t)

		pair, err := service.GenerateTokenPair(ctx, uuid.New(), "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := service.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected a refresh token to fail access validation")
		}
		if _, err := service.ValidateRefreshToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected an access token to fail refresh validation")
		}
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		service := newTokenServiceForTest(t)

		pair, err := service.GenerateTokenPair(ctx, uuid.New(), "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
		if _, err := service.ValidateAccessToken(ctx, tampered); err == nil {
			t.Error("expected a tampered token to fail")
		}
	})

	t.Run("denylisted refresh tokens stop validating", func(t *testing.T) {
		service := newTokenServiceForTest(t)

		pair, err := service.GenerateTokenPair(ctx, uuid.New(), "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		valid, err := service.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil || !valid {
			t.Fatalf("expected a fresh token to be valid, got %v, %v", valid, err)
		}

		if err := service.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		valid, err = service.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valid {
			t.Error("expected the token to be denied after invalidation")
		}
	})

	t.Run("invalidating garbage is a no-op", func(t *testing.T) {
		service := newTokenServiceForTest(t)

		if err := service.InvalidateRefreshToken(ctx, "not-a-jwt"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPasswordService(t *testing.T) {
	service := NewPasswordService()

	t.Run("hashes verify against the original password", func(t *testing.T) {
		hash, err := service.HashPassword("1234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hash == "1234" || !strings.HasPrefix(hash, "$2") {
			t.Fatalf("expected a bcrypt hash, got %q", hash)
		}

		if err := service.VerifyPassword(hash, "1234"); err != nil {
			t.Errorf("expected the password to verify, got %v", err)
		}
		if err := service.VerifyPassword(hash, "wrong"); err == nil {
			t.Error("expected a wrong password to fail")
		}
	})

	t.Run("enforces the minimum length", func(t *testing.T) {
		if err := service.ValidatePasswordStrength("123"); err == nil {
			t.Error("expected a three-character password to be rejected")
		}
		if err := service.ValidatePasswordStrength("1234"); err != nil {
			t.Errorf("expected a four-character password to pass, got %v", err)
		}
	})
}

func TestFriendCodeService(t *testing.T) {
	service := NewFriendCodeService()
	pattern := regexp.MustCompile(`^[A-HJ-NP-Z2-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := service.Generate()
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match the alphabet", code)
		}
		seen[code] = true
	}
	// 32^6 possible codes; a hundred draws colliding down to a handful
	// would mean the randomness source is broken.
	if len(seen) < 90 {
		t.Errorf("expected mostly distinct codes, got %d unique out of 100", len(seen))
	}
}
