package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/budunsigorta/backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "budun-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	companyID := uuid.New()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:    uuid.New(),
		Username:  "ayse",
		IsAdmin:   false,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, "ayse", claims.Username)
	require.False(t, claims.IsAdmin)
	require.NotNil(t, claims.CompanyID)
	require.Equal(t, companyID, *claims.CompanyID)
	require.NotEmpty(t, claims.ID, "jti should be populated")
}

func TestMintAccessTokenValidation(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	_, err := MintAccessToken(cfg, now, AccessTokenPayload{Username: "no-id"})
	require.Error(t, err)

	_, err = MintAccessToken(cfg, now, AccessTokenPayload{UserID: uuid.New()})
	require.Error(t, err)

	badCfg := cfg
	badCfg.Secret = ""
	_, err = MintAccessToken(badCfg, now, AccessTokenPayload{UserID: uuid.New(), Username: "x"})
	require.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Username: "ayse"})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, signed)
	require.Error(t, err)
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-2 * time.Hour)

	signed, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: uuid.New(), Username: "ayse", JTI: "fixed-jti"})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	require.Error(t, err, "expired token must fail strict parse")

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, "fixed-jti", claims.ID)
}
