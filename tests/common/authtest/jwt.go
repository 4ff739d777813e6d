//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/jwt"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints bearer tokens the way the identity service does, using the
// secret from the application config.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// Customer returns a fresh customer id and a token for it.
func (h *JWTHelper) Customer(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, user.RoleCustomer)
}

func (h *JWTHelper) Staff(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, user.RoleStaff)
}

// CreateExpiredToken signs a token whose expiry is well past the validation leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	issued := time.Now().Add(-2 * time.Hour)
	claims := jwt.Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: gjwt.RegisteredClaims{
			Issuer:    "salon-booking",
			Subject:   userID.String(),
			IssuedAt:  gjwt.NewNumericDate(issued),
			ExpiresAt: gjwt.NewNumericDate(issued.Add(time.Hour)),
		},
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return token
}
