package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

// Claims is the payload carried by access tokens: subject id and role plus
// the registered timestamps.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
}

// TokenService signs and verifies HMAC access tokens. The signing key comes
// from configuration and must be identical across every process of a
// deployment.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewTokenService(signingKey []byte, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Sign issues a token for the user, valid for the configured window.
func (ts *TokenService) Sign(userID int64, role domain.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.signingKey)
}

// Verify parses and validates a token string. Malformed, expired and
// badly signed tokens all collapse into domain.ErrInvalidToken so callers
// cannot distinguish why verification failed.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return ts.signingKey, nil
	}, jwt.WithIssuer(ts.issuer))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
