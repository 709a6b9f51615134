package credentials

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenData struct {
	UserID int64
	Exp    int64
}

// TokenSigner issues and validates HS256 access tokens. The subject claim
// carries the user ID.
type TokenSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenSigner(secret, issuer string, ttl time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &TokenSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (t *TokenSigner) Issue(userID int64) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses AND validates the signature, expiry and issuer of the token.
// A leading "Bearer " is accepted.
func (t *TokenSigner) Validate(tokenString string) (*TokenData, error) {
	clean := sanitizeToken(tokenString)
	if clean == "" {
		return nil, errors.New("token is empty")
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(clean, &claims, t.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject %q: %w", claims.Subject, err)
	}

	return &TokenData{
		UserID: userID,
		Exp:    claims.ExpiresAt.Unix(),
	}, nil
}

func (t *TokenSigner) keyfunc(*jwt.Token) (any, error) {
	return t.secret, nil
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}
