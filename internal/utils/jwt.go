// Package utils holds the token primitives shared by the auth service and
// the JWT middleware.
package utils

import (
    "crypto/rand"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every reason an access token is refused.
var ErrInvalidToken = errors.New("invalid token")

const refreshBytes = 48

type AccessToken struct {
    Token string
    Exp   time.Time
}

// RefreshToken is handed to the client once; only HashRefreshRaw(Raw) is persisted.
type RefreshToken struct {
    Raw string
    Exp time.Time
}

// Claims is the access token payload. RegisteredClaims.Subject is the user id.
type Claims struct {
    Email string `json:"email"`
    Role  string `json:"role"`
    jwt.RegisteredClaims
}

var parser = jwt.NewParser(
    jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
    jwt.WithExpirationRequired(),
    jwt.WithIssuedAt(),
)

func NewAccessToken(secret, userID, email, role string, ttlMin int) (AccessToken, error) {
    issued := time.Now().UTC()
    out := AccessToken{Exp: issued.Add(time.Duration(ttlMin) * time.Minute)}

    var err error
    out.Token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
        Email: email,
        Role:  role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   userID,
            IssuedAt:  jwt.NewNumericDate(issued),
            ExpiresAt: jwt.NewNumericDate(out.Exp),
        },
    }).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return out, nil
}

// ParseAccessToken accepts only HS256 tokens signed with secret that carry
// a subject and an expiry in the future.
func ParseAccessToken(secret, raw string) (*Claims, error) {
    var c Claims
    _, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
        return []byte(secret), nil
    })
    if err != nil || c.Subject == "" {
        return nil, ErrInvalidToken
    }
    return &c, nil
}

func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    b := make([]byte, refreshBytes)
    if _, err := rand.Read(b); err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: hex.EncodeToString(b),
        Exp: time.Now().UTC().AddDate(0, 0, ttlDays),
    }, nil
}

// HashRefreshRaw is the hex SHA-256 of a raw refresh token.
func HashRefreshRaw(raw string) string {
    h := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(h[:])
}
