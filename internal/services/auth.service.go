package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer        = "netbar"
	minSecretKeyLength = 32
)

// TokenIssuer signs and validates JWTs for API and WebSocket clients
type TokenIssuer struct {
	secretKey   []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

// ClientClaims represents the JWT claims structure
type ClientClaims struct {
	ClientName string `json:"client_name"`
	jwt.RegisteredClaims
}

// DefaultSecretKeyFile is where a generated key is persisted between runs
func DefaultSecretKeyFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return filepath.Join(os.TempDir(), ".netbar-secret-key")
	}
	return filepath.Join(homeDir, ".netbar-secret-key")
}

// NewTokenIssuer uses secretKey when given, otherwise loads the key from
// keyFile, generating and persisting a new one when the file is missing.
func NewTokenIssuer(secretKey, keyFile string, tokenExpiry time.Duration) (*TokenIssuer, error) {
	secretKey = strings.TrimSpace(secretKey)

	if secretKey == "" {
		key, err := loadOrCreateSecretKey(keyFile)
		if err != nil {
			return nil, err
		}
		secretKey = key
	}

	if len(secretKey) < minSecretKeyLength {
		return nil, fmt.Errorf("secret key is only %d bytes, need at least %d for HMAC-SHA256", len(secretKey), minSecretKeyLength)
	}

	if tokenExpiry <= 0 {
		tokenExpiry = 90 * 24 * time.Hour
	}

	return &TokenIssuer{
		secretKey:   []byte(secretKey),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}, nil
}

func loadOrCreateSecretKey(keyFile string) (string, error) {
	if keyFile == "" {
		keyFile = DefaultSecretKeyFile()
	}

	if data, err := os.ReadFile(keyFile); err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			log.Printf("[AUTH] Loaded persisted secret key from %s", keyFile)
			return key, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read secret key: %w", err)
	}

	randomBytes := make([]byte, minSecretKeyLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	key := hex.EncodeToString(randomBytes)

	if err := os.WriteFile(keyFile, []byte(key), 0o600); err != nil {
		log.Printf("[AUTH] Warning: Could not persist secret key to %s: %v", keyFile, err)
	} else {
		log.Printf("[AUTH] Generated and persisted secret key to %s", keyFile)
	}
	return key, nil
}

// GenerateToken creates a signed token for a named client
func (ti *TokenIssuer) GenerateToken(clientName string) (string, error) {
	now := ti.now()
	claims := ClientClaims{
		ClientName: clientName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secretKey)
}

// ValidateToken verifies and parses a token
func (ti *TokenIssuer) ValidateToken(tokenString string) (*ClientClaims, error) {
	claims := &ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TokenExpiry returns when a token issued now would expire
func (ti *TokenIssuer) TokenExpiry() time.Time {
	return ti.now().Add(ti.tokenExpiry)
}
