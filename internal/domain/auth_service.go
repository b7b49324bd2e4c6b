package domain

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

var ErrInvalidPassword = errors.New("invalid password")

// TokenTTL bounds how long a history token stays valid.
const TokenTTL = 12 * time.Hour

type authService struct {
	repo   ports.AuthRepo
	secret []byte
	now    func() time.Time
}

// NewAuthService signs tokens with secret. An empty secret is replaced by
// random bytes, so tokens then only survive until restart.
func NewAuthService(repo ports.AuthRepo, secret string) ports.AuthService {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("auth: no entropy for signing key: " + err.Error())
		}
	}
	return &authService{
		repo:   repo,
		secret: key,
		now:    time.Now,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	realPass, err := s.repo.GetPassword(ctx)
	if err != nil {
		return "", err
	}
	if realPass == "" || !hmac.Equal([]byte(password), []byte(realPass)) {
		return "", ErrInvalidPassword
	}

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// token: <expiry unix>.<nonce hex>.<signature hex>
	payload := strconv.FormatInt(s.now().Add(TokenTTL).Unix(), 10) + "." + hex.EncodeToString(nonce)
	return payload + "." + s.sign(payload), nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false, nil
	}

	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(s.sign(payload))) {
		return false, nil
	}

	exp, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false, nil
	}
	return s.now().Unix() < exp, nil
}

func (s *authService) sign(msg string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte("history|" + msg))
	return hex.EncodeToString(h.Sum(nil))
}
