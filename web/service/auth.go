package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xlzd/gotp"

	"github.com/cinecache/cinecache/config"
	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/util/crypto"

	"github.com/cinecache/cinecache/database/model"
)

// Token verification failure modes. The access guard answers 401 for all of
// them; the distinction exists so logs can tell tampering from expiry.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService issues and verifies HS256 bearer tokens and checks login
// credentials. The signing secret is read once at construction and never
// mutated afterwards.
type AuthService struct {
	JWTSecret []byte

	settingService SettingService
	userService    UserService
}

func NewAuthService() *AuthService {
	return &AuthService{
		JWTSecret: []byte(config.GetJWTSecret()),
	}
}

// Login checks the username/password pair (and the TOTP code when two-factor
// is enabled) and returns a signed bearer token for the user.
func (s *AuthService) Login(username string, password string, twoFactorCode string) (string, *model.User, error) {
	user, err := s.userService.GetUserByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return "", nil, err
	}

	if twoFactorEnable {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			return "", nil, err
		}
		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return "", nil, ErrInvalidCredentials
		}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken mints a signed token carrying the username as subject with the
// configured expiry window. There is no refresh mechanism; expiry is the only
// server-side deactivation.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	lifetime, err := s.settingService.GetTokenLifetimeHours()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(lifetime) * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// VerifyToken validates signature and expiry and returns the token subject.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil && token.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	default:
		return "", ErrTokenMalformed
	}
}
