package utils

import (
	"strconv"
	"time"

	"github.com/hamza-olgun/react-chat-app/config"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	Id       string
	Username string
	Otp      bool
	Exp      int64
}

// UserID converts the string id claim to a database id.
func (m *TokenMetadata) UserID() uint {
	id, _ := strconv.ParseUint(m.Id, 10, 64)
	return uint(id)
}

// GenerateTokens func for generate a new Access & Refresh tokens.
func GenerateTokens(id string, username string, otp bool) (*Tokens, error) {
	accessToken, err := generateToken(
		id,
		username,
		otp,
		"JWT_ACCESS_EXPIRE",
		"JWT_ACCESS_KEY",
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(
		id,
		username,
		otp,
		"JWT_REFRESH_EXPIRE",
		"JWT_REFRESH_KEY",
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(id string, username string, otp bool, expire string, key string) (string, error) {
	minutesCount, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{}

	claims["id"] = id
	claims["username"] = username
	claims["otp"] = otp
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	t, err := token.SignedString([]byte(config.Config(key)))
	if err != nil {
		return "", err
	}

	return t, nil
}

// CheckAndExtractTokenMetadata validates a bearer credential and yields the
// identity baked into it. The identity attached to a connection comes from
// here, never from client-supplied payload fields.
func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(jwt.MapClaims); ok && t.Valid {
		id, ok := claims["id"].(string)
		if !ok {
			return nil, jwt.ErrTokenInvalidClaims
		}
		username, _ := claims["username"].(string)
		otp, _ := claims["otp"].(bool)
		exp, _ := claims["exp"].(float64)
		return &TokenMetadata{
			Id:       id,
			Username: username,
			Otp:      otp,
			Exp:      int64(exp),
		}, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
