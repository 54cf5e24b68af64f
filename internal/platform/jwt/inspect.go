package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken は空文字列のトークンを検査しようとした場合に返されます。
var ErrEmptyToken = errors.New("empty token")

// TokenInfo は署名を検証せずに読み取ったトークンの内容です。
type TokenInfo struct {
	Algorithm string
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an exp claim that lies before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// Inspect はトークンをデコードしてクレームを返します。署名は検証しません。
// クライアントは保存済みトークンを表示するためだけに使用し、認可の判断には使いません。
func Inspect(tokenStr string) (TokenInfo, error) {
	if tokenStr == "" {
		return TokenInfo{}, ErrEmptyToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{}, fmt.Errorf("failed to decode token: %w", err)
	}

	info := TokenInfo{Algorithm: token.Method.Alg()}
	if sub, err := token.Claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := token.Claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info, nil
}
