package validator

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

const minPasswordLength = 8

// 先頭の+は任意、数字7〜15桁
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// よくある弱いパスワード
var weakPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwertyuiop":  {},
	"qwerty123":   {},
	"iloveyou":    {},
	"letmein123":  {},
	"admin123":    {},
	"11111111":    {},
}

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(phone, password string) error {
	if strings.TrimSpace(phone) == "" || password == "" {
		return usecase.ErrValidation("phoneNumber and password are required")
	}
	if !IsPhoneNumber(phone) {
		return usecase.ErrValidation("invalid phoneNumber")
	}
	return v.ValidatePassword(password)
}

// ログインは形式だけ見る（存在しない番号は401にする）
func (v *authValidator) ValidateLogin(phone, password string) error {
	if strings.TrimSpace(phone) == "" || password == "" {
		return usecase.ErrValidation("phoneNumber and password are required")
	}
	return nil
}

func (v *authValidator) ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return usecase.ErrValidation("password must be at least 8 characters")
	}
	if isWeakPassword(password) {
		return usecase.ErrValidation("password is too weak")
	}
	return nil
}

// 空なら未指定扱い
func (v *authValidator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return usecase.ErrValidation("invalid email")
	}
	return nil
}

func IsPhoneNumber(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

func isWeakPassword(password string) bool {
	_, ok := weakPasswords[strings.ToLower(strings.TrimSpace(password))]
	return ok
}
