package service

import (
	"strings"
	"unicode"

	"github.com/oscoderuz/django-shablon/internal/config"
)

// passwordPolicyError 携带 i18n 键与参数，errors.Is 可匹配 ErrWeakPassword
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

// 账号属性短于该长度时不参与相似度检查
const minAttributeLength = 3

// validatePassword 按策略校验密码，attributes 为用户名、邮箱等账号属性
func validatePassword(policy config.PasswordPolicyConfig, password string, attributes ...string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RejectNumeric && password != "" && hasNumber && !hasUpper && !hasLower && !hasSpecial {
		return passwordPolicyError{key: "error.password_all_numeric"}
	}
	if policy.RejectSimilar && similarToAttributes(password, attributes) {
		return passwordPolicyError{key: "error.password_too_similar"}
	}
	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{key: "error.password_require_upper"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{key: "error.password_require_lower"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{key: "error.password_require_number"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{key: "error.password_require_special"}
	}
	return nil
}

// similarToAttributes 密码包含账号属性（邮箱取 @ 前部分），忽略大小写
func similarToAttributes(password string, attributes []string) bool {
	lowered := strings.ToLower(password)
	for _, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if at := strings.IndexByte(attr, '@'); at >= 0 {
			attr = attr[:at]
		}
		if len([]rune(attr)) < minAttributeLength {
			continue
		}
		if strings.Contains(lowered, attr) {
			return true
		}
	}
	return false
}
