package i18n

import (
	"fmt"
	"strings"

	"github.com/oscoderuz/django-shablon/internal/constants"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const localeQueryKey = "lang"

var (
	supportedTags = []language.Tag{
		language.Uzbek,
		language.AmericanEnglish,
		language.Russian,
	}
	tagLocales = map[language.Tag]string{
		language.Uzbek:           constants.LocaleUz,
		language.AmericanEnglish: constants.LocaleEnUS,
		language.Russian:         constants.LocaleRu,
	}
	matcher = language.NewMatcher(supportedTags)
)

// DefaultLocale 默认语言
func DefaultLocale() string {
	return constants.LocaleUz
}

// ResolveLocale 解析请求语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale()
	}
	if raw := strings.TrimSpace(c.Query(localeQueryKey)); raw != "" {
		return NormalizeLocale(raw)
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// MatchAcceptLanguage 按 Accept-Language 选择最接近的受支持语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale()
	}
	return tagLocales[supportedTags[index]]
}

// NormalizeLocale 归一化语言标识，不支持时回退默认语言
func NormalizeLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLocale()
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale()
	}
	return tagLocales[supportedTags[index]]
}

// T 翻译消息，缺失时依次回退到其他语言，最后返回 key
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	for _, fallback := range constants.SupportedLocales {
		if msg, ok := lookup(fallback, key); ok {
			return msg
		}
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
