package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish})

// Resolve picks the response language for a request. Branded subdomains win,
// then the hl query parameter, then Accept-Language. English is the default.
func Resolve(host, hl, acceptLanguage string) Language {
	subdomain := strings.ToLower(strings.SplitN(host, ".", 2)[0])
	switch {
	case subdomain == "amigo-invisible":
		return Spanish
	case strings.HasPrefix(subdomain, "secret-santa"):
		return English
	}

	if lang, ok := match(hl); ok {
		return lang
	}
	if lang, ok := match(acceptLanguage); ok {
		return lang
	}
	return English
}

func match(pref string) (Language, bool) {
	if strings.TrimSpace(pref) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Supported[idx], true
}
