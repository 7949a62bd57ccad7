// Package i18n looks up UI strings by dotted key and fills {{param}} placeholders.
//
// The active language is always passed in explicitly, usually via the request
// context set by the HTTP layer.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

var Supported = []Language{English, Spanish}

//go:embed locales/*.yaml
var localesFS embed.FS

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

type Bundle struct {
	catalogs map[Language]map[string]any
}

// Load parses the embedded catalogs for every supported language.
func Load() (*Bundle, error) {
	b := &Bundle{catalogs: make(map[Language]map[string]any, len(Supported))}
	for _, lang := range Supported {
		data, err := localesFS.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", lang, err)
		}
		catalog := map[string]any{}
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("parse %s catalog: %w", lang, err)
		}
		b.catalogs[lang] = catalog
	}
	return b, nil
}

// Translate returns key itself when it does not resolve to a string.
// Placeholders without a matching param are left as they are.
func (b *Bundle) Translate(lang Language, key string, params map[string]string) string {
	var node any = b.catalogs[lang]
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return key
		}
		if node, ok = m[part]; !ok {
			return key
		}
	}

	value, ok := node.(string)
	if !ok {
		return key
	}
	if len(params) == 0 {
		return value
	}
	return placeholder.ReplaceAllStringFunc(value, func(match string) string {
		if v := params[match[2:len(match)-2]]; v != "" {
			return v
		}
		return match
	})
}

// Translator is a Bundle bound to one language.
type Translator struct {
	bundle *Bundle
	lang   Language
}

func (b *Bundle) For(lang Language) Translator {
	return Translator{bundle: b, lang: lang}
}

func (t Translator) Language() Language { return t.lang }

func (t Translator) T(key string, params map[string]string) string {
	return t.bundle.Translate(t.lang, key, params)
}

type ctxKey struct{}

func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LanguageFrom falls back to English when ctx carries no language.
func LanguageFrom(ctx context.Context) Language {
	if lang, ok := ctx.Value(ctxKey{}).(Language); ok {
		return lang
	}
	return English
}
