// Package share builds the links an organizer hands out after a draw.
package share

import (
	"net/url"
	"strings"

	"github.com/DoyleJ11/gift-exchange/internal/i18n"
)

const (
	URLPlaceholder = "{{url}}"
	whatsAppBase   = "https://wa.me/?text="
)

func RevealURL(baseURL, tok string) string {
	return strings.TrimRight(baseURL, "/") + "/reveal/" + tok
}

// Message uses the organizer's custom text when there is any, either filling
// the first {{url}} placeholder or appending the link after a blank line.
func Message(tr i18n.Translator, custom, link string) string {
	if strings.TrimSpace(custom) == "" {
		return tr.T("results.whatsappMessage", map[string]string{"url": link})
	}
	if strings.Contains(custom, URLPlaceholder) {
		return strings.Replace(custom, URLPlaceholder, link, 1)
	}
	return custom + "\n\n" + link
}

func WhatsAppURL(message string) string {
	return whatsAppBase + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
