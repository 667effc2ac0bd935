package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// ContentSecurityPolicy allows same-origin content plus the jsdelivr CDN for styles and fonts.
const ContentSecurityPolicy = "default-src 'self'; " +
	"style-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"font-src 'self' https://cdn.jsdelivr.net"

// SecurityHeaders sets CSP and related headers on every response. HTTPS redirect and HSTS
// are enabled only in production.
func SecurityHeaders(production bool) func(http.Handler) http.Handler {
	opts := secure.Options{
		ContentSecurityPolicy: ContentSecurityPolicy,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	}
	if production {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return secure.New(opts).Handler
}
