package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/quizforge-backend/internal/config"
)

type corsPolicy struct {
	anyOrigin bool
	origins   map[string]struct{}
}

func newCORSPolicy(allowedOrigins string) corsPolicy {
	p := corsPolicy{origins: make(map[string]struct{})}
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			p.anyOrigin = true
		default:
			p.origins[o] = struct{}{}
		}
	}
	return p
}

func (p corsPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.anyOrigin {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// CORS lets the browser dashboard call the API. The matching origin is
// echoed back rather than "*" so credentialed requests keep working, and
// the request id header is exposed for support tickets.
//
// Only OPTIONS requests carrying Access-Control-Request-Method are answered
// here; any other OPTIONS request reaches the router.
func CORS(cfg config.CORSConfig) Middleware {
	policy := newCORSPolicy(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := policy.allows(origin)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", RequestIDHeader)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
					h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
					h.Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
