package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles per client IP, with a tighter budget for
// the credential endpoints (registration and login).
type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

func NewRateLimitMiddleware(generalRPM int, authRPM int) *RateLimitMiddleware {
	if generalRPM <= 0 {
		generalRPM = 300
	}
	if authRPM <= 0 {
		authRPM = 20
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)
		limiter := m.getLimiter(clientIP)

		target := limiter.general
		if isCredentialRoute(r) {
			target = limiter.auth
		}

		if !target.Allow() {
			w.Header().Set("Retry-After", "60")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Too many requests"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isCredentialRoute matches POST /api/users (register) and POST /api/auth
// (login); GET /api/auth is an ordinary authenticated read.
func isCredentialRoute(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	path := strings.ToLower(strings.TrimRight(r.URL.Path, "/"))
	return path == "/api/users" || path == "/api/auth"
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.clients[clientIP]
	if !exists {
		limiter = &clientLimiter{
			general: rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM),
			auth:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM),
		}
		m.clients[clientIP] = limiter
	}
	limiter.lastSeen = time.Now()

	// Evict idle clients so the map does not grow without bound.
	if len(m.clients) > 10000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, c := range m.clients {
			if c.lastSeen.Before(cutoff) {
				delete(m.clients, ip)
			}
		}
	}

	return limiter
}

func extractClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
