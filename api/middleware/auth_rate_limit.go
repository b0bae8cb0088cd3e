package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/permataindah/storefront-backend/api/responses"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// maxAuthBodyBytes caps how much of an auth request body the limiter reads
// when extracting the identity. Auth payloads are small JSON documents.
const maxAuthBodyBytes = 64 << 10

// AuthRateLimitPolicy defines the throttling parameters for a traffic surface.
// A zero window or all-zero limits disable the middleware entirely.
type AuthRateLimitPolicy struct {
	name          string
	window        time.Duration
	ipLimit       int
	identityLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, identityLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:          strings.ToLower(strings.TrimSpace(name)),
		window:        window,
		ipLimit:       ipLimit,
		identityLimit: identityLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.identityLimit > 0)
}

func (p AuthRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p AuthRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:%s:%s", p.normalizedName(), ip)
}

func (p AuthRateLimitPolicy) identityKey(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("rl:identity:%s:%s", p.normalizedName(), hash)
}

// authLimiter is the per-route state behind the AuthRateLimit handler.
type authLimiter struct {
	policy AuthRateLimitPolicy
	store  rateLimiterStore
	logg   *logger.Logger
}

// AuthRateLimit enforces per-IP and per-identity counters for auth endpoints.
// Identity is the submitted email, or the username for the admin login form.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		l := &authLimiter{policy: policy, store: store, logg: logg}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.serve(w, r, next)
		})
	}
}

func (l *authLimiter) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := r.Context()

	if l.policy.ipLimit > 0 {
		ip := clientIP(r)
		if done := l.check(ctx, w, l.policy.ipKey(ip), l.policy.ipLimit, "ip", ip, ""); done {
			return
		}
	}

	if l.policy.identityLimit > 0 {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBodyBytes+1))
		if err != nil {
			responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
			return
		}
		if len(body) > maxAuthBodyBytes {
			responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeValidation, "request body too large"))
			return
		}
		// The handler downstream still needs the body.
		r.Body = io.NopCloser(bytes.NewReader(body))

		if identity := normalizeIdentity(extractIdentity(body)); identity != "" {
			hash := hashValue(identity)
			if done := l.check(ctx, w, l.policy.identityKey(hash), l.policy.identityLimit, "identity", "", hash); done {
				return
			}
		}
	}

	next.ServeHTTP(w, r)
}

// check increments the counter at key and writes the 429 or 503 response
// when the request must not proceed. It reports whether a response was
// written.
func (l *authLimiter) check(ctx context.Context, w http.ResponseWriter, key string, limit int, scope, ip, identityHash string) bool {
	if key == "" {
		return false
	}

	count, err := l.store.IncrWithTTL(ctx, key, l.policy.window)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if count <= int64(limit) {
		return false
	}

	if l.logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"policy":         l.policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(l.policy.window.Seconds()),
		}
		if ip != "" {
			fields["ip"] = ip
		}
		if identityHash != "" {
			fields["identity_hash"] = identityHash
		}
		l.logg.Warn(l.logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
	return true
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractIdentity(payload []byte) string {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Email != "" {
		return body.Email
	}
	return body.Username
}

func normalizeIdentity(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
