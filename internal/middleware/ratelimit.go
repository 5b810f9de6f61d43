// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/core"
)

// RateLimitConfig describes one limiter. When Redis is unreachable the
// limiter enforces the same policy per instance, unless FailOpen is set.
type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	FailOpen   bool
	BypassFunc func(*http.Request) bool
	OnLimited  func(http.ResponseWriter, *http.Request, *redis_rate.Result)
}

// policy resolves the limit, the bucket key and an optional tier label for a
// request.
type policy func(r *http.Request) (redis_rate.Limit, string, category.AccessTier)

type RateLimiter struct {
	limiter  *redis_rate.Limiter
	buckets  *bucketSet
	config   RateLimitConfig
	policyOf policy
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	rl := &RateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		buckets: newBucketSet(),
		config:  cfg,
	}
	rl.policyOf = func(r *http.Request) (redis_rate.Limit, string, category.AccessTier) {
		return cfg.Limit, cfg.KeyFunc(r), ""
	}
	return rl
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.BypassFunc != nil && rl.config.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		limit, key, tier := rl.policyOf(r)

		res, err := rl.limiter.Allow(r.Context(), key, limit)
		if err != nil {
			if rl.config.FailOpen {
				slog.Warn("rate limiter unavailable, failing open",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			res = rl.buckets.take(key, limit)
		}

		if tier != "" {
			w.Header().Set("X-RateLimit-Tier", string(tier))
		}
		writeLimitHeaders(w, limit, res)

		if res.Allowed > 0 {
			next.ServeHTTP(w, r)
			return
		}
		if rl.config.OnLimited != nil {
			rl.config.OnLimited(w, r, res)
			return
		}
		writeLimited(w, res)
	})
}

// ClientIP takes the hop closest to the proxy from X-Forwarded-For, then
// X-Real-IP, then the socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.LastIndexByte(xff, ','); i >= 0 {
			xff = xff[i+1:]
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func KeyByIP(r *http.Request) string {
	return core.Key("ratelimit", "ip", ClientIP(r))
}

func KeyByUser(r *http.Request) string {
	if id := GetUserID(r.Context()); id != "" {
		return core.Key("ratelimit", "user", id)
	}
	return KeyByIP(r)
}

func KeyByUserAndEndpoint(r *http.Request) string {
	return KeyByUser(r) + ":endpoint:" + normalizeEndpoint(r.URL.Path)
}

// normalizeEndpoint collapses identifiers so /notes/<uuid> and /notes/<other>
// share a bucket.
func normalizeEndpoint(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if isIdentifier(seg) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func isIdentifier(seg string) bool {
	if seg == "" {
		return false
	}
	if _, err := strconv.ParseUint(seg, 10, 64); err == nil {
		return true
	}
	_, err := uuid.Parse(seg)
	return err == nil
}

func writeLimitHeaders(w http.ResponseWriter, limit redis_rate.Limit, res *redis_rate.Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
}

func writeLimited(w http.ResponseWriter, res *redis_rate.Result) {
	retry := max(int(res.RetryAfter.Seconds()), 1)
	msg := fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", retry)

	w.Header().Set("Retry-After", strconv.Itoa(retry))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(core.ErrorResponse{
		Error:   core.ErrorBody{Code: "RATE_LIMITED", Message: msg},
		Message: msg,
	})
}

const (
	bucketIdle = 10 * time.Minute
	sweepEvery = time.Minute
)

type bucket struct {
	tokens *rate.Limiter
	seen   time.Time
}

// bucketSet is the per-instance token bucket used while Redis is down. Idle
// buckets are dropped lazily on access.
type bucketSet struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketSet() *bucketSet {
	return &bucketSet{buckets: make(map[string]*bucket)}
}

func (s *bucketSet) take(key string, limit redis_rate.Limit) *redis_rate.Result {
	perSecond := float64(limit.Rate) / limit.Period.Seconds()
	interval := time.Duration(float64(time.Second) / perSecond)
	now := time.Now()

	s.mu.Lock()
	if now.Sub(s.lastSweep) >= sweepEvery {
		for k, b := range s.buckets {
			if now.Sub(b.seen) > bucketIdle {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		s.buckets[key] = b
	}
	b.seen = now
	allowed := b.tokens.AllowN(now, 1)
	remaining := max(int(b.tokens.TokensAt(now)), 0)
	s.mu.Unlock()

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	return res
}

type TierConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// DefaultTiers is keyed by category access tier. Anonymous callers and admins
// fall back to the "" entry.
var DefaultTiers = map[category.AccessTier]TierConfig{
	"":                {RequestsPerMinute: 60, BurstSize: 10},
	category.Academic: {RequestsPerMinute: 120, BurstSize: 20},
	category.Premium:  {RequestsPerMinute: 600, BurstSize: 100},
}

// TieredRateLimiter limits authenticated callers by the access tier of the
// category carried in their token. It must run after Authenticator.
func TieredRateLimiter(
	rdb *redis.Client,
	tiers map[category.AccessTier]TierConfig,
) func(http.Handler) http.Handler {
	rl := NewRateLimiter(rdb, RateLimitConfig{KeyFunc: KeyByUser})
	rl.policyOf = func(r *http.Request) (redis_rate.Limit, string, category.AccessTier) {
		tier := accessTier(r)
		tc, ok := tiers[tier]
		if !ok {
			tc = tiers[""]
		}
		return PerMinute(tc.RequestsPerMinute, tc.BurstSize), KeyByUser(r) + ":tier", tier
	}
	return rl.Handler
}

func accessTier(r *http.Request) category.AccessTier {
	info, err := category.Lookup(category.Category(GetUserCategory(r.Context())))
	if err != nil {
		return ""
	}
	return info.Tier
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: time.Minute}
}
