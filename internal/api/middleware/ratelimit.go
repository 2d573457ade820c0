package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"

	defaultLimiterIdleTTL = 10 * time.Minute
)

// IPRateLimiter хранит отдельный limiter на каждый IP
// Limiter удаляется из кэша, если с IP не было запросов дольше idleTTL
type IPRateLimiter struct {
	limiters *cache.Cache
	r        rate.Limit
	b        int
}

// NewIPRateLimiter создает новый IPRateLimiter
// rps - запросов в секунду, burst - размер всплеска, idleTTL - время жизни неактивного limiter
func NewIPRateLimiter(rps float64, burst int, idleTTL time.Duration) *IPRateLimiter {
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}
	return &IPRateLimiter{
		limiters: cache.New(idleTTL, idleTTL),
		r:        rate.Limit(rps),
		b:        burst,
	}
}

// GetLimiter возвращает limiter для IP, создавая его при первом обращении
// Каждое обращение продлевает время жизни limiter
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	if cached, found := i.limiters.Get(ip); found {
		limiter := cached.(*rate.Limiter)
		i.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	if err := i.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// Параллельный запрос успел создать limiter
		if cached, found := i.limiters.Get(ip); found {
			return cached.(*rate.Limiter)
		}
		i.limiters.SetDefault(ip, limiter)
	}
	return limiter
}

// Size количество отслеживаемых IP
func (i *IPRateLimiter) Size() int {
	return i.limiters.ItemCount()
}

// Middleware ограничивает частоту запросов с одного IP
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.GetLimiter(clientIP(r)).Allow() {
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
