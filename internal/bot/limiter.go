package bot

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// userLimiter throttles updates per Telegram user. Idle limiters expire.
type userLimiter struct {
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newUserLimiter(requestsPerMin int) *userLimiter {
	if requestsPerMin <= 0 {
		requestsPerMin = 30
	}
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &userLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](maxTrackedUsers, nil, 5*time.Minute),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (l *userLimiter) Allow(userID int64) bool {
	limiter, ok := l.limiters.Get(userID)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(userID, limiter)
	}
	return limiter.Allow()
}
