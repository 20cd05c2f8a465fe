// Package ratelimit provides per-client, per-endpoint rate limiting backed by
// token buckets from golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IdleBucketTTL is how long an unused bucket survives cleanup
const IdleBucketTTL = time.Hour

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages one token bucket per client and endpoint.
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	config      *Config
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if ec.Limit <= 0 || ec.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	lim := l.getBucket(clientID+":"+endpoint+":"+method, *ec, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)
	perSecond := float64(lim.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: max(0, int(math.Floor(tokens))),
		ResetTime: now.Add(secondsToDuration((float64(lim.Burst()) - tokens) / perSecond)),
	}
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, ec EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastAccess = now
		return b.limiter
	}

	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	every := rate.Limit(float64(ec.Limit) / ec.Window.Seconds())
	b := &bucket{limiter: rate.NewLimiter(every, burst), lastAccess: now}
	l.buckets[key] = b
	return b.limiter
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets(time.Now().Add(-IdleBucketTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets not used since cutoff.
func (l *Limiter) cleanupBuckets(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
