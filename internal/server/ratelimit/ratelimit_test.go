package ratelimit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIEndpointsGetTightBudget(t *testing.T) {
	l := NewLimiter()
	defer l.Stop()

	_, limit, _ := l.Allow("1.2.3.4", "/api/v1/recommendations")
	assert.Equal(t, AILimit, limit)

	_, limit, _ = l.Allow("1.2.3.4", "/api/v1/guide")
	assert.Equal(t, AILimit, limit)

	_, limit, _ = l.Allow("1.2.3.4", "/api/v1/skills")
	assert.Equal(t, DefaultLimit, limit)
}

func TestBucketExhaustion(t *testing.T) {
	l := NewLimiter()
	defer l.Stop()

	for i := 0; i < AILimit; i++ {
		allowed, _, _ := l.Allow("9.9.9.9", "/api/v1/guide")
		assert.True(t, allowed, fmt.Sprintf("request %d within budget must pass", i))
	}

	allowed, _, remaining := l.Allow("9.9.9.9", "/api/v1/guide")
	assert.False(t, allowed, "request over budget must be rejected")
	assert.Zero(t, remaining)
}

func TestClientsAreIndependent(t *testing.T) {
	l := NewLimiter()
	defer l.Stop()

	for i := 0; i < AILimit; i++ {
		l.Allow("a", "/api/v1/guide")
	}
	allowed, _, _ := l.Allow("b", "/api/v1/guide")
	assert.True(t, allowed, "one client's exhaustion must not affect another")
}

func TestClassesAreIndependent(t *testing.T) {
	l := NewLimiter()
	defer l.Stop()

	for i := 0; i < AILimit; i++ {
		l.Allow("a", "/api/v1/recommendations")
	}
	allowed, _, _ := l.Allow("a", "/api/v1/skills")
	assert.True(t, allowed, "exhausting the AI budget must not block CRUD")
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter()
	defer l.Stop()

	l.Allow("a", "/api/v1/skills")
	assert.Len(t, l.buckets, 1)

	l.evictIdle(l.lastSeen["a:default"].Add(1))
	assert.Empty(t, l.buckets)
}
