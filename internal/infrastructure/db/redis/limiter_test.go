package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// memoryRedis answers GET, INCR, EXPIRE and DEL from memory through a
// client hook, so no server is contacted. MULTI/EXEC batches apply all or
// nothing.
type memoryRedis struct {
	mu       sync.Mutex
	counters map[string]int64
	ttls     map[string]int64
	// fail makes the next command with this name fail.
	fail map[string]error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{
		counters: map[string]int64{},
		ttls:     map[string]int64{},
		fail:     map[string]error{},
	}
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("memoryRedis: no dialing")
	}
}

func (m *memoryRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if err := m.takeFailure(cmd.Name()); err != nil {
			cmd.SetErr(err)
			return err
		}
		m.apply(cmd)
		return cmd.Err()
	}
}

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, cmd := range cmds {
			if err := m.takeFailure(cmd.Name()); err != nil {
				for _, c := range cmds {
					c.SetErr(err)
				}
				return err
			}
		}
		for _, cmd := range cmds {
			m.apply(cmd)
		}
		return nil
	}
}

func (m *memoryRedis) takeFailure(name string) error {
	err, ok := m.fail[name]
	if !ok {
		return nil
	}
	delete(m.fail, name)
	return err
}

func (m *memoryRedis) apply(cmd redis.Cmder) {
	args := cmd.Args()
	switch c := cmd.(type) {
	case *redis.StringCmd: // get
		n, ok := m.counters[argString(args, 1)]
		if !ok {
			c.SetErr(redis.Nil)
			return
		}
		c.SetVal(strconv.FormatInt(n, 10))
	case *redis.IntCmd:
		key := argString(args, 1)
		switch cmd.Name() {
		case "incr":
			m.counters[key]++
			c.SetVal(m.counters[key])
		case "del":
			_, ok := m.counters[key]
			delete(m.counters, key)
			delete(m.ttls, key)
			if ok {
				c.SetVal(1)
			}
		}
	case *redis.BoolCmd: // expire [nx]
		key := argString(args, 1)
		if _, ok := m.counters[key]; !ok {
			c.SetVal(false)
			return
		}
		nx := len(args) > 3 && strings.EqualFold(argString(args, 3), "nx")
		if _, has := m.ttls[key]; has && nx {
			c.SetVal(false)
			return
		}
		secs, _ := strconv.ParseInt(argString(args, 2), 10, 64)
		m.ttls[key] = secs
		c.SetVal(true)
	case *redis.StatusCmd: // multi
		c.SetVal("OK")
	}
}

func argString(args []any, i int) string {
	if i >= len(args) {
		return ""
	}
	return fmt.Sprint(args[i])
}

func (m *memoryRedis) state(key string) (count int64, ttl int64, hasTTL bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, hasTTL = m.ttls[key]
	return m.counters[key], ttl, hasTTL
}

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*LoginLimiter, *memoryRedis) {
	t.Helper()
	mem := newMemoryRedis()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	client.AddHook(mem)
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxAttempts, window), mem
}

func TestNewLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 0, 0)
	if l.maxAttempts != defaultMaxAttempts || l.window != defaultWindow {
		t.Fatalf("unexpected defaults: %d %v", l.maxAttempts, l.window)
	}
}

func TestFailureKey(t *testing.T) {
	if got := failureKey("admin@example.com"); got != "login:fail:admin@example.com" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestLoginLimiter_Threshold(t *testing.T) {
	cases := []struct {
		name     string
		failures int
		allowed  bool
	}{
		{"no failures", 0, true},
		{"below limit", 2, true},
		{"at limit", 3, false},
		{"past limit", 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			l, _ := newTestLimiter(t, 3, time.Minute)
			for i := 0; i < tc.failures; i++ {
				if err := l.RecordFailure(ctx, "pm@example.com"); err != nil {
					t.Fatalf("record failure %d: %v", i, err)
				}
			}
			ok, err := l.Allowed(ctx, "pm@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.allowed {
				t.Fatalf("expected allowed=%v after %d failures", tc.allowed, tc.failures)
			}
		})
	}
}

func TestLoginLimiter_FirstFailureStartsWindow(t *testing.T) {
	ctx := context.Background()
	l, mem := newTestLimiter(t, 5, 15*time.Minute)
	key := failureKey("admin@example.com")

	if err := l.RecordFailure(ctx, "admin@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, ttl, hasTTL := mem.state(key)
	if count != 1 || !hasTTL || ttl != 900 {
		t.Fatalf("expected count=1 ttl=900, got count=%d ttl=%d hasTTL=%v", count, ttl, hasTTL)
	}

	// A later failure keeps the window that is already running.
	mem.mu.Lock()
	mem.ttls[key] = 42
	mem.mu.Unlock()
	if err := l.RecordFailure(ctx, "admin@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count, ttl, _ := mem.state(key); count != 2 || ttl != 42 {
		t.Fatalf("expected count=2 ttl=42, got count=%d ttl=%d", count, ttl)
	}
}

func TestLoginLimiter_ResetClearsCount(t *testing.T) {
	ctx := context.Background()
	l, mem := newTestLimiter(t, 2, time.Minute)
	for i := 0; i < 2; i++ {
		_ = l.RecordFailure(ctx, "colab@example.com")
	}
	if ok, _ := l.Allowed(ctx, "colab@example.com"); ok {
		t.Fatal("expected throttled before reset")
	}

	if err := l.Reset(ctx, "colab@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := l.Allowed(ctx, "colab@example.com"); err != nil || !ok {
		t.Fatalf("expected allowed after reset, got %v %v", ok, err)
	}
	if count, _, hasTTL := mem.state(failureKey("colab@example.com")); count != 0 || hasTTL {
		t.Fatalf("expected key gone, got count=%d hasTTL=%v", count, hasTTL)
	}
}

func TestLoginLimiter_CountsAreIndependentPerEmail(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, 1, time.Minute)
	_ = l.RecordFailure(ctx, "admin@example.com")

	if ok, _ := l.Allowed(ctx, "admin@example.com"); ok {
		t.Fatal("expected admin throttled")
	}
	if ok, _ := l.Allowed(ctx, "pm@example.com"); !ok {
		t.Fatal("expected pm unaffected")
	}
}

func TestLoginLimiter_FailedRecordLeavesNoCounterWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	l, mem := newTestLimiter(t, 2, time.Minute)
	key := failureKey("admin@example.com")

	mem.mu.Lock()
	mem.fail["expire"] = errors.New("transient expire failure")
	mem.mu.Unlock()

	if err := l.RecordFailure(ctx, "admin@example.com"); err == nil {
		t.Fatal("expected the failed write to be reported")
	}
	if count, _, _ := mem.state(key); count != 0 {
		t.Fatalf("counter must not move when its expiry is not written, got %d", count)
	}

	for i := 0; i < 2; i++ {
		if err := l.RecordFailure(ctx, "admin@example.com"); err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
	}
	count, _, hasTTL := mem.state(key)
	if count != 2 || !hasTTL {
		t.Fatalf("expected count=2 with an expiry, got count=%d hasTTL=%v", count, hasTTL)
	}
}

func TestLoginLimiter_CounterWithoutExpiryGetsWindow(t *testing.T) {
	ctx := context.Background()
	l, mem := newTestLimiter(t, 2, time.Minute)
	key := failureKey("admin@example.com")

	mem.mu.Lock()
	mem.counters[key] = 2
	mem.mu.Unlock()

	if err := l.RecordFailure(ctx, "admin@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ttl, hasTTL := mem.state(key); !hasTTL || ttl != 60 {
		t.Fatalf("expected a 60s window, got ttl=%d hasTTL=%v", ttl, hasTTL)
	}
}

func TestLoginLimiter_GetErrorIsReported(t *testing.T) {
	l, mem := newTestLimiter(t, 3, time.Minute)
	mem.mu.Lock()
	mem.fail["get"] = errors.New("connection reset")
	mem.mu.Unlock()

	if _, err := l.Allowed(context.Background(), "a@b.c"); err == nil {
		t.Fatal("expected an error so the caller can fail open")
	}
}

func TestLoginLimiter_UnreachableRedisReportsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	l := NewLoginLimiter(client, 3, time.Minute)

	if _, err := l.Allowed(context.Background(), "a@b.c"); err == nil {
		t.Fatal("expected an error so the caller can fail open")
	}
}
