package webhooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"
)

type BurstMode string

const (
	BurstModeNone     BurstMode = "none"
	BurstModeCoalesce BurstMode = "coalesce"
)

type BurstDecision struct {
	Allow    bool
	Metadata map[string]any
}

// BurstController suppresses redeliveries of the same event inside a window.
// Forget releases an admitted event whose handling failed so its redelivery
// is dispatched again.
type BurstController interface {
	Allow(ctx context.Context, event Event) (BurstDecision, error)
	Forget(ctx context.Context, event Event) error
}

type BurstKeyExtractor func(event Event) (string, bool)

type BurstOptions struct {
	Mode       BurstMode
	Window     time.Duration
	MaxEntries int
	ExtractKey BurstKeyExtractor
	Now        func() time.Time
}

type DefaultBurstController struct {
	mode       BurstMode
	window     time.Duration
	maxEntries int
	extractKey BurstKeyExtractor
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]time.Time
}

func NewBurstController(opts BurstOptions) *DefaultBurstController {
	window := opts.Window
	if window <= 0 {
		window = time.Minute
	}
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 4096
	}
	extractKey := opts.ExtractKey
	if extractKey == nil {
		extractKey = DefaultBurstKeyExtractor
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &DefaultBurstController{
		mode:       normalizeBurstMode(opts.Mode),
		window:     window,
		maxEntries: maxEntries,
		extractKey: extractKey,
		now:        now,
		entries:    map[string]time.Time{},
	}
}

func (c *DefaultBurstController) Allow(_ context.Context, event Event) (BurstDecision, error) {
	if c == nil || c.mode == BurstModeNone {
		return BurstDecision{Allow: true}, nil
	}
	key, ok := c.extractKey(event)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return BurstDecision{Allow: true}, nil
	}

	now := c.now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()

	lastSeen, exists := c.entries[key]
	c.entries[key] = now
	c.cleanup(now)
	if !exists || now.Sub(lastSeen) >= c.window {
		return BurstDecision{Allow: true}, nil
	}
	return BurstDecision{
		Allow: false,
		Metadata: map[string]any{
			"burst_mode":      string(c.mode),
			"burst_key":       key,
			"burst_window_ms": c.window.Milliseconds(),
			"coalesced":       true,
		},
	}, nil
}

func (c *DefaultBurstController) Forget(_ context.Context, event Event) error {
	if c == nil || c.mode == BurstModeNone {
		return nil
	}
	key, ok := c.extractKey(event)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return nil
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *DefaultBurstController) cleanup(now time.Time) {
	if len(c.entries) <= c.maxEntries {
		for key, seenAt := range c.entries {
			if now.Sub(seenAt) > c.window*4 {
				delete(c.entries, key)
			}
		}
		return
	}
	for key, seenAt := range c.entries {
		if now.Sub(seenAt) > c.window {
			delete(c.entries, key)
		}
		if len(c.entries) <= c.maxEntries {
			break
		}
	}
}

// DefaultBurstKeyExtractor identifies a delivery by its envelope fields and a
// digest of its content.
func DefaultBurstKeyExtractor(event Event) (string, bool) {
	if event.Event == "" || event.UserOpenID == "" {
		return "", false
	}
	sum := sha256.Sum256([]byte(event.Content))
	return strings.Join([]string{
		event.ClientKey,
		event.UserOpenID,
		string(event.Event),
		strconv.FormatInt(event.CreateTime, 10),
		hex.EncodeToString(sum[:8]),
	}, ":"), true
}

func normalizeBurstMode(mode BurstMode) BurstMode {
	if strings.EqualFold(strings.TrimSpace(string(mode)), string(BurstModeCoalesce)) {
		return BurstModeCoalesce
	}
	return BurstModeNone
}

var _ BurstController = (*DefaultBurstController)(nil)
