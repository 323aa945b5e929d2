// ABOUTME: API key pool with one Groq client per key
// ABOUTME: Rotates to the next key on auth failures, wrapping around
package llm

import (
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// KeyPool holds one configured client per API key. Rotation is sticky: the
// pool stays on the current key until a caller reports an auth failure.
type KeyPool struct {
	mu      sync.Mutex
	clients []*openai.Client
	index   int
}

// NewKeyPool builds a pool of clients pointed at baseURL, one per key.
func NewKeyPool(baseURL string, keys []string) (*KeyPool, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	clients := make([]*openai.Client, len(keys))
	for i, key := range keys {
		cfg := openai.DefaultConfig(key)
		cfg.BaseURL = baseURL
		clients[i] = openai.NewClientWithConfig(cfg)
	}

	return &KeyPool{clients: clients}, nil
}

// Current returns the active client.
func (p *KeyPool) Current() *openai.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clients[p.index]
}

// Rotate advances to the next key, wrapping past the end.
func (p *KeyPool) Rotate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = (p.index + 1) % len(p.clients)
}

// Size returns how many keys the pool holds.
func (p *KeyPool) Size() int {
	return len(p.clients)
}
