package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	DefaultTTL           = 5 * time.Minute
	DefaultSweepInterval = 60 * time.Second
)

type entry struct {
	value    any
	storedAt time.Time
}

// MetricsCache guarda resultados de chamadas às plataformas por um TTL fixo.
// Erros nunca são armazenados.
type MetricsCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New cria o cache e inicia a varredura periódica das entradas expiradas
func New(ttl, sweepInterval time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	c := &MetricsCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go c.sweepLoop(sweepInterval)

	return c
}

// Key monta a chave no formato <plataforma>_<tipo>
func Key(platform domain.Platform, kind string) string {
	return string(platform) + "_" + kind
}

// GetOrFetch retorna o valor em cache ou executa fn. Chamadas concorrentes
// para a mesma chave ausente executam fn uma única vez.
func (c *MetricsCache) GetOrFetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	if c == nil {
		return fn(ctx)
	}

	if v, ok := c.Get(key); ok {
		return v, nil
	}

	resultCh := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		// o resultado é compartilhado: o cancelamento de um chamador não derruba os demais
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.Set(key, v)
		return v, nil
	})

	select {
	case result := <-resultCh:
		return result.Val, result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get aplica a expiração passiva: entradas vencidas são removidas na leitura
func (c *MetricsCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.expired(e) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && c.expired(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (c *MetricsCache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *MetricsCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *MetricsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop encerra a varredura. Pode ser chamado mais de uma vez.
func (c *MetricsCache) Stop() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() {
		close(c.stop)
		<-c.done
	})
}

func (c *MetricsCache) expired(e entry) bool {
	return !c.now().Before(e.storedAt.Add(c.ttl))
}

func (c *MetricsCache) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.sweep(); removed > 0 {
				logrus.WithField("removed", removed).Debug("Entradas expiradas removidas do cache de métricas")
			}
		}
	}
}

func (c *MetricsCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
