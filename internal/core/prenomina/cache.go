package prenomina

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"prenomina-service/internal/domain"
)

// maxCacheEntries bounds the memo; uploads are small and few, so a full
// reset on overflow is enough.
const maxCacheEntries = 32

// loaderCache memoizes loader outputs keyed by the content hash of the
// uploaded bytes, so reprocessing the same file pair with a different
// reference date skips the parse-and-filter work. Purely an optimization;
// loader errors are never cached.
type loaderCache struct {
	mu      sync.Mutex
	ledgers map[string]*domain.Table
	pagos   map[string][]domain.TreasuryPayment
}

func newLoaderCache() *loaderCache {
	return &loaderCache{
		ledgers: make(map[string]*domain.Table),
		pagos:   make(map[string][]domain.TreasuryPayment),
	}
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *loaderCache) ledger(key string) (*domain.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.ledgers[key]
	return t, ok
}

func (c *loaderCache) putLedger(key string, t *domain.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.ledgers) >= maxCacheEntries {
		c.ledgers = make(map[string]*domain.Table)
	}
	c.ledgers[key] = t
}

func (c *loaderCache) payments(key string) ([]domain.TreasuryPayment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pagos[key]
	return p, ok
}

func (c *loaderCache) putPayments(key string, p []domain.TreasuryPayment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pagos) >= maxCacheEntries {
		c.pagos = make(map[string][]domain.TreasuryPayment)
	}
	c.pagos[key] = p
}
