package prenomina

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prenomina-service/internal/domain"
)

func TestLoaderCacheRoundTrip(t *testing.T) {
	c := newLoaderCache()
	key := contentKey([]byte("contenido"))

	_, ok := c.ledger(key)
	assert.False(t, ok)

	ledger := &domain.Table{Columns: []string{"cuenta"}}
	c.putLedger(key, ledger)

	got, ok := c.ledger(key)
	require.True(t, ok)
	assert.Same(t, ledger, got)

	pagos := []domain.TreasuryPayment{{Cuenta: 100, Importe: -12000000}}
	c.putPayments(key, pagos)
	gotPagos, ok := c.payments(key)
	require.True(t, ok)
	assert.Equal(t, pagos, gotPagos)
}

func TestLoaderCacheDistinctContent(t *testing.T) {
	assert.NotEqual(t, contentKey([]byte("a")), contentKey([]byte("b")))
	assert.Equal(t, contentKey([]byte("a")), contentKey([]byte("a")))
}

func TestLoaderCacheBounded(t *testing.T) {
	c := newLoaderCache()
	for i := 0; i < maxCacheEntries+1; i++ {
		c.putLedger(contentKey([]byte(fmt.Sprintf("archivo-%d", i))), &domain.Table{})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.LessOrEqual(t, len(c.ledgers), maxCacheEntries)
}
