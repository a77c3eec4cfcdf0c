package repo

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarisNvr/test-case-shop/internal/db/dbtest"
)

func TestUpsertEntry_Postgres_ConcurrentFirstAdds(t *testing.T) {
	gdb := dbtest.NewPostgres(t)
	r := &GormRepo{DB: gdb}
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, gdb, "pg-kiwi", "2.00")

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, c, err := r.UpsertEntry(ctx, user, p.ID, addDelta(dec("0.5")))
			assert.NoError(t, err)
			if c {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	stored, err := r.GetEntry(ctx, user, p.ID)
	require.NoError(t, err)
	assert.True(t, dec("8").Equal(stored.Quantity), "got %s", stored.Quantity)
	assert.EqualValues(t, 1, countEntries(t, gdb, user))
}

func TestDeleteProduct_Postgres_Cascades(t *testing.T) {
	gdb := dbtest.NewPostgres(t)
	r := &GormRepo{DB: gdb}
	ctx := context.Background()
	user := uuid.New()
	p := seedProduct(t, gdb, "pg-gone", "1.00")

	_, _, err := r.UpsertEntry(ctx, user, p.ID, addDelta(dec("1")))
	require.NoError(t, err)

	require.NoError(t, gdb.Exec("DELETE FROM products WHERE id = ?", p.ID).Error)
	assert.Zero(t, countEntries(t, gdb, user))
}
