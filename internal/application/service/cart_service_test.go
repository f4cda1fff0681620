package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/infrastructure/cartstore"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddToCartTwiceMergesLine(t *testing.T) {
	p := product("Milk", "1.50")
	f := newCheckoutFixture(p)
	ctx := context.Background()
	owner := uuid.New()

	_, err := f.carts.AddToCart(ctx, owner, p.ID)
	require.NoError(t, err)
	cart, err := f.carts.AddToCart(ctx, owner, p.ID)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	stored, err := f.carts.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
}

func TestAddUnknownProduct(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.carts.AddToCart(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestDecrementAtOneRemovesLine(t *testing.T) {
	a, b := product("A", "10"), product("B", "5")
	f := newCheckoutFixture(a, b)
	ctx := context.Background()
	owner := uuid.New()

	_, _ = f.carts.AddToCart(ctx, owner, a.ID)
	_, _ = f.carts.AddToCart(ctx, owner, b.ID)

	cart, err := f.carts.DecrementLine(ctx, owner, a.ID)
	require.NoError(t, err)

	_, found := cart.Line(a.ID)
	assert.False(t, found)
	assert.Len(t, cart.Lines, 1)
}

func TestLineOperationsOnUnknownProduct(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	owner := uuid.New()

	for _, op := range []func() error{
		func() error { _, err := f.carts.IncrementLine(ctx, owner, uuid.New()); return err },
		func() error { _, err := f.carts.DecrementLine(ctx, owner, uuid.New()); return err },
		func() error { _, err := f.carts.RemoveLine(ctx, owner, uuid.New()); return err },
	} {
		err := op()
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	}
}

func TestIncrementAndRemove(t *testing.T) {
	p := product("Bread", "0.90")
	f := newCheckoutFixture(p)
	ctx := context.Background()
	owner := uuid.New()

	_, _ = f.carts.AddToCart(ctx, owner, p.ID)
	cart, err := f.carts.IncrementLine(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())

	cart, err = f.carts.RemoveLine(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestMalformedCartReadsAsEmpty(t *testing.T) {
	p := product("Tea", "3")
	f := newCheckoutFixture(p)
	ctx := context.Background()
	owner := uuid.New()
	f.storage.SetRaw(owner, []byte("not json"))

	cart, err := f.carts.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = f.carts.AddToCart(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestClearCart(t *testing.T) {
	p := product("Tea", "3")
	f := newCheckoutFixture(p)
	ctx := context.Background()
	owner := uuid.New()

	_, _ = f.carts.AddToCart(ctx, owner, p.ID)
	require.NoError(t, f.carts.Clear(ctx, owner))

	cart, err := f.carts.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	p := product("Gum", "0.50")
	f := newCheckoutFixture(p)
	ctx := context.Background()
	owner := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.carts.AddToCart(ctx, owner, p.ID)
		}()
	}
	wg.Wait()

	cart, err := f.carts.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 50, cart.Lines[0].Quantity)
}

func TestGetCartOutlivesCancelledCaller(t *testing.T) {
	p := product("Bread", "2.00")
	storage := &flakyStorage{MemoryStorage: cartstore.NewMemoryStorage()}
	carts := NewCartService(storage, newFakeCatalog(p), zap.NewNop())
	owner := uuid.New()
	_, err := carts.AddToCart(context.Background(), owner, p.ID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cart, err := carts.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Bread", cart.Lines[0].Product.Name)
}
