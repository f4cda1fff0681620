package cartstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorage(client, ttl), mr
}

func sampleCart() *entity.Cart {
	c := entity.NewCart(nil)
	c.Add(entity.CartProduct{ID: uuid.New(), Name: "A", Price: decimal.NewFromInt(10)})
	c.Add(entity.CartProduct{ID: uuid.New(), Name: "B", Price: decimal.NewFromInt(5)})
	return c
}

func TestRedisStorageRoundTrip(t *testing.T) {
	store, mr := setupRedis(t, time.Hour)
	ctx := context.Background()
	owner := uuid.New()

	cart := sampleCart()
	require.NoError(t, store.Save(ctx, owner, cart))

	assert.True(t, mr.Exists(cartKey(owner)))
	assert.Equal(t, time.Hour, mr.TTL(cartKey(owner)))

	raw, err := mr.Get(cartKey(owner))
	require.NoError(t, err)
	var lines []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &lines))
	assert.Len(t, lines, 2)

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, "A", loaded.Lines[0].Product.Name)
	assert.True(t, decimal.NewFromInt(15).Equal(loaded.Subtotal()))
}

func TestRedisStorageMissingKeyIsEmpty(t *testing.T) {
	store, _ := setupRedis(t, 0)

	cart, err := store.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRedisStorageMalformed(t *testing.T) {
	store, mr := setupRedis(t, 0)
	owner := uuid.New()
	require.NoError(t, mr.Set(cartKey(owner), "{not json"))

	_, err := store.Load(context.Background(), owner)
	assert.ErrorIs(t, err, domainRepo.ErrMalformedCart)
}

func TestRedisStorageClear(t *testing.T) {
	store, mr := setupRedis(t, 0)
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, store.Save(ctx, owner, sampleCart()))
	require.NoError(t, store.Clear(ctx, owner))
	assert.False(t, mr.Exists(cartKey(owner)))

	// saving an empty cart removes the key as well
	require.NoError(t, store.Save(ctx, owner, sampleCart()))
	require.NoError(t, store.Save(ctx, owner, entity.NewCart(nil)))
	assert.False(t, mr.Exists(cartKey(owner)))
}

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	owner := uuid.New()

	cart := sampleCart()
	require.NoError(t, store.Save(ctx, owner, cart))

	// mutating the caller's cart does not change the stored copy
	cart.Lines[0].Quantity = 9

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Lines[0].Quantity)

	store.SetRaw(owner, []byte("[{"))
	_, err = store.Load(ctx, owner)
	assert.ErrorIs(t, err, domainRepo.ErrMalformedCart)

	require.NoError(t, store.Clear(ctx, owner))
	loaded, err = store.Load(ctx, owner)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartKey(t *testing.T) {
	owner := uuid.MustParse("6f1c2b7e-58a4-4f7d-9a51-0c4b7f5a1d22")
	assert.Equal(t, "cart:6f1c2b7e-58a4-4f7d-9a51-0c4b7f5a1d22", cartKey(owner))
}

func TestRedisStoragePing(t *testing.T) {
	store, mr := setupRedis(t, time.Hour)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
