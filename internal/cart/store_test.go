// internal/cart/store_test.go
package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRemote struct {
	failSave   bool
	failDelete bool
	saved      map[Key]int
	deleted    []Key
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{saved: make(map[Key]int)}
}

func (f *fakeRemote) SaveLine(_ context.Context, key Key, quantity int) error {
	if f.failSave {
		return errors.New("remote unavailable")
	}
	f.saved[key] = quantity
	return nil
}

func (f *fakeRemote) DeleteLine(_ context.Context, key Key) error {
	if f.failDelete {
		return errors.New("remote unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

var lineKey = Key{ProductID: "p1", Size: "9", Color: "black"}

func TestAddMergesQuantities(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote)
	ctx := context.Background()

	assert.NoError(t, store.Add(ctx, lineKey, 2))
	assert.NoError(t, store.Add(ctx, lineKey, 3))

	assert.Equal(t, 5, store.Quantity(lineKey))
	assert.Equal(t, 5, remote.saved[lineKey])
	assert.Equal(t, 1, store.Len())
}

func TestVariantsAreSeparateLines(t *testing.T) {
	store := NewStore(newFakeRemote())
	ctx := context.Background()

	other := Key{ProductID: "p1", Size: "10", Color: "black"}
	assert.NoError(t, store.Add(ctx, lineKey, 1))
	assert.NoError(t, store.Add(ctx, other, 1))

	assert.Equal(t, 2, store.Len())
}

func TestAddRevertsOnRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote)
	ctx := context.Background()

	assert.NoError(t, store.Add(ctx, lineKey, 2))

	remote.failSave = true
	err := store.Add(ctx, lineKey, 3)
	assert.Error(t, err)
	assert.Equal(t, 2, store.Quantity(lineKey))

	// A failed first add leaves no phantom line behind.
	fresh := Key{ProductID: "p2", Size: "8", Color: "white"}
	assert.Error(t, store.Add(ctx, fresh, 1))
	assert.Equal(t, 0, store.Quantity(fresh))
	assert.Equal(t, 1, store.Len())
}

func TestAddRejectsBadQuantity(t *testing.T) {
	store := NewStore(newFakeRemote())
	assert.ErrorIs(t, store.Add(context.Background(), lineKey, 0), ErrBadQuantity)
	assert.ErrorIs(t, store.Add(context.Background(), lineKey, -1), ErrBadQuantity)
}

func TestSetQuantity(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote)
	ctx := context.Background()

	assert.ErrorIs(t, store.SetQuantity(ctx, lineKey, 4), ErrNotInCart)

	assert.NoError(t, store.Add(ctx, lineKey, 1))
	assert.NoError(t, store.SetQuantity(ctx, lineKey, 4))
	assert.Equal(t, 4, store.Quantity(lineKey))

	assert.ErrorIs(t, store.SetQuantity(ctx, lineKey, 0), ErrBadQuantity)

	remote.failSave = true
	assert.Error(t, store.SetQuantity(ctx, lineKey, 9))
	assert.Equal(t, 4, store.Quantity(lineKey))
}

func TestRemove(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote)
	ctx := context.Background()

	assert.ErrorIs(t, store.Remove(ctx, lineKey), ErrNotInCart)

	assert.NoError(t, store.Add(ctx, lineKey, 2))
	assert.NoError(t, store.Remove(ctx, lineKey))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, []Key{lineKey}, remote.deleted)
}

func TestRemoveRevertsOnRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	store := NewStore(remote)
	ctx := context.Background()

	assert.NoError(t, store.Add(ctx, lineKey, 2))

	remote.failDelete = true
	assert.Error(t, store.Remove(ctx, lineKey))
	assert.Equal(t, 2, store.Quantity(lineKey))
}

func TestLoadDropsNonPositiveLines(t *testing.T) {
	store := NewStore(newFakeRemote())
	store.Load(map[Key]int{
		lineKey: 3,
		{ProductID: "p2", Size: "8", Color: "red"}: 0,
	})

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 3, store.Quantity(lineKey))
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore(newFakeRemote())
	assert.NoError(t, store.Add(context.Background(), lineKey, 2))

	snap := store.Snapshot()
	snap[lineKey] = 99
	assert.Equal(t, 2, store.Quantity(lineKey))
}
