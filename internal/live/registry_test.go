package live

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	pushed [][]byte
}

func (f *fakeHandle) Push(payload []byte) error {
	f.pushed = append(f.pushed, payload)
	return nil
}

func TestRegistryRegisterReplacesHandle(t *testing.T) {
	r := NewRegistry()
	h1 := &fakeHandle{}
	h2 := &fakeHandle{}

	r.Register("u1", h1)
	got, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, h1, got)

	r.Register("u1", h2)
	got, ok = r.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, h2, got)
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("u1", &fakeHandle{})

	r.Unregister("u1")
	_, ok := r.Lookup("u1")
	assert.False(t, ok)

	// unregistering an absent identity is a no-op
	r.Unregister("u1")
	_, ok = r.Lookup("u1")
	assert.False(t, ok)
}

func TestRegistryLookupAbsent(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("nobody")
	assert.False(t, ok)
}

func TestRegistryDropOnlyRemovesCurrentHandle(t *testing.T) {
	r := NewRegistry()
	old := &fakeHandle{}
	replacement := &fakeHandle{}

	r.Register("u1", old)
	r.Register("u1", replacement)

	// the stale connection closing must not evict its successor
	r.Drop("u1", old)
	got, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	r.Drop("u1", replacement)
	_, ok = r.Lookup("u1")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	users := []string{"a", "b", "c", "d"}

	for _, u := range users {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h := &fakeHandle{}
				r.Register(u, h)
				r.Lookup(u)
				r.Drop(u, h)
			}
		}(u)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 400; i++ {
			for _, u := range users {
				r.Lookup(u)
			}
		}
	}()

	wg.Wait()

	for _, u := range users {
		_, ok := r.Lookup(u)
		assert.False(t, ok)
	}
}
