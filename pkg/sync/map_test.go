package sync

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	m := NewMap[int, string]()
	m.Store(1, "1")
	require.Equal(t, 1, m.Length())
	m.Store(1, "2")
	require.Equal(t, 1, m.Length())
	m.Store(2, "2")
	require.Equal(t, 2, m.Length())
}

func getTestMapContent() map[uint64]string {
	return map[uint64]string{
		1: "one",
		2: "two",
		3: "three",
	}
}

func TestLoad(t *testing.T) {
	src := getTestMapContent()
	m := NewMap[uint64, string]()
	for k, v := range src {
		m.Store(k, v)
	}
	for k, v := range src {
		value, ok := m.Load(k)
		require.True(t, ok)
		require.Equal(t, v, value)
	}
	_, ok := m.Load(42)
	require.False(t, ok)

	value, ok := m.LoadWithFunc(1, func(v string) string {
		return "prefix" + v
	})
	require.True(t, ok)
	require.Equal(t, "prefix"+src[1], value)
	require.Equal(t, src, m.CopyData())
}

func TestStoreIfAbsent(t *testing.T) {
	m := NewMap[uint64, string]()
	require.True(t, m.StoreIfAbsent(1, "one"))
	require.False(t, m.StoreIfAbsent(1, "uno"))
	v, _ := m.Load(1)
	require.Equal(t, "one", v)
}

func TestPullOut(t *testing.T) {
	m := NewMap[uint64, string]()
	m.Store(1, "one")
	v, ok := m.PullOut(1)
	require.True(t, ok)
	require.Equal(t, "one", v)
	_, ok = m.PullOut(1)
	require.False(t, ok)
	m.Store(2, "two")
	require.True(t, m.Delete(2))
	require.False(t, m.Delete(2))
	require.Equal(t, 0, m.Length())
}

func TestConcurrentAccess(t *testing.T) {
	m := NewMap[uint64, string]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i uint64) {
			defer wg.Done()
			m.Store(i, strconv.FormatUint(i, 10))
			_, _ = m.Load(i)
		}(uint64(i))
	}
	wg.Wait()
	require.Equal(t, 16, m.Length())
}
