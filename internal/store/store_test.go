package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

func TestMemorySetGet(t *testing.T) {
	s := NewMemory()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("username", value.String("john_doe"))
	got, ok := s.Get("username")
	require.True(t, ok)
	assert.Equal(t, value.String("john_doe"), got)

	s.Put("username", value.Int(3))
	got, _ = s.Get("username")
	assert.Equal(t, value.Int(3), got)
}

func TestMemoryRemove(t *testing.T) {
	s := NewMemory()
	s.Put("temp", value.String("data"))

	s.Remove("temp")
	s.Remove("never-there")

	_, ok := s.Get("temp")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryNames(t *testing.T) {
	s := NewMemory()
	s.Put("b", value.Int(1))
	s.Put("a", value.Int(2))

	assert.Equal(t, []string{"a", "b"}, s.Names())
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, NewMemory().Names())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("k%d", i%5)
			s.Put(name, value.Int(int64(i)))
			s.Get(name)
			if i%3 == 0 {
				s.Remove(name)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 5)
}
