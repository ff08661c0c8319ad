package keyword

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCache_GetAdd(t *testing.T) {
	c := NewLRUCache(2)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Add("a", []string{"x", "y"})
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache(2)
	c.Add("a", []string{"1"})
	c.Add("b", []string{"2"})

	// touch a so b becomes the least recently used entry
	_, _ = c.Get("a")
	c.Add("c", []string{"3"})

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.size())
}

func TestLRUCache_CopiesValues(t *testing.T) {
	c := NewLRUCache(10)
	in := []string{"river bank"}
	c.Add("k", in)
	in[0] = "mutated"

	got, _ := c.Get("k")
	got[0] = "mutated again"

	again, _ := c.Get("k")
	assert.Equal(t, []string{"river bank"}, again)
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := NewLRUCache(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%80)
				c.Add(key, []string{key})
				if v, ok := c.Get(key); ok {
					assert.Equal(t, []string{key}, v)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.size(), 50)
}

func TestNewLRUCache_DefaultSize(t *testing.T) {
	c := NewLRUCache(0)
	for i := 0; i < 1001; i++ {
		c.Add(fmt.Sprintf("k%d", i), nil)
	}
	assert.Equal(t, 1000, c.size())
}
