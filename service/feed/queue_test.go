package feed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("dequeues in non-increasing priority order", func(t *testing.T) {
		q := NewPriorityQueue[string](8)
		q.Enqueue("low", 1)
		q.Enqueue("high", 10)
		q.Enqueue("mid", 5)

		first, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "high", first)

		second, _ := q.Dequeue()
		assert.Equal(t, "mid", second)

		third, _ := q.Dequeue()
		assert.Equal(t, "low", third)
	})

	t.Run("dequeue on empty returns false", func(t *testing.T) {
		q := NewPriorityQueue[int](0)
		_, ok := q.Dequeue()
		assert.False(t, ok)
	})

	t.Run("size and emptiness track operations", func(t *testing.T) {
		q := NewPriorityQueue[int](2)
		assert.True(t, q.IsEmpty())

		q.Enqueue(1, 1)
		q.Enqueue(2, 2)
		assert.Equal(t, 2, q.Size())
		assert.False(t, q.IsEmpty())

		q.Dequeue()
		q.Dequeue()
		assert.True(t, q.IsEmpty())
	})

	t.Run("stays ordered under random inserts", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		q := NewPriorityQueue[float64](100)
		for i := 0; i < 100; i++ {
			p := rng.Float64() * 1000
			q.Enqueue(p, p)
		}

		prev, ok := q.Dequeue()
		require.True(t, ok)
		for !q.IsEmpty() {
			next, _ := q.Dequeue()
			assert.GreaterOrEqual(t, prev, next)
			prev = next
		}
	})

	t.Run("equal priorities keep insertion order", func(t *testing.T) {
		q := NewPriorityQueue[string](3)
		q.Enqueue("first", 5)
		q.Enqueue("second", 5)
		q.Enqueue("third", 5)

		a, _ := q.Dequeue()
		b, _ := q.Dequeue()
		c, _ := q.Dequeue()
		assert.Equal(t, []string{"first", "second", "third"}, []string{a, b, c})
	})
}
