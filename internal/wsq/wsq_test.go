package wsq

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("valid capacity", func(t *testing.T) {
		q := &Queue[int]{}
		require.NoError(t, q.Init(8))
		assert.Equal(t, 8, q.Cap())
		assert.Equal(t, 0, q.Len())
	})

	t.Run("double init", func(t *testing.T) {
		q := &Queue[int]{}
		require.NoError(t, q.Init(8))
		require.True(t, q.Push(7))

		err := q.Init(16)
		assert.ErrorIs(t, err, ErrAlreadyInitialized)

		// The failed call must not disturb existing state.
		assert.Equal(t, 8, q.Cap())
		assert.Equal(t, 1, q.Len())
	})

	t.Run("invalid capacities", func(t *testing.T) {
		for _, capacity := range []int{0, 3, 6, -4} {
			q := &Queue[int]{}
			assert.ErrorIs(t, q.Init(capacity), ErrInvalidCapacity, "capacity %d", capacity)
		}
	})
}

func TestNew(t *testing.T) {
	q, err := New[string](4)
	require.NoError(t, err)
	assert.Equal(t, 4, q.Cap())

	_, err = New[string](5)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestPushFull(t *testing.T) {
	q, err := New[int](4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.True(t, q.Push(i))
	}
	assert.False(t, q.Push(99))
	assert.Equal(t, 4, q.Len())

	// The refused item must not have displaced anything: steal order is
	// still the original FIFO front.
	v, ok := q.Steal()
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestOwnerEndIsLIFO(t *testing.T) {
	q, err := New[string](8)
	require.NoError(t, err)

	require.True(t, q.Push("a"))
	require.True(t, q.Push("b"))

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "b", v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestThiefEndIsFIFO(t *testing.T) {
	q, err := New[string](8)
	require.NoError(t, err)

	require.True(t, q.Push("a"))
	require.True(t, q.Push("b"))

	v, ok := q.Steal()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = q.Steal()
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = q.Steal()
	assert.False(t, ok)
}

func TestSizeAccounting(t *testing.T) {
	q, err := New[int](16)
	require.NoError(t, err)

	pushed, taken := 0, 0
	for i := 0; i < 10; i++ {
		require.True(t, q.Push(i))
		pushed++
	}
	for i := 0; i < 4; i++ {
		_, ok := q.Pop()
		require.True(t, ok)
		taken++
	}
	for i := 0; i < 3; i++ {
		_, ok := q.Steal()
		require.True(t, ok)
		taken++
	}
	assert.Equal(t, pushed-taken, q.Len())
}

func TestRingWraparound(t *testing.T) {
	q, err := New[int](4)
	require.NoError(t, err)

	// Push/consume far past capacity so the counters lap the ring many
	// times over, checking each result against a model deque.
	var model []int
	next := 0
	for round := 0; round < 100; round++ {
		for q.Push(next) {
			model = append(model, next)
			next++
		}
		v, ok := q.Steal()
		require.True(t, ok)
		require.Equal(t, model[0], v)
		model = model[1:]

		v, ok = q.Pop()
		require.True(t, ok)
		require.Equal(t, model[len(model)-1], v)
		model = model[:len(model)-1]
	}
	assert.Equal(t, len(model), q.Len())
}

// TestExactlyOnceDelivery drives one owner doing interleaved Push/Pop
// against several concurrent thieves and verifies that every tagged item
// surfaces exactly once somewhere.
func TestExactlyOnceDelivery(t *testing.T) {
	const (
		total   = 200000
		thieves = 4
	)

	q, err := New[int](128)
	require.NoError(t, err)

	var done atomic.Bool
	results := make([][]int, thieves+1)
	var wg sync.WaitGroup

	for i := 0; i < thieves; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			var got []int
			for {
				v, ok := q.Steal()
				if ok {
					got = append(got, v)
					continue
				}
				if done.Load() && q.Len() == 0 {
					break
				}
			}
			results[slot] = got
		}(i)
	}

	// Owner: push every tag, popping to make room whenever the ring fills.
	var owned []int
	for i := 0; i < total; i++ {
		for !q.Push(i) {
			if v, ok := q.Pop(); ok {
				owned = append(owned, v)
			}
		}
	}
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		owned = append(owned, v)
	}
	results[thieves] = owned
	done.Store(true)
	wg.Wait()

	seen := make(map[int]bool, total)
	count := 0
	for _, part := range results {
		for _, v := range part {
			require.False(t, seen[v], "item %d delivered twice", v)
			seen[v] = true
			count++
		}
	}
	assert.Equal(t, total, count, "every pushed item must be delivered exactly once")
}
