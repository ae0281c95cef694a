package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 8, cap(bb.B))

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 8, cap(bb.B), "Reset keeps capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(16)
		require.Equal(t, 16, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(1)
		require.Equal(t, 4+PayloadBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("abcd"), bb.Bytes())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * PayloadBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(3 * PayloadBufferDefaultSize)
		require.GreaterOrEqual(t, cap(bb.B), 3*PayloadBufferDefaultSize)
	})
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	reused := p.Get()
	require.Equal(t, 0, reused.Len(), "buffers come back empty")

	p.Put(nil)
	p.Put(NewByteBuffer(128)) // over threshold, dropped
}

func TestPayloadBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bb := GetPayloadBuffer()
			defer PutPayloadBuffer(bb)

			payload := make([]byte, i*100)
			_, _ = bb.Write(payload)
			require.Equal(t, len(payload), bb.Len())
		}(i)
	}
	wg.Wait()
}
