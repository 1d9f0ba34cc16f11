package id_test

import (
	"bytes"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/pkg/id"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("has the expected shape", func(t *testing.T) {
		t.Parallel()
		s := id.New()
		assert.Len(t, s, id.Length)
		assert.True(t, id.Valid(s))
		assert.NotContains(t, s, "I")
		assert.NotContains(t, s, "L")
		assert.NotContains(t, s, "O")
		assert.NotContains(t, s, "U")
	})

	t.Run("is unique", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]struct{}, 10000)
		for range 10000 {
			s := id.New()
			_, dup := seen[s]
			require.False(t, dup, "duplicate id %s", s)
			seen[s] = struct{}{}
		}
	})

	t.Run("encodes creation time", func(t *testing.T) {
		t.Parallel()
		before := time.Now().Truncate(time.Millisecond)
		s := id.New()
		after := time.Now()

		ts, err := id.Time(s)
		require.NoError(t, err)
		assert.False(t, ts.Before(before))
		assert.False(t, ts.After(after))
	})
}

func TestNewAt(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic for fixed input", func(t *testing.T) {
		t.Parallel()
		at := time.UnixMilli(1469918176385)
		entropy := bytes.Repeat([]byte{0xFF}, 10)

		s, err := id.NewAt(at, bytes.NewReader(entropy))
		require.NoError(t, err)
		assert.Equal(t, "01ARYZ6S41ZZZZZZZZZZZZZZZZ", s)
	})

	t.Run("zero entropy", func(t *testing.T) {
		t.Parallel()
		s, err := id.NewAt(time.UnixMilli(0), bytes.NewReader(make([]byte, 10)))
		require.NoError(t, err)
		assert.Equal(t, "00000000000000000000000000", s)
	})

	t.Run("sorts by time", func(t *testing.T) {
		t.Parallel()
		base := time.Now()
		var ids []string
		for i := range 50 {
			s, err := id.NewAt(base.Add(time.Duration(i)*time.Millisecond), bytes.NewReader(bytes.Repeat([]byte{byte(50 - i)}, 10)))
			require.NoError(t, err)
			ids = append(ids, s)
		}
		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("short entropy fails", func(t *testing.T) {
		t.Parallel()
		_, err := id.NewAt(time.Now(), bytes.NewReader([]byte{1, 2, 3}))
		require.Error(t, err)
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	ts, err := id.Time("01ARYZ6S41ZZZZZZZZZZZZZZZZ")
	require.NoError(t, err)
	assert.Equal(t, int64(1469918176385), ts.UnixMilli())

	_, err = id.Time("short")
	assert.True(t, errors.Is(err, id.ErrInvalid))

	_, err = id.Time("0UARYZ6S41ZZZZZZZZZZZZZZZZ")
	assert.ErrorIs(t, err, id.ErrInvalid)

	assert.False(t, id.Valid("01ARYZ6S41ZZZZZZZZZZZZZZZu"))
}

func BenchmarkNew(b *testing.B) {
	for b.Loop() {
		_ = id.New()
	}
}
