package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceIsDeterministic(t *testing.T) {
	a, b := NewSource(123), NewSource(123)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Rand.Int64(), b.Rand.Int64())
	}
	assert.Equal(t, a.Fake.Name(), b.Fake.Name())
}

func TestMovieTitles(t *testing.T) {
	src := NewSource(77)
	titles := movieTitles(src.Rand, 200)
	require.Len(t, titles, 200)
	for _, title := range titles {
		assert.NotEmpty(t, title)
	}
}

func TestFakeTextRespectsLimit(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 50; i++ {
		text := fakeText(src.Fake, 150)
		assert.NotEmpty(t, text)
		assert.LessOrEqual(t, len(text), 150)
	}
}
