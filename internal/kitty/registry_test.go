package kitty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_NewID_Monotonic(t *testing.T) {
	r := NewRegistry()

	var prev ImageID
	for i := 1; i <= 100; i++ {
		id := r.NewID()
		assert.Equal(t, ImageID(i), id)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestRegistry_TakeCurrent(t *testing.T) {
	r := NewRegistry()

	assert.Nil(t, r.TakeCurrent(), "no set is open initially")

	r.NewID()
	r.NewID()
	assert.Equal(t, ImageSet{1, 2}, r.TakeCurrent())
	assert.Nil(t, r.TakeCurrent(), "take clears the open set")

	// Ids keep increasing after a take
	assert.Equal(t, ImageID(3), r.NewID())
	assert.Equal(t, ImageSet{3}, r.TakeCurrent())
}

func TestRegistry_Discard(t *testing.T) {
	r := NewRegistry()
	r.NewID()
	r.NewID()

	r.Discard()

	assert.Nil(t, r.TakeCurrent())
	assert.Equal(t, ImageID(3), r.NewID(), "ids are not reused after discard")
}

func TestRegistry_CurrentIsCopy(t *testing.T) {
	r := NewRegistry()
	r.NewID()

	cur := r.Current()
	cur[0] = 99

	assert.Equal(t, ImageSet{1}, r.Current())
	assert.Nil(t, NewRegistry().Current())
}
