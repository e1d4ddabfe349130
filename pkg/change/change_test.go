package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyChange_RoundTrip(t *testing.T) {
	c := NewPropertyChange(3, 4)
	assert.Equal(t, 3, c.OldValue())
	assert.Equal(t, 4, c.NewValue())

	s := NewPropertyChange("before", "after")
	assert.Equal(t, "before", s.OldValue())
	assert.Equal(t, "after", s.NewValue())
}

func TestPropertyChange_ZeroValues(t *testing.T) {
	c := NewPropertyChange[*int](nil, nil)
	assert.Nil(t, c.OldValue())
	assert.Nil(t, c.NewValue())
}

func TestIndexedPropertyChange_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		old, new int
	}{
		{"negative index", -1, 3, 4},
		{"zero index", 0, 0, 0},
		{"large index", 1 << 20, -7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewIndexedPropertyChange(tt.index, tt.old, tt.new)
			assert.Equal(t, tt.index, c.Index())
			assert.Equal(t, tt.old, c.OldValue())
			assert.Equal(t, tt.new, c.NewValue())
		})
	}
}

func TestIndexedPropertyChange_StringIndex(t *testing.T) {
	c := NewIndexedPropertyChange("title", "old", "new")
	assert.Equal(t, "title", c.Index())
	assert.Equal(t, "[title] old -> new", c.String())
}

func TestPropertyChange_String(t *testing.T) {
	assert.Equal(t, "1 -> 2", NewPropertyChange(1, 2).String())
}
