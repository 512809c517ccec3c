package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEvictsOldestBeyondBound(t *testing.T) {
	st, err := NewStore(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		st.Put(&Session{ID: fmt.Sprintf("s%d", i)})
	}

	assert.Equal(t, 2, st.Len())
	_, err = st.Get("s0")
	assert.ErrorIs(t, err, ErrNotFound)

	s2, err := st.Get("s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", s2.ID)
}
