//go:build unit

package patch_test

import (
	"testing"

	"salon-booking/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	v := int64(0)
	assert.Equal(t, int64(0), patch.Coalesce(&v, 42))
	assert.Equal(t, int64(42), patch.Coalesce[int64](nil, 42))
}

func TestNonZero(t *testing.T) {
	assert.Nil(t, patch.NonZero(""))
	got := patch.NonZero("gel")
	if assert.NotNil(t, got) {
		assert.Equal(t, "gel", *got)
	}
}
