// AngelaMos | 2026
// database_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Empty exclude IDs must bind as NULL: postgres rejects "" for uuid-typed
// parameters, which would fail every create-path uniqueness check.
func TestNullableID(t *testing.T) {
	assert.Nil(t, NullableID(""))
	assert.Equal(
		t,
		any("0b7e6a46-4b61-4c3e-9f0a-2f6a9f3d1c11"),
		NullableID("0b7e6a46-4b61-4c3e-9f0a-2f6a9f3d1c11"),
	)
}
