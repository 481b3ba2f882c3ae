package registrar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionByKey_AgainstExisting(t *testing.T) {
	duplicate := PartitionByKey(
		[]string{"Dune", "Emma", "Hamlet"},
		[]string{"Emma"},
	)

	assert.Equal(t, []bool{false, true, false}, duplicate)
}

func TestPartitionByKey_WithinBatch(t *testing.T) {
	duplicate := PartitionByKey(
		[]string{"A1", "A1", "A2"},
		nil,
	)

	assert.Equal(t, []bool{false, true, false}, duplicate)
}

func TestPartitionByKey_ExactMatchOnly(t *testing.T) {
	// No normalization: case and whitespace differences are distinct keys.
	duplicate := PartitionByKey(
		[]string{"dune", "Dune ", "Dune"},
		[]string{"Dune"},
	)

	assert.Equal(t, []bool{false, false, true}, duplicate)
}

func TestPartitionByKey_EmptyKeysNeverDuplicate(t *testing.T) {
	duplicate := PartitionByKey(
		[]string{"", "", "Dune"},
		[]string{""},
	)

	assert.Equal(t, []bool{false, false, false}, duplicate)
}
