package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableReplacePublishes(t *testing.T) {
	first := Default()
	table := NewTable(first)
	assert.Same(t, first, table.Current())

	held := table.Current()
	next := Default()
	table.Replace(next)

	assert.Same(t, next, table.Current())
	// A reader that loaded before the swap keeps its snapshot intact.
	assert.Same(t, first, held)
}
