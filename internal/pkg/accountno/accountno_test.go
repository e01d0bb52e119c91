package accountno

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	assert.Equal(t, "M0042-FD-02", Generate("M0042", "FD", 2))
	assert.Equal(t, "M0007-LOAN-01", Generate("M0007", "loan", 1))
}

func TestParts(t *testing.T) {
	member, product, seq, ok := Parts("M0042-FD-02")
	assert.True(t, ok)
	assert.Equal(t, "M0042", member)
	assert.Equal(t, "FD", product)
	assert.Equal(t, "02", seq)

	// member numbers containing dashes split from the right
	member, product, _, ok = Parts("BR-17-RD-05")
	assert.True(t, ok)
	assert.Equal(t, "BR-17", member)
	assert.Equal(t, "RD", product)

	_, _, _, ok = Parts("garbage")
	assert.False(t, ok)
}
