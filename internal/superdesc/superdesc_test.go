package superdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_SuperDescriptor_HasCentralRepository(t *testing.T) {
	p := New()
	d := p.SuperDescriptor()
	require.Len(t, d.Repositories, 1)
	assert.Equal(t, CentralRepositoryID, d.Repositories[0].ID)
}

func TestProvider_SuperDescriptor_ReturnsIndependentClones(t *testing.T) {
	p := New()
	first := p.SuperDescriptor()
	first.Properties["mutated"] = "yes"

	second := p.SuperDescriptor()
	_, present := second.Properties["mutated"]
	assert.False(t, present)
}
