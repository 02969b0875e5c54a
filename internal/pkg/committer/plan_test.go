package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_AddSkipsNil(t *testing.T) {
	p := NewPlan()
	assert.True(t, p.IsEmpty())

	p.Add(nil, spanner.Delete("products", spanner.Key{"p-1"}), nil)
	p.Add(spanner.Delete("alerts", spanner.Key{"a-1"}))

	assert.False(t, p.IsEmpty())
	assert.Equal(t, 2, p.Len())
	assert.Len(t, p.Mutations(), 2)
}

func TestAdapter_EmptyPlanIsNoop(t *testing.T) {
	a := NewAdapter(nil)
	require.NoError(t, a.Apply(context.Background(), NewPlan()))
	require.NoError(t, a.Apply(context.Background(), nil))
}

func TestAdapter_NilClient(t *testing.T) {
	a := NewAdapter(nil)
	p := NewPlan()
	p.Add(spanner.Delete("products", spanner.Key{"p-1"}))
	require.Error(t, a.Apply(context.Background(), p))
}
