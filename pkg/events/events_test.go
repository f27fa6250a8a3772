package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	e := New(OrderCreated, "o1", "u1", map[string]any{"quantity": 2.0})
	b, err := json.Marshal(e)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, OrderCreated, got.Type)
	assert.Equal(t, "o1", got.ResourceID)
	assert.Equal(t, "u1", got.SubjectID)
	assert.Equal(t, 2.0, got.Data["quantity"])
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("nope"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"resource_id":"x"}`))
	assert.Error(t, err)
}
