package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSweetRequest_DistinguishesAbsentFromNull(t *testing.T) {
	t.Parallel()

	var req UpdateSweetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price": 2.5, "description": null, "quantity": 0}`), &req))

	assert.False(t, req.Name.Set)
	assert.False(t, req.Category.Set)
	assert.False(t, req.ImageURL.Set)

	assert.True(t, req.Price.Set)
	assert.False(t, req.Price.Null)
	assert.Equal(t, 2.5, req.Price.Value)

	assert.True(t, req.Quantity.Set)
	assert.Equal(t, 0, req.Quantity.Value)

	assert.True(t, req.Description.Set)
	assert.True(t, req.Description.Null)
	assert.Nil(t, req.Description.Ptr())

	assert.False(t, req.Empty())
}

func TestUpdateSweetRequest_Empty(t *testing.T) {
	t.Parallel()

	var req UpdateSweetRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Empty())
}

func TestOptional_TypeMismatch(t *testing.T) {
	t.Parallel()

	var req UpdateSweetRequest
	err := json.Unmarshal([]byte(`{"price": "cheap"}`), &req)
	assert.Error(t, err)
}

func TestOptional_Ptr(t *testing.T) {
	t.Parallel()

	v := Some(3).Ptr()
	require.NotNil(t, v)
	assert.Equal(t, 3, *v)

	assert.Nil(t, Null[int]().Ptr())
	assert.Nil(t, Optional[int]{}.Ptr())
}
