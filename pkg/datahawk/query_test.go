package datahawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Encode(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().
			Set("type", "A").
			Add("tags", "x", "y").
			Set("status", "READY")

		assert.Equal(t, "type=A&tags=x&tags=y&status=READY", query.Encode())
	})

	t.Run("multi-value keys encode in repeat format", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().Add("tags", "roof").Add("tags", "solar")

		assert.Equal(t, "tags=roof&tags=solar", query.Encode())
	})

	t.Run("set replaces existing values", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().
			Set("status", "READY").
			Set("status", "FAILED")

		assert.Equal(t, "status=FAILED", query.Encode())
	})

	t.Run("set replacement keeps original position", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().
			Set("a", "1").
			Set("b", "2").
			Set("a", "3")

		assert.Equal(t, "a=3&b=2", query.Encode())
	})

	t.Run("empty value lists are dropped", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().Set("tags").Set("status", "READY")

		assert.Equal(t, "status=READY", query.Encode())
	})

	t.Run("values are escaped", func(t *testing.T) {
		t.Parallel()

		query := NewQuery().Set("name", "site alpha&beta")

		assert.Equal(t, "name=site+alpha%26beta", query.Encode())
	})

	t.Run("empty query encodes to empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, NewQuery().Encode())
	})
}

func TestQuery_Helpers(t *testing.T) {
	t.Parallel()

	query := NewQuery().
		WithPage(2).
		WithPerPage(50).
		WithOrderBy("-created_at")

	assert.Equal(t, "page=2&per_page=50&order_by=-created_at", query.Encode())
}

func TestQuery_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilQuery *Query

	assert.True(t, nilQuery.IsEmpty())
	assert.True(t, NewQuery().IsEmpty())
	assert.False(t, NewQuery().Set("a", "1").IsEmpty())
}
