package typegen

import (
	"testing"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func TestMapConstraintsNumericBounds(t *testing.T) {
	tests := []struct {
		name     string
		schema   *schema.Schema
		kind     model.Kind
		min, max *float64
		exclMin  bool
		exclMax  bool
	}{
		{
			name:   "inclusive integer minimum",
			schema: &schema.Schema{Minimum: f64(10)},
			kind:   model.KindInt32,
			min:    f64(10),
		},
		{
			name:   "exclusive integer minimum moves up",
			schema: &schema.Schema{Minimum: f64(10), ExclusiveMinimum: true},
			kind:   model.KindInt32,
			min:    f64(11),
		},
		{
			name:   "exclusive integer maximum moves down",
			schema: &schema.Schema{Maximum: f64(100), ExclusiveMaximum: true},
			kind:   model.KindInt64,
			max:    f64(99),
		},
		{
			name:   "fractional integer bounds round inward",
			schema: &schema.Schema{Minimum: f64(1.5), Maximum: f64(9.5)},
			kind:   model.KindInt32,
			min:    f64(2),
			max:    f64(9),
		},
		{
			name:   "fractional exclusive integer bounds",
			schema: &schema.Schema{Minimum: f64(1.5), ExclusiveMinimum: true, Maximum: f64(9.5), ExclusiveMaximum: true},
			kind:   model.KindInt32,
			min:    f64(2),
			max:    f64(9),
		},
		{
			name:    "float bounds pass through",
			schema:  &schema.Schema{Minimum: f64(0.5), ExclusiveMinimum: true, Maximum: f64(1), ExclusiveMaximum: true},
			kind:    model.KindDouble,
			min:     f64(0.5),
			max:     f64(1),
			exclMin: true,
			exclMax: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MapConstraints(tt.schema, tt.kind)
			require.NotNil(t, c)
			assert.Equal(t, tt.min, c.Minimum)
			assert.Equal(t, tt.max, c.Maximum)
			assert.Equal(t, tt.exclMin, c.ExclusiveMinimum)
			assert.Equal(t, tt.exclMax, c.ExclusiveMaximum)
		})
	}
}

func TestMapConstraintsByKind(t *testing.T) {
	s := &schema.Schema{
		Format:        "email",
		Minimum:       f64(1),
		MultipleOf:    f64(2),
		MinLength:     intp(3),
		MaxLength:     intp(4),
		Pattern:       "^a",
		MinItems:      intp(5),
		MaxItems:      intp(6),
		MinProperties: intp(7),
		MaxProperties: intp(8),
	}

	t.Run("numeric", func(t *testing.T) {
		c := MapConstraints(s, model.KindInt64)
		require.NotNil(t, c)
		assert.Equal(t, f64(1), c.Minimum)
		assert.Equal(t, f64(2), c.MultipleOf)
		assert.Nil(t, c.MinLength)
		assert.Nil(t, c.MinItems)
	})

	t.Run("string", func(t *testing.T) {
		c := MapConstraints(s, model.KindString)
		require.NotNil(t, c)
		assert.Equal(t, intp(3), c.MinLength)
		assert.Equal(t, intp(4), c.MaxLength)
		assert.Equal(t, "^a", c.Pattern)
		assert.True(t, c.Email)
		assert.Nil(t, c.Minimum)
	})

	t.Run("email only on plain strings", func(t *testing.T) {
		c := MapConstraints(s, model.KindDate)
		require.NotNil(t, c)
		assert.False(t, c.Email)
	})

	t.Run("list", func(t *testing.T) {
		c := MapConstraints(s, model.KindList)
		require.NotNil(t, c)
		assert.Equal(t, intp(5), c.MinItems)
		assert.Equal(t, intp(6), c.MaxItems)
		assert.Nil(t, c.MinLength)
	})

	t.Run("map", func(t *testing.T) {
		c := MapConstraints(s, model.KindMap)
		require.NotNil(t, c)
		assert.Equal(t, intp(7), c.MinProperties)
		assert.Equal(t, intp(8), c.MaxProperties)
	})

	t.Run("kinds without constraints", func(t *testing.T) {
		assert.Nil(t, MapConstraints(s, model.KindBoolean))
		assert.Nil(t, MapConstraints(s, model.KindEnum))
		assert.Nil(t, MapConstraints(s, model.KindObject))
	})

	t.Run("absent bounds", func(t *testing.T) {
		assert.Nil(t, MapConstraints(&schema.Schema{Type: "integer"}, model.KindInt32))
	})
}
