package typegen

import (
	"math"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/schema"
)

// MapConstraints derives the constraint set a field of kind k carries from
// s. Only keywords that apply to k are read: numeric bounds for numbers,
// length, pattern and email for strings, item counts for lists and sets, and
// property counts for maps. It returns nil when nothing applies.
//
// Integer bounds are made inclusive by moving an exclusive bound one step
// inward. Floating-point bounds keep their exclusive flag unchanged.
func MapConstraints(s *schema.Schema, k model.Kind) *model.Constraints {
	c := &model.Constraints{}

	switch {
	case k.IsNumeric():
		if s.Minimum != nil {
			v, excl := *s.Minimum, s.ExclusiveMinimum
			if k.IsInteger() {
				if excl {
					v = math.Floor(v) + 1
				} else {
					v = math.Ceil(v)
				}
				excl = false
			}
			c.Minimum, c.ExclusiveMinimum = &v, excl
		}
		if s.Maximum != nil {
			v, excl := *s.Maximum, s.ExclusiveMaximum
			if k.IsInteger() {
				if excl {
					v = math.Ceil(v) - 1
				} else {
					v = math.Floor(v)
				}
				excl = false
			}
			c.Maximum, c.ExclusiveMaximum = &v, excl
		}
		c.MultipleOf = s.MultipleOf

	case k.IsStringLike():
		c.MinLength = s.MinLength
		c.MaxLength = s.MaxLength
		c.Pattern = s.Pattern
		c.Email = k == model.KindString && s.Format == "email"

	case k == model.KindList, k == model.KindSet:
		c.MinItems = s.MinItems
		c.MaxItems = s.MaxItems

	case k == model.KindMap:
		c.MinProperties = s.MinProperties
		c.MaxProperties = s.MaxProperties
	}

	if c.IsEmpty() {
		return nil
	}
	return c
}
