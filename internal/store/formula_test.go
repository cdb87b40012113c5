package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldEquals(t *testing.T) {
	assert.Equal(t, `{buyerEmail} = "a@b.com"`, FieldEquals("buyerEmail", "a@b.com"))
}

func TestFieldEqualsEscapesValue(t *testing.T) {
	// A value carrying quotes must not be able to close the literal.
	got := FieldEquals("buyerEmail", `x" = ""`)
	assert.Equal(t, `{buyerEmail} = "x\" = \"\""`, got)

	got = FieldEquals("buyerEmail", `back\slash`)
	assert.Equal(t, `{buyerEmail} = "back\\slash"`, got)
}
