package mtlog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willibrandon/mtlog-attributed/attributed"
	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/destructure"
)

type level3 struct{ Value string }
type level2 struct{ Next level3 }
type level1 struct {
	Next   level2
	Hidden string `log:"-"`
}

func TestConverterPrimitivesAreScalars(t *testing.T) {
	c := newPropertyValueConverter(3, nil, destructure.NewDestructurer())

	for _, v := range []any{nil, true, "s", 1, int64(2), uint8(3), 4.5} {
		sv, ok := c.CreatePropertyValue(v, true).(*core.ScalarValue)
		if assert.True(t, ok, "%T", v) {
			assert.Equal(t, v, sv.Value)
		}
	}
}

func TestConverterWithoutDestructureIsScalar(t *testing.T) {
	c := newPropertyValueConverter(3, nil, destructure.NewDestructurer())
	v := level1{Hidden: "h"}
	assert.Equal(t, v, c.CreatePropertyValue(v, false).(*core.ScalarValue).Value)
}

func TestConverterDepthAppliesThroughPolicies(t *testing.T) {
	policy := attributed.New()
	c := newPropertyValueConverter(2, []core.DestructuringPolicy{policy}, destructure.NewDestructurer())

	top, ok := c.CreatePropertyValue(level1{}, true).(*core.StructureValue)
	assert.True(t, ok)
	assert.Equal(t, []string{"Next"}, top.Names(), "attributed policy built the top level")

	next, _ := top.Property("Next")
	second, ok := next.(*core.StructureValue)
	assert.True(t, ok)

	deepest, _ := second.Property("Next")
	assert.Equal(t, maxDepthReached, deepest.(*core.ScalarValue).Value)
}

func TestConverterStringify(t *testing.T) {
	c := newPropertyValueConverter(3, nil, destructure.NewDestructurer())
	assert.Equal(t, "Warning", c.stringify(core.WarningLevel).(*core.ScalarValue).Value)
	assert.Nil(t, c.stringify(nil).(*core.ScalarValue).Value)
}
