package attributed

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// PlanKind says how a whole type is captured.
type PlanKind uint8

const (
	// ScalarPlan captures the value as a single scalar.
	ScalarPlan PlanKind = iota + 1

	// StructurePlan captures the value as named fields.
	StructurePlan
)

// FieldDescriptor is one field included in a StructurePlan.
type FieldDescriptor struct {
	// Name is the logged name.
	Name  string
	Index []int
	Read  Reader
	Disposition
}

// Plan is the compiled decision for one type. It is never modified after
// Classify returns it.
type Plan struct {
	Kind PlanKind
	Type reflect.Type

	// TypeTag is attached to structures built from this plan.
	TypeTag string

	// Mutable applies to ScalarPlan only.
	Mutable bool

	// Fields are in scanner order and never contain excluded fields.
	Fields []FieldDescriptor
}

func (p *Plan) String() string {
	if p == nil {
		return "not applicable"
	}
	if p.Kind == ScalarPlan {
		return fmt.Sprintf("scalar(mutable=%t)", p.Mutable)
	}
	return "structure[" + strings.Join(lo.Map(p.Fields, func(f FieldDescriptor, _ int) string {
		if f.Gate == GateAlways {
			return f.Name
		}
		return fmt.Sprintf("%s(%s %s)", f.Name, f.Gate, f.Threshold)
	}), " ") + "]"
}

// Classify compiles scanned metadata into a Plan. It returns nil when the
// type carries no recognized annotation, meaning the policy declines it.
func Classify(meta *TypeMetadata) *Plan {
	if meta.Scalar != nil {
		return &Plan{
			Kind:    ScalarPlan,
			Type:    meta.Type,
			TypeTag: typeTag(meta),
			Mutable: meta.Scalar.Mutable,
		}
	}

	if !lo.SomeBy(meta.Fields, func(f ScannedField) bool { return f.Annotations.Recognized() }) {
		return nil
	}

	fields := lo.FilterMap(meta.Fields, func(f ScannedField, _ int) (FieldDescriptor, bool) {
		d := dispositionOf(f.Annotations)
		if d.Gate == GateExcluded {
			return FieldDescriptor{}, false
		}
		name := f.Name
		if f.Annotations.Name != "" {
			name = f.Annotations.Name
		}
		return FieldDescriptor{Name: name, Index: f.Index, Read: f.Read, Disposition: d}, true
	})

	return &Plan{
		Kind:    StructurePlan,
		Type:    meta.Type,
		TypeTag: typeTag(meta),
		Fields:  fields,
	}
}

func typeTag(meta *TypeMetadata) string {
	if meta.Struct != nil {
		return meta.Struct.String()
	}
	return meta.Type.String()
}
