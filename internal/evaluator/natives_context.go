package evaluator

import (
	"io"

	"github.com/iziteam/izi/internal/value"
)

// The Evaluator satisfies natives.Context structurally, so package
// natives never imports package evaluator.

func (ev *Evaluator) Stdout() io.Writer { return ev.out }

func (ev *Evaluator) Args() []string { return ev.args }

func (ev *Evaluator) Getenv(name string) string { return osGetenv(name) }

func (ev *Evaluator) Stringify(v value.Value) string { return ev.stringify(v) }

// stringify renders a Value the way `print` and string interpolation
// do (spec §7): primitives/collections use their own String(); an
// Instance defers to a user-defined toString() method when it has one.
func (ev *Evaluator) stringify(v value.Value) string {
	if inst, ok := v.(*Instance); ok {
		if m, _ := inst.Class.FindMethod("toString"); m != nil {
			bound := &BoundMethod{Method: m, Receiver: inst}
			result, sig := ev.invoke(bound, nil, nil)
			if sig == nil {
				if s, ok := result.(value.String); ok {
					return string(s)
				}
			}
		}
	}
	return v.String()
}
