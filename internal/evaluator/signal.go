package evaluator

import "github.com/iziteam/izi/internal/value"

// signalKind tags one of the four non-local control transfers described
// in spec §4.5. Rather than unwinding the host stack with panic/recover
// (reserved here for genuine host bugs, not language control flow — see
// SPEC_FULL.md §4.5), every eval/exec method returns a *signal alongside
// its Value; callers check it and propagate or handle it explicitly,
// mirroring spec §9's suggested "sum type returned from every eval step"
// port strategy.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
	signalContinue
	signalThrow
)

// signal carries a non-local transfer plus its payload (the returned
// Value for signalReturn, the thrown Value for signalThrow).
type signal struct {
	kind    signalKind
	payload value.Value
}

func throwSignal(v value.Value) *signal {
	return &signal{kind: signalThrow, payload: v}
}

func returnSignal(v value.Value) *signal {
	return &signal{kind: signalReturn, payload: v}
}

var breakSignal = &signal{kind: signalBreak}
var continueSignal = &signal{kind: signalContinue}
