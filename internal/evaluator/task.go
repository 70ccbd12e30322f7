package evaluator

import (
	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/value"
)

// await drives t synchronously to completion if it hasn't run yet (spec
// §4.6: this interpreter is single-threaded and cooperative, so there is
// no event loop to suspend into — `await` just runs the deferred body
// now and returns its result). Awaiting a non-Task value yields the
// value itself unchanged, matching how many host languages let `await`
// pass through an already-ready value.
func (ev *Evaluator) await(v value.Value, node ast.Node) (value.Value, *signal) {
	task, ok := v.(*Task)
	if !ok {
		return v, nil
	}

	switch task.State {
	case TaskResolved:
		return task.Result, nil
	case TaskRejected:
		return nil, throwSignal(task.Err)
	case TaskRunning:
		return nil, ev.runtimeErrorf(node, "ValueError", "task is already running (re-entrant await)")
	}

	task.State = TaskRunning
	result, sig := ev.invoke(task.Body, task.Args, node)
	if sig != nil && sig.kind == signalThrow {
		task.State = TaskRejected
		task.Err = sig.payload
		return nil, throwSignal(task.Err)
	}
	if sig != nil {
		// A bare return inside an async body just yields its value,
		// same as a synchronous function.
		result = sig.payload
	}
	task.State = TaskResolved
	task.Result = result
	return result, nil
}
