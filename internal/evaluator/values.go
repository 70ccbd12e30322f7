package evaluator

import (
	"fmt"
	"strings"

	"github.com/iziteam/izi/internal/ast"
	"github.com/iziteam/izi/internal/env"
	"github.com/iziteam/izi/internal/value"
)

// Native functions are *natives.Function, a Callable defined in package
// natives so that package never needs to import evaluator (it talks to
// the evaluator only through the narrow natives.Context interface the
// Evaluator implements in natives_context.go).

// UserFunction is a function literal plus the Environment captured when
// it was constructed (spec §3.2 Callable, §4.5 Function expression).
type UserFunction struct {
	Name    string
	Params  []string
	Body    []ast.Stmt
	Closure *env.Environment
	Async   bool
}

func (u *UserFunction) Type() string { return "FUNCTION" }
func (u *UserFunction) String() string {
	name := u.Name
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("<fn %s>", name)
}

// BoundMethod pairs a UserFunction with the Instance `this` resolves to
// inside it (spec §3.2 Callable, §4.5 Property read on Instance).
type BoundMethod struct {
	Method   *UserFunction
	Receiver *Instance
}

func (b *BoundMethod) Type() string   { return "BOUND_METHOD" }
func (b *BoundMethod) String() string { return fmt.Sprintf("<bound method %s>", b.Method.Name) }

// Class is the runtime class descriptor (spec §3.4).
type Class struct {
	Name       string
	Super      *Class
	Fields     []ast.Field
	Methods    map[string]*UserFunction
	ClosureEnv *env.Environment
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// FindMethod walks the superclass chain looking up name (spec §9 "method
// lookup is iterative over that chain").
func (c *Class) FindMethod(name string) (*UserFunction, *Class) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// Instance is a class instance: a class pointer plus a field map (spec
// §3.2 Instance).
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

func (i *Instance) Type() string { return i.Class.Name }
func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.Class.Name)
}

func (i *Instance) Get(name string) (value.Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, _ := i.Class.FindMethod(name); m != nil {
		return &BoundMethod{Method: m, Receiver: i}, true
	}
	return nil, false
}

func (i *Instance) Set(name string, v value.Value) {
	i.Fields[name] = v
}

// TaskState is one of the four states in the task lifecycle (spec §4.6).
type TaskState int

const (
	TaskPending TaskState = iota
	TaskRunning
	TaskResolved
	TaskRejected
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskResolved:
		return "resolved"
	case TaskRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Task is a suspendable computation created by invoking an async
// function or by `spawn` (spec §3.5, §4.6). Result is written exactly
// once, on the transition to Resolved or Rejected.
type Task struct {
	State  TaskState
	Body   value.Value // a Callable: UserFunction, BoundMethod, or *natives.Function
	Args   []value.Value
	Result value.Value
	Err    value.Value // the raw thrown value, not necessarily an *ErrorValue
}

func (t *Task) Type() string   { return "TASK" }
func (t *Task) String() string { return fmt.Sprintf("<task %s>", t.State) }

// Frame is one entry of an Error's stack trace (spec §3.2 Error).
type Frame struct {
	Function string
	File     string
	Line     int
	Column   int
}

// ErrorValue is the runtime Error object (spec §3.2, §7). Kind is a
// free-form taxonomy tag (LexicalError, SyntaxError, NameError,
// TypeError, ValueError, IOError, ArityError, StackOverflow,
// ImportError — spec §7) rather than a Go type, so native modules can
// introduce their own kinds without changing this struct.
type ErrorValue struct {
	Message string
	Kind    string
	Cause   *ErrorValue
	Stack   []Frame
}

func NewError(kind, message string) *ErrorValue {
	return &ErrorValue{Kind: kind, Message: message}
}

func (e *ErrorValue) Type() string { return "ERROR" }
func (e *ErrorValue) String() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FullMessage formats the entire cause chain (spec §7 Stringification).
func (e *ErrorValue) FullMessage() string {
	var sb strings.Builder
	sb.WriteString(e.String())
	for cur := e.Cause; cur != nil; cur = cur.Cause {
		sb.WriteString("\nCaused by: ")
		sb.WriteString(cur.String())
	}
	return sb.String()
}

// Error implements the Go error interface so ErrorValue can travel
// through ordinary Go error returns in addition to signal.Throw payloads.
func (e *ErrorValue) Error() string { return e.FullMessage() }
