// Package expr compiles Lua expressions into plottable functions.
//
// An expression sees two variables: x, the sample position, and t, a time
// value the caller advances between frames. Everything in Lua's math library
// is also available unqualified, so "sin(4*x + t/8)" works as written.
package expr

import (
	"errors"
	"fmt"
	"math"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/termplot/raster"
)

// ErrNotNumber is returned when an expression evaluates to a non-number
var ErrNotNumber = errors.New("expr: result is not a number")

const prelude = `for k, v in pairs(math) do _G[k] = v end`

// Expr is a compiled expression. Safe for concurrent use; calls are serialized.
type Expr struct {
	mu    sync.Mutex
	src   string
	state *lua.LState
	fn    *lua.LFunction
	t     float64
}

// Compile parses src as a Lua expression over x and t
func Compile(src string) (*Expr, error) {
	L := lua.NewState()
	if err := L.DoString(prelude); err != nil {
		L.Close()
		return nil, fmt.Errorf("expr: prelude: %w", err)
	}

	chunk, err := L.LoadString("return function(x, t) return (" + src + ") end")
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("expr: compile %q: %w", src, err)
	}
	L.Push(chunk)
	if err := L.PCall(0, 1, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("expr: compile %q: %w", src, err)
	}
	fn, ok := L.Get(-1).(*lua.LFunction)
	L.Pop(1)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("expr: compile %q: no function produced", src)
	}

	return &Expr{src: src, state: L, fn: fn}, nil
}

// String returns the source expression
func (e *Expr) String() string {
	return e.src
}

// SetTime sets the value of t for following evaluations
func (e *Expr) SetTime(t float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.t = t
}

// Eval evaluates the expression at x
func (e *Expr) Eval(x float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.CallByParam(lua.P{Fn: e.fn, NRet: 1, Protect: true}, lua.LNumber(x), lua.LNumber(e.t)); err != nil {
		return math.NaN(), fmt.Errorf("expr: eval %q at %g: %w", e.src, x, err)
	}
	ret := e.state.Get(-1)
	e.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %s at x=%g", ErrNotNumber, ret.Type(), x)
	}
	return float64(n), nil
}

// Func adapts the expression for rasterization; failed evaluations yield NaN
func (e *Expr) Func() raster.Func {
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// Close releases the Lua state
func (e *Expr) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Close()
}
