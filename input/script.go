package input

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/dop251/goja"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ScriptInput drives the viewpoint from JavaScript using goja.
// The script must define a function
//
//	controls(tick, x, y) -> {up, down, left, right}
//
// that is called once per tick. Missing fields are treated as released.
type ScriptInput struct {
	mu   sync.Mutex
	name string
	vm   *goja.Runtime
	fn   goja.Callable
}

// NewScriptInput compiles and runs the script once to define its functions.
func NewScriptInput(name, code string) (*ScriptInput, error) {
	prog, err := goja.Compile(name, code, false)
	if err != nil {
		return nil, errors.Wrapf(err, "script %s parse error", name)
	}

	vm := goja.New()
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, errors.Wrapf(err, "script %s execution failed", name)
	}

	v := vm.Get("controls")
	if v == nil || goja.IsUndefined(v) {
		return nil, errors.Errorf("script %s must define a 'controls' function", name)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.Errorf("script %s: 'controls' must be a function", name)
	}

	return &ScriptInput{name: name, vm: vm, fn: fn}, nil
}

// LoadScriptInput reads a script file.
func LoadScriptInput(path string) (*ScriptInput, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return NewScriptInput(path, string(code))
}

// Controls calls the script's controls function.
func (s *ScriptInput) Controls(tick uint64, pos mgl64.Vec2) (Controls, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.fn(goja.Undefined(), s.vm.ToValue(tick), s.vm.ToValue(pos[0]), s.vm.ToValue(pos[1]))
	if err != nil {
		return Controls{}, errors.Wrapf(err, "script %s controls(%d)", s.name, tick)
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return Controls{}, nil
	}

	// Round-trip through JSON so any object shape with the right keys works.
	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return Controls{}, errors.Wrap(err, "serialize script result")
	}
	var c Controls
	if err := json.Unmarshal(resultJSON, &c); err != nil {
		return Controls{}, errors.Wrapf(err, "parse script result %s", resultJSON)
	}
	return c, nil
}
