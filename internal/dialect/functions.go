package dialect

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownFunction   = errors.New("unknown function")
	ErrDuplicateFunction = errors.New("function already registered")
	ErrArgumentCount     = errors.New("wrong number of arguments")
)

// Function renders one SQL function call. ReturnType is Inferred when the
// result type follows the first argument.
type Function interface {
	Render(args []string) (string, error)
	ReturnType() TypeCode
	HasArguments() bool
	HasParenthesesIfNoArguments() bool
}

// StandardFunction renders name(arg1, arg2, ...). The registered key may
// differ from the rendered name ("substring" renders as substr).
type StandardFunction struct {
	Name    string
	Returns TypeCode
}

func Standard(name string) StandardFunction { return StandardFunction{Name: name} }

func StandardTyped(name string, returns TypeCode) StandardFunction {
	return StandardFunction{Name: name, Returns: returns}
}

func (f StandardFunction) Render(args []string) (string, error) {
	return f.Name + "(" + strings.Join(args, ", ") + ")", nil
}

func (f StandardFunction) ReturnType() TypeCode              { return f.Returns }
func (f StandardFunction) HasArguments() bool                { return true }
func (f StandardFunction) HasParenthesesIfNoArguments() bool { return true }

// NoArgFunction renders a fixed keyword such as sysdate. Parens controls
// whether "()" follows it.
type NoArgFunction struct {
	Name    string
	Returns TypeCode
	Parens  bool
}

func NoArg(name string, returns TypeCode) NoArgFunction {
	return NoArgFunction{Name: name, Returns: returns}
}

func (f NoArgFunction) Render(args []string) (string, error) {
	if len(args) > 0 {
		return "", fmt.Errorf("%w: %s takes no arguments, got %d", ErrArgumentCount, f.Name, len(args))
	}
	if f.Parens {
		return f.Name + "()", nil
	}
	return f.Name, nil
}

func (f NoArgFunction) ReturnType() TypeCode              { return f.Returns }
func (f NoArgFunction) HasArguments() bool                { return false }
func (f NoArgFunction) HasParenthesesIfNoArguments() bool { return f.Parens }

var templateArg = regexp.MustCompile(`\?(\d+)`)

// TemplateFunction substitutes ?1..?N into a pattern, e.g. locate renders
// as instr(?2,?1). Several patterns may be registered, keyed by arity.
type TemplateFunction struct {
	Returns  TypeCode
	patterns map[int]string
}

// Template builds a TemplateFunction; each pattern's arity is the highest
// ?N it references.
func Template(returns TypeCode, patterns ...string) TemplateFunction {
	f := TemplateFunction{Returns: returns, patterns: make(map[int]string, len(patterns))}
	for _, p := range patterns {
		f.patterns[templateArity(p)] = p
	}
	return f
}

func templateArity(pattern string) int {
	highest := 0
	for _, m := range templateArg.FindAllStringSubmatch(pattern, -1) {
		n, _ := strconv.Atoi(m[1])
		if n > highest {
			highest = n
		}
	}
	return highest
}

func (f TemplateFunction) Render(args []string) (string, error) {
	pattern, ok := f.patterns[len(args)]
	if !ok {
		return "", fmt.Errorf("%w: template accepts %v arguments, got %d", ErrArgumentCount, f.arities(), len(args))
	}
	return templateArg.ReplaceAllStringFunc(pattern, func(tok string) string {
		n, _ := strconv.Atoi(tok[1:])
		return args[n-1]
	}), nil
}

func (f TemplateFunction) arities() []int {
	var out []int
	for n := range f.patterns {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Pattern returns the template used for the given argument count.
func (f TemplateFunction) Pattern(arity int) (string, bool) {
	p, ok := f.patterns[arity]
	return p, ok
}

func (f TemplateFunction) ReturnType() TypeCode              { return f.Returns }
func (f TemplateFunction) HasArguments() bool                { return true }
func (f TemplateFunction) HasParenthesesIfNoArguments() bool { return true }

// VarArgsFunction renders begin + args joined by sep + end; concat uses it
// to produce (a||b||c).
type VarArgsFunction struct {
	Begin, Sep, End string
	Returns         TypeCode
}

func (f VarArgsFunction) Render(args []string) (string, error) {
	return f.Begin + strings.Join(args, f.Sep) + f.End, nil
}

func (f VarArgsFunction) ReturnType() TypeCode              { return f.Returns }
func (f VarArgsFunction) HasArguments() bool                { return true }
func (f VarArgsFunction) HasParenthesesIfNoArguments() bool { return true }

// NvlFunction emulates coalesce with nested nvl calls:
// coalesce(a, b, c) renders nvl(a, nvl(b, c)).
type NvlFunction struct{}

func (NvlFunction) Render(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: coalesce needs at least one argument", ErrArgumentCount)
	}
	out := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		out = "nvl(" + args[i] + ", " + out + ")"
	}
	return out, nil
}

func (NvlFunction) ReturnType() TypeCode              { return Inferred }
func (NvlFunction) HasArguments() bool                { return true }
func (NvlFunction) HasParenthesesIfNoArguments() bool { return true }

// FunctionRegistry holds functions under case-insensitive names.
type FunctionRegistry struct {
	funcs map[string]Function
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{funcs: make(map[string]Function)}
}

func (r *FunctionRegistry) Register(name string, fn Function) error {
	key := strings.ToLower(name)
	if _, exists := r.funcs[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
	}
	r.funcs[key] = fn
	return nil
}

// mustRegister is used while building a dialect's fixed table; a duplicate
// there is a programming error.
func (r *FunctionRegistry) mustRegister(name string, fn Function) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

func (r *FunctionRegistry) Lookup(name string) (Function, bool) {
	fn, ok := r.funcs[strings.ToLower(name)]
	return fn, ok
}

// Render renders a call to the named function.
func (r *FunctionRegistry) Render(name string, args ...string) (string, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn.Render(args)
}

// Names returns all registered names, sorted.
func (r *FunctionRegistry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *FunctionRegistry) Len() int { return len(r.funcs) }
