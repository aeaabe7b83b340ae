package ibex

import "math"

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. The arguments are in source order, and
	// args has a length for which CanCall returned true. Call may modify the
	// elements of args.
	Call(args []float64) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// The evaluator reports an *ArityError without calling the function when
	// CanCall(n) is false.
	CanCall(n int) bool
}

// Functions maps function names to implementations.
type Functions map[string]Func

// Variables maps variable names to values.
type Variables map[string]float64

type niladic struct {
	f func() float64
}

func (n niladic) Call(args []float64) (float64, error) {
	return n.f(), nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables into a Func.
func Niladic(f func() float64) Func {
	return niladic{f}
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(args []float64) (float64, error) {
	return m.f(args[0]), nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable, such as math.Sin, into a Func.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(x, y float64) float64
}

func (d dyadic) Call(args []float64) (float64, error) {
	return d.f(args[0], args[1]), nil
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables, such as math.Pow, into a Func.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic{f}
}

type variadic struct {
	least int
	f     func([]float64) float64
}

func (v variadic) Call(args []float64) (float64, error) {
	return v.f(args), nil
}

func (v variadic) CanCall(n int) bool {
	return n >= v.least
}

// Variadic wraps a function of at least least variables into a Func.
func Variadic(least int, f func([]float64) float64) Func {
	return variadic{least, f}
}

// FuncOf is an adapter to use an ordinary function as a Func accepting any
// number of arguments. The function is responsible for rejecting argument
// counts it does not support, typically with an *ArityError.
type FuncOf func(args []float64) (float64, error)

func (f FuncOf) Call(args []float64) (float64, error) {
	return f(args)
}

func (f FuncOf) CanCall(n int) bool {
	return true
}

var commonvars = Variables{
	"pi": math.Pi,
	"e":  math.E,
}

var commonfuncs = Functions{
	"abs":  Monadic(math.Abs),
	"sqrt": Monadic(math.Sqrt),
	"exp":  Monadic(math.Exp),
	"log":  Monadic(math.Log),
	"ln":   Monadic(math.Log),
	"log2": Monadic(math.Log2),
	"pow":  Dyadic(math.Pow),
	"min":  Variadic(1, minimum),
	"max":  Variadic(1, maximum),

	"log10": Monadic(math.Log10),
	"floor": Monadic(math.Floor),
	"ceil":  Monadic(math.Ceil),
	"round": Monadic(math.Round),
	"hypot": Dyadic(math.Hypot),

	// trig
	"sin":   Monadic(math.Sin),
	"cos":   Monadic(math.Cos),
	"tan":   Monadic(math.Tan),
	"asin":  Monadic(math.Asin),
	"acos":  Monadic(math.Acos),
	"atan":  Monadic(math.Atan),
	"atan2": Dyadic(math.Atan2),
	"sinh":  Monadic(math.Sinh),
	"cosh":  Monadic(math.Cosh),
	"tanh":  Monadic(math.Tanh),
}

// RegisterCommons adds the default constants and functions to vars and
// funcs, replacing any existing entries with the same names.
func RegisterCommons(vars Variables, funcs Functions) {
	for k, v := range commonvars {
		vars[k] = v
	}
	for k, f := range commonfuncs {
		funcs[k] = f
	}
}

func minimum(args []float64) float64 {
	r := math.Inf(1)
	for _, x := range args {
		if x < r {
			r = x
		}
	}
	return r
}

func maximum(args []float64) float64 {
	r := math.Inf(-1)
	for _, x := range args {
		if x > r {
			r = x
		}
	}
	return r
}
