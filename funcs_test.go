package ibex_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/ibex"
)

// oracle computes f at 256 bits and rounds to float64.
func oracle(f func(z *big.Float, args ...*big.Float) *big.Float, args ...float64) float64 {
	const prec = 256
	in := make([]*big.Float, len(args))
	for i, x := range args {
		in[i] = new(big.Float).SetPrec(prec).SetFloat64(x)
	}
	r, _ := f(new(big.Float).SetPrec(prec), in...).Float64()
	return r
}

func TestCommonsAgainstBigfloat(t *testing.T) {
	// Within a few ulps; package math does not promise correct rounding.
	const tol = 4
	cases := []struct {
		name string
		src  string
		f    func(z *big.Float, args ...*big.Float) *big.Float
		args []float64
	}{
		{"exp", "exp(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Exp(z, a[0]) }, []float64{1}},
		{"exp-frac", "exp(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Exp(z, a[0]) }, []float64{0.375}},
		{"exp-neg", "exp(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Exp(z, a[0]) }, []float64{-2.5}},
		{"log", "log(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Log(z, a[0]) }, []float64{10}},
		{"ln", "ln(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Log(z, a[0]) }, []float64{0.125}},
		{"pow", "pow(%v, %v)", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Pow(z, a[0], a[1]) }, []float64{2, 0.5}},
		{"pow-op", "%v^%v", func(z *big.Float, a ...*big.Float) *big.Float { return bigfloat.Pow(z, a[0], a[1]) }, []float64{1.5, 3}},
		{"sqrt", "sqrt(%v)", func(z *big.Float, a ...*big.Float) *big.Float { return z.Sqrt(a[0]) }, []float64{2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := c.src
			for _, x := range c.args {
				src = replaceVerb(src, x)
			}
			got, err := ibex.EvalString(src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", src, err)
			}
			want := oracle(c.f, c.args...)
			if d := ulps(got, want); d > tol {
				t.Errorf("%q: want %v, got %v (%d ulps)", src, want, got, d)
			}
		})
	}
}

// replaceVerb substitutes the first %v in s with x.
func replaceVerb(s string, x float64) string {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && s[i+1] == 'v' {
			return s[:i] + strconv.FormatFloat(x, 'f', -1, 64) + s[i+2:]
		}
	}
	return s
}

func ulps(a, b float64) uint64 {
	x, y := math.Float64bits(a), math.Float64bits(b)
	if x > y {
		return x - y
	}
	return y - x
}

func TestCommonsArity(t *testing.T) {
	vars := make(ibex.Variables)
	funcs := make(ibex.Functions)
	ibex.RegisterCommons(vars, funcs)
	cases := []struct {
		name string
		good []int
		bad  []int
	}{
		{"abs", []int{1}, []int{0, 2}},
		{"sin", []int{1}, []int{0, 2}},
		{"cos", []int{1}, []int{0, 2}},
		{"exp", []int{1}, []int{0, 2}},
		{"log", []int{1}, []int{0, 2}},
		{"ln", []int{1}, []int{0, 2}},
		{"log2", []int{1}, []int{0, 2}},
		{"sqrt", []int{1}, []int{0, 2}},
		{"pow", []int{2}, []int{0, 1, 3}},
		{"min", []int{1, 2, 10}, []int{0}},
		{"max", []int{1, 2, 10}, []int{0}},
		{"atan2", []int{2}, []int{1, 3}},
	}
	for _, c := range cases {
		fn := funcs[c.name]
		if fn == nil {
			t.Errorf("no function %q", c.name)
			continue
		}
		for _, n := range c.good {
			if !fn.CanCall(n) {
				t.Errorf("%s can't be called with %d args", c.name, n)
			}
		}
		for _, n := range c.bad {
			if fn.CanCall(n) {
				t.Errorf("%s can be called with %d args", c.name, n)
			}
		}
	}
	for _, name := range []string{"pi", "e"} {
		if _, ok := vars[name]; !ok {
			t.Errorf("no constant %q", name)
		}
	}
	if vars["pi"] != math.Pi || vars["e"] != math.E {
		t.Errorf("wrong constants: pi=%v e=%v", vars["pi"], vars["e"])
	}
}

func TestCommonsOverride(t *testing.T) {
	vars := ibex.Variables{"pi": 3, "x": 1}
	funcs := ibex.Functions{"sin": ibex.Monadic(math.Cos)}
	ibex.RegisterCommons(vars, funcs)
	if vars["pi"] != math.Pi {
		t.Errorf("pi not replaced: %v", vars["pi"])
	}
	if vars["x"] != 1 {
		t.Errorf("x modified: %v", vars["x"])
	}
	if r, _ := funcs["sin"].Call([]float64{0}); r != 0 {
		t.Errorf("sin not replaced: sin(0) = %v", r)
	}
}

func TestMinMax(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"min(1)", 1},
		{"max(1)", 1},
		{"min(3, -2)", -2},
		{"max(3, -2)", 3},
		{"min(1/0, 5)", 5},
		{"max(-1/0, 5)", 5},
		{"max(-3, -7, -1, -9)", -1},
	}
	for _, c := range cases {
		r, err := ibex.EvalString(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if r != c.r {
			t.Errorf("%q: want %g, got %g", c.src, c.r, r)
		}
	}
}

func TestFuncOfArity(t *testing.T) {
	first := ibex.FuncOf(func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, &ibex.ArityError{Func: "first", Len: 0}
		}
		return args[0], nil
	})
	r, err := ibex.EvalString("first(9, 8, 7)", ibex.SetFunc("first", first))
	if err != nil || r != 9 {
		t.Errorf("first(9, 8, 7) gave %g, %v", r, err)
	}
	_, err = ibex.EvalString("first()", ibex.SetFunc("first", first))
	var ae *ibex.ArityError
	if !errors.As(err, &ae) || ae.Func != "first" {
		t.Errorf("first() gave wrong error %#v", err)
	}
}
