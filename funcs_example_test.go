package ibex_test

import (
	"fmt"

	"github.com/zephyrtronium/ibex"
)

func ExampleFunc() {
	// argmax returns the zero-based position of its largest argument.
	argmax := ibex.FuncOf(func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, &ibex.ArityError{Func: "argmax", Len: 0}
		}
		k := 0
		for i, x := range args {
			if x > args[k] {
				k = i
			}
		}
		return float64(k), nil
	})
	env := ibex.NewEnv(ibex.SetFunc("argmax", argmax))

	p, _ := ibex.Compile("argmax(3, 9, 4) + n")
	fmt.Println(p)
	for _, n := range []float64{0, 10} {
		r, _ := env.Set("n", n).Eval(p)
		fmt.Println(r)
	}
	_, err := ibex.EvalString("argmax()", ibex.SetFunc("argmax", argmax))
	fmt.Println(err)

	// Output:
	// 3 9 4 argmax[3] n +
	// 1
	// 11
	// cannot call argmax with 0 arguments
}
