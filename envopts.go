package ibex

// Env is an environment for evaluating expressions: the variables and
// functions that identifiers resolve to. An Env is not safe for concurrent
// use if any goroutine modifies it.
type Env struct {
	Vars  Variables
	Funcs Functions
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt     map[string]Func
	nodefaultopt struct{}
)

func (varopt) envOption()       {}
func (varsopt) envOption()      {}
func (funcopt) envOption()      {}
func (funcsopt) envOption()     {}
func (nodefaultopt) envOption() {}

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// SetFunc sets a function in the environment. To remove a function, pass nil
// for fn.
func SetFunc(name string, fn Func) EnvOption {
	return funcopt{name, fn}
}

// SetFuncs sets a group of functions in the environment. Nil entries remove
// functions.
func SetFuncs(fns map[string]Func) EnvOption {
	return funcsopt(fns)
}

// NoDefaults causes NewEnv to omit the constants and functions added by
// RegisterCommons. It has no effect on Clone.
func NoDefaults() EnvOption {
	return nodefaultopt{}
}

// NewEnv creates an environment holding the default constants and functions,
// then applies options in order.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{Vars: make(Variables), Funcs: make(Functions)}
	defaults := true
	for _, opt := range opts {
		if _, ok := opt.(nodefaultopt); ok {
			defaults = false
			break
		}
	}
	if defaults {
		RegisterCommons(env.Vars, env.Funcs)
	}
	env.apply(opts)
	return &env
}

// Clone creates a copy of an environment and applies options to it. Changes
// to the copy do not affect env.
func (env *Env) Clone(opts ...EnvOption) *Env {
	n := Env{
		Vars:  make(Variables, len(env.Vars)),
		Funcs: make(Functions, len(env.Funcs)),
	}
	for k, v := range env.Vars {
		n.Vars[k] = v
	}
	for k, f := range env.Funcs {
		n.Funcs[k] = f
	}
	n.apply(opts)
	return &n
}

func (env *Env) apply(opts []EnvOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			env.Vars[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				env.Vars[k] = v
			}
		case funcopt:
			env.setfunc(opt.name, opt.fn)
		case funcsopt:
			for k, f := range opt {
				env.setfunc(k, f)
			}
		case nodefaultopt:
			// Already done. Do nothing.
		default:
			panic("ibex: unknown option type")
		}
	}
}

func (env *Env) setfunc(name string, fn Func) {
	if fn == nil {
		delete(env.Funcs, name)
		return
	}
	env.Funcs[name] = fn
}

// Set sets the value of a variable. Returns env for chaining.
func (env *Env) Set(name string, val float64) *Env {
	if env.Vars == nil {
		env.Vars = make(Variables)
	}
	env.Vars[name] = val
	return env
}

// Lookup returns the value of a variable and whether it exists.
func (env *Env) Lookup(name string) (float64, bool) {
	v, ok := env.Vars[name]
	return v, ok
}
