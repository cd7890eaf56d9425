package lisp

// specialForm is the signature of every one of the six special forms
// plus the supplemental cond/and/or described in SPEC_FULL.md. Each
// receives the whole unevaluated form (head included) so it can check
// its own arity.
type specialForm func(ip *Interpreter, form *Cell, env *Cell) *Cell

// initSpecialForms wires the special-form dispatch table and interns
// one Symbol marker per form name; those markers are GC roots (spec
// §4.9) even though nothing in the evaluator ever looks them up by
// identity — they exist so a host embedder inspecting the heap can
// always find them, and so construction order matches the spec's
// "interned at initialization" wording.
//
// Special forms are recognized by the *unevaluated* head symbol's
// name, not by evaluating the head and comparing the result (Open
// Question, see DESIGN.md): none of `if`, `begin`, `quote`, `set`,
// `define`, `lambda`, `cond`, `and`, `or` is ever bound in an
// environment, so evaluating the bare symbol would always diagnose
// "unbound symbol" before a comparison could even happen.
func (ip *Interpreter) initSpecialForms() {
	ip.specialForms = map[string]specialForm{
		"if":     ifForm,
		"begin":  beginForm,
		"quote":  quoteForm,
		"set":    setForm,
		"define": defineForm,
		"lambda": lambdaForm,
		"cond":   condForm,
		"and":    andForm,
		"or":     orForm,
	}
	for name := range ip.specialForms {
		ip.specialFormMarkers = append(ip.specialFormMarkers, ip.Mksym(name))
	}
}

// Eval is the external entry point of spec §6: evaluate x in the
// interpreter's current lexical environment.
func (ip *Interpreter) Eval(x *Cell) *Cell {
	return ip.evalIn(x, ip.env)
}

// evalIn is the tree-walking core of spec §4.7, dispatching on x's tag.
func (ip *Interpreter) evalIn(x *Cell, env *Cell) *Cell {
	switch x.tag {
	case TagNil, TagTee, TagString, TagInteger, TagProc, TagPrimitive, TagFile:
		return x
	case TagSymbol:
		pair := ip.Find(env, x)
		if pair == ip.Nil {
			ip.Diagnose(Recoverable, "unbound symbol %q", string(x.text))
			return ip.Nil
		}
		return pair.Cadr()
	case TagList:
		return ip.evalList(x, env)
	default:
		ip.Diagnose(FatalExpression, "tag %s not implemented", x.tag)
		return ip.Nil
	}
}

func (ip *Interpreter) evalList(x *Cell, env *Cell) *Cell {
	if len(x.list) == 0 {
		return ip.Nil
	}

	head := x.list[0]
	if head.tag != TagSymbol {
		ip.Diagnose(Recoverable, "cannot apply: head of form is not a symbol")
		return ip.Nil
	}

	if sf, ok := ip.specialForms[string(head.text)]; ok {
		return sf(ip, x, env)
	}

	fn := ip.evalIn(head, env)
	args := ip.Mkobj(TagList)
	for _, a := range x.list[1:] {
		args.list = append(args.list, ip.evalIn(a, env))
	}
	result, _ := ip.Apply(fn, args)
	return result
}

// Apply dispatches a call to an already-evaluated head against an
// already-evaluated argument list (spec §4.7). A Primitive head
// invokes its host function directly; a Proc head checks arity, builds
// a fresh call environment by extending a copy of the closure's
// captured environment, and evaluates the body in it.
func (ip *Interpreter) Apply(head, args *Cell) (*Cell, error) {
	switch head.tag {
	case TagPrimitive:
		return head.prim(ip, args), nil

	case TagProc:
		params := head.Car()
		body := head.Cadr()
		capturedEnv := head.Caddr()
		if len(params.list) != len(args.list) {
			err := ip.Diagnose(Recoverable, "proc expected %d argument(s), got %d", len(params.list), len(args.list))
			return ip.Nil, err
		}
		callEnv := ip.Mkobj(TagList)
		callEnv.list = append(callEnv.list, capturedEnv.list...)
		ip.Extensions(callEnv, params, args)
		return ip.evalIn(body, callEnv), nil

	default:
		err := ip.Diagnose(Recoverable, "apply failed: %s is not callable", head.tag)
		return ip.Nil, err
	}
}

// ---- special forms ----

func ifForm(ip *Interpreter, form, env *Cell) *Cell {
	if len(form.list) != 4 {
		ip.Diagnose(Recoverable, "if: expected 3 arguments, got %d", len(form.list)-1)
		return ip.Nil
	}
	test := ip.evalIn(form.list[1], env)
	if test == ip.Nil {
		return ip.evalIn(form.list[3], env)
	}
	return ip.evalIn(form.list[2], env)
}

func beginForm(ip *Interpreter, form, env *Cell) *Cell {
	result := ip.Nil
	for _, e := range form.list[1:] {
		result = ip.evalIn(e, env)
	}
	return result
}

func quoteForm(ip *Interpreter, form, env *Cell) *Cell {
	if len(form.list) != 2 {
		ip.Diagnose(Recoverable, "quote: expected 1 argument, got %d", len(form.list)-1)
		return ip.Nil
	}
	return form.list[1]
}

func setForm(ip *Interpreter, form, env *Cell) *Cell {
	if len(form.list) != 3 {
		ip.Diagnose(Recoverable, "set: expected 2 arguments, got %d", len(form.list)-1)
		return ip.Nil
	}
	sym := form.list[1]
	if sym.tag != TagSymbol {
		ip.Diagnose(Recoverable, "set: first argument must be a symbol")
		return ip.Nil
	}
	pair := ip.Find(env, sym)
	if pair == ip.Nil {
		ip.Diagnose(Recoverable, "set: unbound symbol %q", string(sym.text))
		return ip.Nil
	}
	val := ip.evalIn(form.list[2], env)
	pair.list[1] = val
	return val
}

func defineForm(ip *Interpreter, form, env *Cell) *Cell {
	if len(form.list) != 3 {
		ip.Diagnose(Recoverable, "define: expected 2 arguments, got %d", len(form.list)-1)
		return ip.Nil
	}
	sym := form.list[1]
	if sym.tag != TagSymbol {
		ip.Diagnose(Recoverable, "define: first argument must be a symbol")
		return ip.Nil
	}
	val := ip.evalIn(form.list[2], env)
	return ip.extendPair(sym, val, ip.global)
}

func lambdaForm(ip *Interpreter, form, env *Cell) *Cell {
	if len(form.list) != 3 {
		ip.Diagnose(Recoverable, "lambda: expected 2 arguments, got %d", len(form.list)-1)
		return ip.Nil
	}
	params := form.list[1]
	body := form.list[2]
	if params.tag != TagList {
		ip.Diagnose(Recoverable, "lambda: parameter list must be a list")
		return ip.Nil
	}
	for _, p := range params.list {
		if p.tag != TagSymbol {
			ip.Diagnose(Recoverable, "lambda: every parameter must be a symbol")
			return ip.Nil
		}
	}
	return ip.Mkproc(params, body, env)
}

// cond is a supplemental special form (SPEC_FULL.md): evaluates each
// `(test body...)` clause's test in order, and on the first non-Nil
// test evaluates and returns that clause's body (Nil if the clause has
// none). Returns Nil if every test fails.
func condForm(ip *Interpreter, form, env *Cell) *Cell {
	for _, clause := range form.list[1:] {
		if clause.tag != TagList || len(clause.list) < 1 {
			ip.Diagnose(Recoverable, "cond: each clause must be a non-empty list")
			continue
		}
		if ip.evalIn(clause.list[0], env) == ip.Nil {
			continue
		}
		result := ip.Nil
		for _, e := range clause.list[1:] {
			result = ip.evalIn(e, env)
		}
		return result
	}
	return ip.Nil
}

// and/or are supplemental special forms so they can short-circuit,
// unlike an ordinary primitive whose arguments are always all
// evaluated before the call (SPEC_FULL.md).
func andForm(ip *Interpreter, form, env *Cell) *Cell {
	result := ip.T
	for _, e := range form.list[1:] {
		result = ip.evalIn(e, env)
		if result == ip.Nil {
			return ip.Nil
		}
	}
	return result
}

func orForm(ip *Interpreter, form, env *Cell) *Cell {
	for _, e := range form.list[1:] {
		v := ip.evalIn(e, env)
		if v != ip.Nil {
			return v
		}
	}
	return ip.Nil
}
