package lisp

var langSpecialOps = []*langBuiltin{
	{name: "quote", fun: opQuote},
	{name: "define", fun: opDefine},
	{name: "lambda", fun: opLambda},
	{name: "if", fun: opIf},
	{name: "and", fun: opAnd},
	{name: "or", fun: opOr},
}

// DefaultSpecialOps returns the default set of LBuiltinDef added to a Runtime
// when Runtime.AddSpecialOps is called without arguments.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

func opQuote(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("quote", args, 1)
	if err != nil {
		return nil, err
	}
	return cells[0], nil
}

func opDefine(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("define", args, 2)
	if err != nil {
		return nil, err
	}
	name := cells[0]
	if name == nil || name.Type != LSymbol {
		return nil, Errorf(ErrnoType, "define: cannot define non-symbol %v", name)
	}
	v, err := rt.Eval(cells[1])
	if err != nil {
		return nil, err
	}
	rt.Env.Put(name, v)
	return nil, nil
}

func opLambda(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("lambda", args, 2)
	if err != nil {
		return nil, err
	}
	return rt.Lambda(cells[0], cells[1]), nil
}

func opIf(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("if", args, 3)
	if err != nil {
		return nil, err
	}
	cond, err := rt.Eval(cells[0])
	if err != nil {
		return nil, err
	}
	switch cond {
	case rt.TRUE:
		return rt.Eval(cells[1])
	case rt.FALSE:
		return rt.Eval(cells[2])
	default:
		return nil, Errorf(ErrnoTruth, "if: condition is neither true nor false: %v", cond)
	}
}

// opAnd evaluates its arguments until one evaluates to FALSE.  Results other
// than TRUE and FALSE do not stop evaluation.
func opAnd(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := argSlice("and", args)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		v, err := rt.Eval(c)
		if err != nil {
			return nil, err
		}
		if v == rt.FALSE {
			return rt.FALSE, nil
		}
	}
	return rt.TRUE, nil
}

// opOr evaluates its arguments until one evaluates to TRUE.
func opOr(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := argSlice("or", args)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		v, err := rt.Eval(c)
		if err != nil {
			return nil, err
		}
		if v == rt.TRUE {
			return rt.TRUE, nil
		}
	}
	return rt.FALSE, nil
}
