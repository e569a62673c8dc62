package ir

// Constraint is implemented by the two tagged variants below: Equation and
// Inequality. Modelled as a sum type per spec.md section 9 ("tagged
// variants for constraints... not inheritance"), not a shared base struct.
type Constraint interface {
	constraint()
	Expr() *Expression
	RHS() float64
}

// Inequality is expr (>)/(<) constant, optionally strict.
type Inequality struct {
	Expression  *Expression
	GreaterThan bool
	Strict      bool
	Constant    float64
}

func (*Inequality) constraint()         {}
func (i *Inequality) Expr() *Expression { return i.Expression }
func (i *Inequality) RHS() float64      { return i.Constant }

// Invert converts an expr (rel) constant constraint into the mirror-image
// -expr (flipped rel) -constant constraint — used by the presolver to flip
// >= constraints into <= form (section 4.6 step 2).
func (i *Inequality) Invert() {
	i.Expression.Multiply(-1)
	i.Constant *= -1
	i.GreaterThan = !i.GreaterThan
}

// Equation is expr = constant (no direction/strictness flags).
type Equation struct {
	Expression *Expression
	Constant   float64
}

func (*Equation) constraint()         {}
func (e *Equation) Expr() *Expression { return e.Expression }
func (e *Equation) RHS() float64      { return e.Constant }
