package ast

// NewBlockStmt allocates `{ stmts... }`. A local KindVarDecl is a valid
// statement inside Args, doubling as both declaration and statement so the
// driver's per-property machinery needs no separate "local variable
// statement" kind.
func (s *Store) NewBlockStmt(pos Position, stmts []Index) Index {
	i := s.alloc(KindBlockStmt, pos)
	s.Node(i).Args = s.NewItems(stmts...)
	return i
}

func (s *Store) BlockStmts(i Index) []Index { return s.Items(s.Node(i).Args) }

// SetBlockStmts overwrites a block's statement list; used by the static
// expansion sweep when a function body contains `#if`/`#version`/`#foreach`.
func (s *Store) SetBlockStmts(i Index, stmts []Index) {
	s.Node(i).Args = s.NewItems(stmts...)
}

// NewExprStmt allocates an expression evaluated for effect.
func (s *Store) NewExprStmt(pos Position, expr Index) Index {
	i := s.alloc(KindExprStmt, pos)
	s.Node(i).A = expr
	return i
}

func (s *Store) ExprStmtExpr(i Index) Index { return s.Node(i).A }

// NewIfStmt allocates `if (cond) then else`. elseStmt may be Undefined.
func (s *Store) NewIfStmt(pos Position, cond, thenStmt, elseStmt Index) Index {
	i := s.alloc(KindIfStmt, pos)
	n := s.Node(i)
	n.A, n.B, n.C = cond, thenStmt, elseStmt
	return i
}

func (s *Store) IfCond(i Index) Index  { return s.Node(i).A }
func (s *Store) IfThen(i Index) Index  { return s.Node(i).B }
func (s *Store) IfElse(i Index) Index  { return s.Node(i).C }

// NewWhileStmt allocates `while (cond) body`.
func (s *Store) NewWhileStmt(pos Position, cond, body Index) Index {
	i := s.alloc(KindWhileStmt, pos)
	n := s.Node(i)
	n.A, n.B = cond, body
	return i
}

func (s *Store) WhileCond(i Index) Index { return s.Node(i).A }
func (s *Store) WhileBody(i Index) Index { return s.Node(i).B }

// NewForStmt allocates `for (init; cond; post) body`. Any of init/cond/post
// may be Undefined.
func (s *Store) NewForStmt(pos Position, init, cond, post, body Index) Index {
	i := s.alloc(KindForStmt, pos)
	n := s.Node(i)
	n.A, n.B, n.C, n.D = init, cond, post, body
	return i
}

func (s *Store) ForInit(i Index) Index { return s.Node(i).A }
func (s *Store) ForCond(i Index) Index { return s.Node(i).B }
func (s *Store) ForPost(i Index) Index { return s.Node(i).C }
func (s *Store) ForBody(i Index) Index { return s.Node(i).D }

// NewReturnStmt allocates `return [expr];`. expr may be Undefined (void
// return).
func (s *Store) NewReturnStmt(pos Position, expr Index) Index {
	i := s.alloc(KindReturnStmt, pos)
	s.Node(i).A = expr
	return i
}

func (s *Store) ReturnExpr(i Index) Index { return s.Node(i).A }

func (s *Store) NewBreakStmt(pos Position) Index    { return s.alloc(KindBreakStmt, pos) }
func (s *Store) NewContinueStmt(pos Position) Index { return s.alloc(KindContinueStmt, pos) }

// NewAssignStmt allocates `lhs = rhs;` or a compound assignment, op holding
// the compound operator's token-independent tag (0 for plain `=`).
func (s *Store) NewAssignStmt(pos Position, lhs, rhs Index, op uint16) Index {
	i := s.alloc(KindAssignStmt, pos)
	n := s.Node(i)
	n.A, n.B, n.Sub = lhs, rhs, op
	return i
}

func (s *Store) AssignLHS(i Index) Index  { return s.Node(i).A }
func (s *Store) AssignRHS(i Index) Index  { return s.Node(i).B }
func (s *Store) AssignOp(i Index) uint16  { return s.Node(i).Sub }
