// Package expr implements the two expression-handle arenas (§3.4): the
// value-producing ProdExpr arena and the statement-level StmtExpr arena.
// This replaces the teacher's pointer-graph internal/ast package with
// handle-indexed storage, since the builder only ever needs to refer to
// a node, never to own or walk a pointer into it directly.
package expr

import (
	"fmt"

	"github.com/colt-lang/coltc/internal/container"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/token"
)

// Prod is a handle into the value-producing expression arena.
type Prod int32

// InvalidProd is returned where no expression applies.
var InvalidProd = Prod(-1)

// Valid reports whether h refers to a real node.
func (h Prod) Valid() bool { return h >= 0 }

// Stmt is a handle into the statement-level expression arena.
type Stmt int32

// InvalidStmt is returned where no statement applies.
var InvalidStmt = Stmt(-1)

// Valid reports whether h refers to a real node.
func (h Stmt) Valid() bool { return h >= 0 }

// ProdKind discriminates a ProdExpr variant (§3.4).
type ProdKind uint8

const (
	ProdErrorKind ProdKind = iota
	ProdLiteralKind
	ProdUnaryKind
	ProdBinaryKind
	ProdCastKind
	ProdAddressOfKind
	ProdPointerLoadKind
	ProdVarReadKind
	ProdGlobalReadKind
	ProdCallKind
	ProdMoveKind
	ProdCopyKind
	ProdCondMoveKind
	ProdVarWriteKind
	ProdPointerStoreKind
	ProdGlobalWriteKind
	ProdNoOpKind
)

// ProdExpr is the variant stored per ProdExpr arena slot. Not every field
// is meaningful for every Kind; see the add_<kind> factories for which
// fields each variant populates.
type ProdExpr struct {
	Kind  ProdKind
	Range source.TokenRange
	Type  types.Token

	Op      token.Type // operator for Unary/Binary; cast kind (AS/BITAS) for Cast
	Mutable bool        // pointer mutability; set only by AddAddressOf

	A Prod // primary operand: unary operand, binary LHS, cast source, pointer-load/store target, move/copy source, call callee
	B Prod // secondary operand: binary RHS, pointer-store value, conditional-move false branch
	C Prod // conditional-move true branch

	Literal uint64 // literal payload for ProdLiteralKind, copied out of the token buffer
	Decl    Stmt   // declaring statement for VarRead/VarWrite/GlobalRead/GlobalWrite

	Args []Prod // call argument list
}

// StmtKind discriminates a StmtExpr variant (§3.4).
type StmtKind uint8

const (
	StmtErrorKind StmtKind = iota
	StmtVarDeclKind
	StmtGlobalDeclKind
	StmtScopeKind
	StmtConditionKind
	StmtExprKind
)

// StmtExpr is the variant stored per StmtExpr arena slot.
type StmtExpr struct {
	Kind  StmtKind
	Range source.TokenRange

	Name    string
	Type    types.Token
	Mutable bool
	Init    Prod // initializer; InvalidProd for an undeclared-value local

	Children []Stmt // ScopeExpr: ordered child statements
	Decls    []Stmt // ScopeExpr: declarations introduced directly in this scope

	Cond Prod // ConditionExpr: the guard
	Then Stmt // ConditionExpr: the taken-branch scope
	Else Stmt // ConditionExpr: the else scope (elif desugars into this), InvalidStmt if absent

	Value Prod // StmtExprKind: the wrapped expression (evaluated for effect)
}

// Arena owns both expression-handle spaces for a single compilation unit.
// Nodes are never freed individually and handles stay stable across
// growth; only the backing FlatList reallocates.
type Arena struct {
	prod  *container.FlatList[ProdExpr]
	stmts *container.FlatList[StmtExpr]
	types *types.Table
}

// NewArena creates an empty arena backed by the shared type table tbl.
func NewArena(tbl *types.Table) *Arena {
	return &Arena{
		prod:  container.NewFlatList[ProdExpr](256),
		stmts: container.NewFlatList[StmtExpr](64),
		types: tbl,
	}
}

func (a *Arena) pushProd(e ProdExpr) Prod { return Prod(a.prod.Push(e)) }
func (a *Arena) pushStmt(e StmtExpr) Stmt { return Stmt(a.stmts.Push(e)) }

// Prod returns the variant stored at h.
func (a *Arena) Prod(h Prod) ProdExpr { return a.prod.At(int(h)) }

// Stmt returns the variant stored at h.
func (a *Arena) Stmt(h Stmt) StmtExpr { return a.stmts.At(int(h)) }

// AddError records a parse-time error placeholder so the arena always
// has something to hand back even when parsing failed locally.
func (a *Arena) AddError(rng source.TokenRange) Prod {
	return a.pushProd(ProdExpr{Kind: ProdErrorKind, Range: rng, Type: a.types.ErrorType})
}

// AddStmtError is the statement-level counterpart of AddError.
func (a *Arena) AddStmtError(rng source.TokenRange) Stmt {
	return a.pushStmt(StmtExpr{Kind: StmtErrorKind, Range: rng})
}

// AddLiteral records a literal expression of the given built-in type.
func (a *Arena) AddLiteral(rng source.TokenRange, ty types.Token, value uint64) Prod {
	return a.pushProd(ProdExpr{Kind: ProdLiteralKind, Range: rng, Type: ty, Literal: value})
}

// AddUnary records a unary expression. Panics if ty does not claim
// support for op on operand — callers must have already consulted
// types.Table.SupportsUnary.
func (a *Arena) AddUnary(rng source.TokenRange, op token.Type, ty types.Token, operand Prod) Prod {
	if a.types.SupportsUnary(ty, op) != types.Builtin {
		panic(fmt.Sprintf("expr: add_unary: type does not support operator %s", op))
	}
	return a.pushProd(ProdExpr{Kind: ProdUnaryKind, Range: rng, Type: ty, Op: op, A: operand})
}

// AddBinary records a binary expression. operandType is the LHS operand's
// type, checked against op and rhsType via SupportsBinary; resultType is
// what the node's Type field stores, which differs from operandType for
// comparisons and logical operators (always bool) while matching it for
// arithmetic and bitwise operators. Panics if operandType does not claim
// support for op with rhsType.
func (a *Arena) AddBinary(rng source.TokenRange, op token.Type, resultType, operandType, rhsType types.Token, lhs, rhs Prod) Prod {
	if a.types.SupportsBinary(operandType, op, rhsType) != types.Builtin {
		panic(fmt.Sprintf("expr: add_binary: type does not support operator %s with given operand type", op))
	}
	return a.pushProd(ProdExpr{Kind: ProdBinaryKind, Range: rng, Type: resultType, Op: op, A: lhs, B: rhs})
}

// AddCast records an `as` or `bit_as` conversion. as is token.AS or
// token.BITAS. Panics if the source type is not castable to ty (for AS)
// — bit_as's additional byte-family constraint is enforced by the caller
// before reaching this factory, since it depends on the cast's textual
// form rather than the target type alone.
func (a *Arena) AddCast(rng source.TokenRange, as token.Type, ty types.Token, srcType types.Token, operand Prod) Prod {
	if as == token.AS && a.types.CastableTo(srcType, ty) != types.Builtin {
		panic("expr: add_cast: source type is not castable to target type")
	}
	return a.pushProd(ProdExpr{Kind: ProdCastKind, Range: rng, Type: ty, Op: as, A: operand})
}

// AddAddressOf records `&x`, materializing a pointer type over target's
// type whose mutability is propagated from target's own mutability
// (§4.5: "add_address_of propagates the target's mutability").
func (a *Arena) AddAddressOf(rng source.TokenRange, target Prod, targetType types.Token, mutable bool) Prod {
	ptr := a.types.Pointer(targetType, mutable)
	return a.pushProd(ProdExpr{Kind: ProdAddressOfKind, Range: rng, Type: ptr, A: target, Mutable: mutable})
}

// AddPointerLoad records `*p`. Panics if ptrType is not a non-opaque
// pointer.
func (a *Arena) AddPointerLoad(rng source.TokenRange, ptrType types.Token, pointee types.Token, pointer Prod) Prod {
	if a.types.SupportsUnary(ptrType, token.STAR) != types.Builtin {
		panic("expr: add_ptr_load: type is not a loadable pointer")
	}
	return a.pushProd(ProdExpr{Kind: ProdPointerLoadKind, Range: rng, Type: pointee, A: pointer})
}

// AddVarRead records a read of a local variable. Panics if decl is not a
// variable declaration (§4.5: "add_var_read asserts the referenced
// declaration is a local declaration").
func (a *Arena) AddVarRead(rng source.TokenRange, decl Stmt, ty types.Token) Prod {
	k := a.Stmt(decl).Kind
	if k != StmtVarDeclKind {
		panic("expr: add_var_read: referenced declaration is not a local declaration")
	}
	return a.pushProd(ProdExpr{Kind: ProdVarReadKind, Range: rng, Type: ty, Decl: decl})
}

// AddGlobalRead records a read of a global variable.
func (a *Arena) AddGlobalRead(rng source.TokenRange, decl Stmt, ty types.Token) Prod {
	return a.pushProd(ProdExpr{Kind: ProdGlobalReadKind, Range: rng, Type: ty, Decl: decl})
}

// AddCall records a function call with the given argument list.
func (a *Arena) AddCall(rng source.TokenRange, callee Prod, ty types.Token, args []Prod) Prod {
	return a.pushProd(ProdExpr{Kind: ProdCallKind, Range: rng, Type: ty, A: callee, Args: args})
}

// AddMove records a destructive move out of src.
func (a *Arena) AddMove(rng source.TokenRange, ty types.Token, src Prod) Prod {
	return a.pushProd(ProdExpr{Kind: ProdMoveKind, Range: rng, Type: ty, A: src})
}

// AddCopy records a non-destructive copy of src.
func (a *Arena) AddCopy(rng source.TokenRange, ty types.Token, src Prod) Prod {
	return a.pushProd(ProdExpr{Kind: ProdCopyKind, Range: rng, Type: ty, A: src})
}

// AddConditionalMove records a select between whenTrue and whenFalse
// gated by cond.
func (a *Arena) AddConditionalMove(rng source.TokenRange, ty types.Token, cond, whenTrue, whenFalse Prod) Prod {
	return a.pushProd(ProdExpr{Kind: ProdCondMoveKind, Range: rng, Type: ty, A: cond, B: whenFalse, C: whenTrue})
}

// AddVarWrite records an assignment to a local variable. Panics if decl
// does not name a mutable local.
func (a *Arena) AddVarWrite(rng source.TokenRange, decl Stmt, value Prod) Prod {
	d := a.Stmt(decl)
	if d.Kind != StmtVarDeclKind {
		panic("expr: add_var_write: referenced declaration is not a local declaration")
	}
	if !d.Mutable {
		panic("expr: add_var_write: target local is not mutable")
	}
	return a.pushProd(ProdExpr{Kind: ProdVarWriteKind, Range: rng, Type: d.Type, Decl: decl, B: value})
}

// AddPointerStore records `*p = v`. Panics if ptrType is not a mutable
// pointer, or pointee does not match value's type (§4.5: "add_ptr_store
// asserts the target is a mutable pointer of matching pointee type").
func (a *Arena) AddPointerStore(rng source.TokenRange, ptrType, pointee, valueType types.Token, pointer, value Prod) Prod {
	if !a.types.Kind(ptrType).IsMutablePointer() {
		panic("expr: add_ptr_store: target is not a mutable pointer")
	}
	if pointee != valueType {
		panic("expr: add_ptr_store: value type does not match pointee type")
	}
	return a.pushProd(ProdExpr{Kind: ProdPointerStoreKind, Range: rng, Type: a.types.Void, A: pointer, B: value})
}

// AddGlobalWrite records an assignment to a global variable.
func (a *Arena) AddGlobalWrite(rng source.TokenRange, decl Stmt, value Prod) Prod {
	return a.pushProd(ProdExpr{Kind: ProdGlobalWriteKind, Range: rng, Type: a.types.Void, Decl: decl, B: value})
}

// AddNoOp records a no-op expression, used where a statement has no
// value of its own (e.g. a `public:`/`private:` section marker).
func (a *Arena) AddNoOp(rng source.TokenRange) Prod {
	return a.pushProd(ProdExpr{Kind: ProdNoOpKind, Range: rng, Type: a.types.Void})
}

// AddVarDecl records a local variable declaration.
func (a *Arena) AddVarDecl(rng source.TokenRange, name string, ty types.Token, mutable bool, init Prod) Stmt {
	return a.pushStmt(StmtExpr{Kind: StmtVarDeclKind, Range: rng, Name: name, Type: ty, Mutable: mutable, Init: init})
}

// AddGlobalDecl records a global variable declaration. Panics if init is
// invalid — globals must have an initializer (§4.4.5).
func (a *Arena) AddGlobalDecl(rng source.TokenRange, name string, ty types.Token, mutable bool, init Prod) Stmt {
	if !init.Valid() {
		panic("expr: add_global_decl: a global must have an initializer")
	}
	return a.pushStmt(StmtExpr{Kind: StmtGlobalDeclKind, Range: rng, Name: name, Type: ty, Mutable: mutable, Init: init})
}

// AddExprStmt wraps a value-producing expression into a statement, for
// contexts where an expression appears on its own (an assignment or call
// used for effect rather than its value).
func (a *Arena) AddExprStmt(rng source.TokenRange, value Prod) Stmt {
	return a.pushStmt(StmtExpr{Kind: StmtExprKind, Range: rng, Value: value})
}

// AddScope records a `{ ... }` (or single-statement `:`) scope.
func (a *Arena) AddScope(rng source.TokenRange, children, decls []Stmt) Stmt {
	return a.pushStmt(StmtExpr{Kind: StmtScopeKind, Range: rng, Children: children, Decls: decls})
}

// AddCondition records an `if`/`elif`/`else` chain, already desugared so
// that `elif` appears as a nested condition in Else.
func (a *Arena) AddCondition(rng source.TokenRange, cond Prod, then, els Stmt) Stmt {
	return a.pushStmt(StmtExpr{Kind: StmtConditionKind, Range: rng, Cond: cond, Then: then, Else: els})
}
