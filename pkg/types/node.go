package types

// NodeType identifies the type of an operator-tree node.
type NodeType string

// Operator-tree node types. The arity of each node is fixed by its type
// at construction time: literals and variables hold no children, unary
// nodes hold exactly one, binary nodes exactly two, and call/tuple nodes
// hold one child per argument or element.
const (
	NodeLiteral  NodeType = "literal"
	NodeVariable NodeType = "variable"
	NodeCall     NodeType = "call"
	NodeUnary    NodeType = "unary"
	NodeBinary   NodeType = "binary"
	NodeTuple    NodeType = "tuple"
	NodeAssign   NodeType = "assign"
)

// Operator names a unary or binary operator by its source symbol.
type Operator string

// Operators recognized by the tree builder.
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpPow Operator = "^"
	OpEq  Operator = "=="
	OpNe  Operator = "!="
	OpLt  Operator = "<"
	OpLe  Operator = "<="
	OpGt  Operator = ">"
	OpGe  Operator = ">="
	OpAnd Operator = "&&"
	OpOr  Operator = "||"
	OpNeg Operator = "-" // unary
	OpPos Operator = "+" // unary
	OpNot Operator = "!"
)

// Node is one node of an immutable operator tree.
//
// The fields are unexported and only settable through the typed
// constructors below, so a node whose child count disagrees with its type
// cannot be built. A Node holds no mutable state and may be evaluated
// concurrently any number of times.
type Node struct {
	typ      NodeType
	value    Value
	name     string
	op       Operator
	lhs      *Node
	rhs      *Node
	children []*Node
	position int
}

// NewLiteralNode builds a leaf node holding a constant value.
func NewLiteralNode(value Value, position int) *Node {
	return &Node{typ: NodeLiteral, value: value, position: position}
}

// NewVariableNode builds a leaf node referencing a variable by name.
func NewVariableNode(name string, position int) *Node {
	return &Node{typ: NodeVariable, name: name, position: position}
}

// NewUnaryNode builds a prefix-operator node with exactly one operand.
func NewUnaryNode(op Operator, operand *Node, position int) *Node {
	return &Node{typ: NodeUnary, op: op, lhs: operand, position: position}
}

// NewBinaryNode builds an infix-operator node with exactly two operands.
func NewBinaryNode(op Operator, lhs, rhs *Node, position int) *Node {
	return &Node{typ: NodeBinary, op: op, lhs: lhs, rhs: rhs, position: position}
}

// NewCallNode builds a function-call node whose arity is the argument count.
func NewCallNode(name string, args []*Node, position int) *Node {
	return &Node{typ: NodeCall, name: name, children: args, position: position}
}

// NewTupleNode builds a tuple-constructor node with one child per element.
func NewTupleNode(elements []*Node, position int) *Node {
	return &Node{typ: NodeTuple, children: elements, position: position}
}

// NewAssignNode builds a top-level assignment of an expression to a name.
func NewAssignNode(name string, rhs *Node, position int) *Node {
	return &Node{typ: NodeAssign, name: name, rhs: rhs, position: position}
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Literal returns the constant value of a literal node.
func (n *Node) Literal() Value { return n.value }

// Name returns the identifier of a variable, call, or assign node.
func (n *Node) Name() string { return n.name }

// Op returns the operator of a unary or binary node.
func (n *Node) Op() Operator { return n.op }

// LHS returns the single operand of a unary node, or the left operand of
// a binary node.
func (n *Node) LHS() *Node { return n.lhs }

// RHS returns the right operand of a binary or assign node.
func (n *Node) RHS() *Node { return n.rhs }

// Children returns the arguments of a call node or the elements of a
// tuple node. Callers must not modify the returned slice.
func (n *Node) Children() []*Node { return n.children }

// Position returns the byte offset of the node in the source expression.
func (n *Node) Position() int { return n.position }

// String returns the node type name.
func (n *Node) String() string {
	return string(n.typ)
}
