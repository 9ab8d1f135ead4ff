package expr

import (
	"strconv"
	"strings"
)

// Node is an expression tree node.
type Node interface {
	// String renders the node fully parenthesised.
	String() string
}

// Number is a numeric literal.
type Number struct {
	Token Token
	Value float64
}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Identifier names an input variable.
type Identifier struct {
	Token Token
	Name  string
}

func (i *Identifier) String() string { return i.Name }

// Prefix is a unary operation, currently only negation.
type Prefix struct {
	Token    Token
	Operator string
	Right    Node
}

func (p *Prefix) String() string {
	return "(" + p.Operator + p.Right.String() + ")"
}

// Infix is a binary operation.
type Infix struct {
	Token    Token
	Left     Node
	Operator string
	Right    Node
}

func (i *Infix) String() string {
	return "(" + i.Left.String() + " " + i.Operator + " " + i.Right.String() + ")"
}

// Call applies a named elementary function.
type Call struct {
	Token     Token
	Function  string
	Arguments []Node
}

func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Function + "(" + strings.Join(args, ", ") + ")"
}

// Identifiers returns the distinct identifiers referenced by n, in order of
// first appearance. Function names are not included.
func Identifiers(n Node) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Identifier:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *Prefix:
			walk(n.Right)
		case *Infix:
			walk(n.Left)
			walk(n.Right)
		case *Call:
			for _, a := range n.Arguments {
				walk(a)
			}
		}
	}
	walk(n)
	return out
}
