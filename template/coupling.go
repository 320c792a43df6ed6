// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"strings"
)

// Operand names a per-cell quantity that can feed the nonlinear D term.
type Operand int

const (
	// OperandState is the cell state x.
	OperandState Operand = iota
	// OperandOutput is the cell output y = Std(x).
	OperandOutput
	// OperandInput1 is the first input u1.
	OperandInput1
	// OperandInput2 is the second input u2.
	OperandInput2
)

var operandNames = [...]string{
	OperandState:  "x",
	OperandOutput: "y",
	OperandInput1: "u1",
	OperandInput2: "u2",
}

// String returns the short operand name.
func (o Operand) String() string {
	if o < OperandState || o > OperandInput2 {
		return "?"
	}

	return operandNames[o]
}

func parseOperand(s string) (Operand, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range operandNames {
		if n == s {
			return Operand(i), nil
		}
	}

	return 0, wrapf(fmt.Sprintf("operand %q", s), ErrInvalidCoefficients)
}

// Coupling selects the operands of the nonlinear term
//
//	d[k] * f(Neighbor[k] - Center[ij])
//
// where Neighbor is sampled at kernel offset k and Center at the cell
// itself. The zero value couples state to state ("x-x").
type Coupling struct {
	Neighbor Operand
	Center   Operand
}

// ParseCoupling parses the "opA-opB" form, e.g. "y-y" or "u1-x".
// opA is the neighbour operand, opB the center operand.
func ParseCoupling(s string) (Coupling, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Coupling{}, wrapf(fmt.Sprintf("coupling %q", s), ErrInvalidCoefficients)
	}
	n, err := parseOperand(parts[0])
	if err != nil {
		return Coupling{}, err
	}
	c, err := parseOperand(parts[1])
	if err != nil {
		return Coupling{}, err
	}

	return Coupling{Neighbor: n, Center: c}, nil
}

// String renders the coupling in the form accepted by ParseCoupling.
func (c Coupling) String() string { return c.Neighbor.String() + "-" + c.Center.String() }
