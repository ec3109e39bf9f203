// Package qubit is the simulation binding behind a character's health: each
// health point is a single qubit that can be nudged by fractional gates,
// sampled, and finally measured. The rest of the engine only consumes three
// operations (apply a named perturbation, measure, and a liveness check)
// and never looks at the amplitudes directly.
package qubit

import (
	"math"
	"math/cmplx"

	"github.com/nharlow/qrpg/engine/rng"
)

// Qubit is a single simulated qubit. The zero value is not usable; create
// qubits with New or Restore.
type Qubit struct {
	a0, a1   complex128
	measured bool
	value    bool
}

// New returns a qubit in the |0> state.
func New() *Qubit {
	return &Qubit{a0: 1}
}

// Restore rebuilds a qubit from serialized amplitudes or a measured value.
func Restore(a0, a1 complex128, measured, value bool) *Qubit {
	q := &Qubit{a0: a0, a1: a1, measured: measured, value: value}
	if measured {
		if value {
			q.a0, q.a1 = 0, 1
		} else {
			q.a0, q.a1 = 1, 0
		}
	}
	return q
}

// Amplitudes exposes the current state for serialization.
func (q *Qubit) Amplitudes() (a0, a1 complex128) {
	return q.a0, q.a1
}

// Flip applies a fractional X rotation. fraction 1.0 is a full bit flip;
// smaller fractions rotate part way. No effect on a measured qubit.
func (q *Qubit) Flip(fraction float64) {
	if q.measured {
		return
	}
	theta := math.Pi * fraction / 2
	c := complex(math.Cos(theta), 0)
	s := complex(0, -math.Sin(theta))
	a0, a1 := q.a0, q.a1
	q.a0 = c*a0 + s*a1
	q.a1 = s*a0 + c*a1
}

// Phase applies a fractional Z rotation: the |1> amplitude picks up a phase
// of pi*fraction. No effect on a measured qubit.
func (q *Qubit) Phase(fraction float64) {
	if q.measured {
		return
	}
	q.a1 *= cmplx.Exp(complex(0, math.Pi*fraction))
}

// Superpose applies a Hadamard gate. No effect on a measured qubit.
func (q *Qubit) Superpose() {
	if q.measured {
		return
	}
	inv := complex(1/math.Sqrt2, 0)
	a0, a1 := q.a0, q.a1
	q.a0 = inv * (a0 + a1)
	q.a1 = inv * (a0 - a1)
}

// Prob1 returns the probability of measuring |1>.
func (q *Qubit) Prob1() float64 {
	if q.measured {
		if q.value {
			return 1
		}
		return 0
	}
	p := real(q.a1)*real(q.a1) + imag(q.a1)*imag(q.a1)
	if p > 1 {
		p = 1
	}
	return p
}

// Sample draws a measurement outcome. With collapse, the qubit is consumed:
// it stays in the observed basis state and further gates are no-ops.
// Without collapse this is a non-destructive peek.
func (q *Qubit) Sample(src rng.Source, collapse bool) bool {
	if q.measured {
		return q.value
	}
	outcome := src.Float64() < q.Prob1()
	if collapse {
		q.measured = true
		q.value = outcome
		if outcome {
			q.a0, q.a1 = 0, 1
		} else {
			q.a0, q.a1 = 1, 0
		}
	}
	return outcome
}

// Measured reports whether the qubit has been collapsed.
func (q *Qubit) Measured() bool {
	return q.measured
}

// Value returns the measured outcome. Only meaningful after Measured.
func (q *Qubit) Value() bool {
	return q.value
}
