package actor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nharlow/qrpg/qubit"
)

// Member serialization. A qaracter is encoded as comma-separated fields:
//
//	name,kind,count,q_1,...,q_count
//
// where each qubit is either "m0"/"m1" (measured value) or
// "a<re0>~<im0>~<re1>~<im1>" (live amplitudes). None of the characters used
// here collide with the save-token delimiters (';' and ':').

const (
	memberDelim    = ","
	amplitudeDelim = "~"
)

// EncodeMember serializes a qaracter for embedding in a save token.
func EncodeMember(q *Qaracter) string {
	fields := []string{q.Name, displayKey(q.Kind()), strconv.Itoa(q.Level())}
	for i := 0; i < q.Level(); i++ {
		fields = append(fields, encodeQubit(q.HP(i)))
	}
	return strings.Join(fields, memberDelim)
}

func encodeQubit(h *qubit.Qubit) string {
	if h.Measured() {
		if h.Value() {
			return "m1"
		}
		return "m0"
	}
	a0, a1 := h.Amplitudes()
	parts := []string{
		formatFloat(real(a0)), formatFloat(imag(a0)),
		formatFloat(real(a1)), formatFloat(imag(a1)),
	}
	return "a" + strings.Join(parts, amplitudeDelim)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DecodeMember rebuilds a qaracter from its serialized form.
func DecodeMember(s string) (*Qaracter, error) {
	fields := strings.Split(s, memberDelim)
	if len(fields) < 3 {
		return nil, fmt.Errorf("member %q: too few fields", s)
	}
	name, kind := fields[0], fields[1]
	if !ValidName(name) {
		return nil, fmt.Errorf("member %q: invalid name", s)
	}
	count, err := strconv.Atoi(fields[2])
	if err != nil || count < 1 {
		return nil, fmt.Errorf("member %q: bad qubit count", s)
	}
	if len(fields) != 3+count {
		return nil, fmt.Errorf("member %q: declared %d qubits, found %d", s, count, len(fields)-3)
	}

	q := &Qaracter{Name: name}
	if cls, ok := classes[kind]; ok {
		q.class = cls
	} else if spec, ok := npcKinds[kind]; ok {
		q.behavior = spec.behavior
	} else {
		return nil, fmt.Errorf("member %q: unknown kind %q", s, kind)
	}

	for _, tok := range fields[3:] {
		h, err := decodeQubit(tok)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", s, err)
		}
		q.hp = append(q.hp, h)
	}
	return q, nil
}

func decodeQubit(tok string) (*qubit.Qubit, error) {
	switch {
	case tok == "m0":
		return qubit.Restore(0, 0, true, false), nil
	case tok == "m1":
		return qubit.Restore(0, 0, true, true), nil
	case strings.HasPrefix(tok, "a"):
		parts := strings.Split(tok[1:], amplitudeDelim)
		if len(parts) != 4 {
			return nil, fmt.Errorf("qubit %q: want 4 amplitude parts", tok)
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("qubit %q: %w", tok, err)
			}
			vals[i] = v
		}
		a0 := complex(vals[0], vals[1])
		a1 := complex(vals[2], vals[3])
		return qubit.Restore(a0, a1, false, false), nil
	default:
		return nil, fmt.Errorf("qubit %q: unrecognized form", tok)
	}
}
