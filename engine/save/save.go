// Package save implements the portable save token: the full resumable game
// state serialized to a single copy-pasteable string.
//
// Token layout, with ';' separating fields and ':' separating flag pairs:
//
//	LOCATION ; PARTY_COUNT ; MEMBER_1 ; ... ; MEMBER_N ; K1:V1 ; K2:V2 ; ...
//
// Member serialization is delegated to the injected decoder and must itself
// avoid both reserved delimiters.
package save

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nharlow/qrpg/actor"
	"github.com/nharlow/qrpg/engine/state"
)

const (
	fieldDelim = ";"
	kvDelim    = ":"
)

// ErrMalformed is returned for any token that cannot be decoded. Decoding
// never mutates live state on failure.
var ErrMalformed = errors.New("malformed save token")

// MemberDecoder rebuilds one party member from its serialized form.
type MemberDecoder func(string) (*actor.Qaracter, error)

// Encode serializes a session into a save token.
func Encode(g *state.GameState) string {
	fields := []string{g.Location, strconv.Itoa(len(g.Party))}
	for _, member := range g.Party {
		fields = append(fields, actor.EncodeMember(member))
	}
	for _, f := range g.Flags.All() {
		fields = append(fields, f.Key+kvDelim+f.Value)
	}
	return strings.Join(fields, fieldDelim)
}

// Snapshot is the result of decoding a save token, not yet bound to any
// live session.
type Snapshot struct {
	Location string
	Party    []*actor.Qaracter
	Flags    *state.Flags
}

// Decode parses a save token. The location label is not validated against
// the world here; that is the caller's job, since the codec has no world
// dependency. Flag segments without a ':' are skipped silently, tolerating
// trailing or malformed metadata.
func Decode(token string, decodeMember MemberDecoder) (*Snapshot, error) {
	fields := strings.Split(token, fieldDelim)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: want at least 2 fields, got %d", ErrMalformed, len(fields))
	}

	count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad party count %q", ErrMalformed, fields[1])
	}
	if len(fields) < 2+count {
		return nil, fmt.Errorf("%w: declared %d members, found %d fields", ErrMalformed, count, len(fields)-2)
	}

	snap := &Snapshot{
		Location: fields[0],
		Flags:    state.NewFlags(),
	}
	for _, raw := range fields[2 : 2+count] {
		member, err := decodeMember(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		snap.Party = append(snap.Party, member)
	}
	for _, raw := range fields[2+count:] {
		key, value, ok := strings.Cut(raw, kvDelim)
		if !ok {
			continue
		}
		snap.Flags.Set(key, value)
	}
	return snap, nil
}

// Commit overwrites a live session's party, location, and flags from a
// snapshot. Input/output bindings and transient fields are untouched, so a
// game in progress keeps its console.
func Commit(g *state.GameState, snap *Snapshot) {
	g.Location = snap.Location
	g.Party = snap.Party
	g.Flags = snap.Flags
}

// Apply decodes a token and commits it onto the live session in one step.
// On error the session is unchanged.
func Apply(g *state.GameState, token string) error {
	snap, err := Decode(token, actor.DecodeMember)
	if err != nil {
		return err
	}
	Commit(g, snap)
	return nil
}
