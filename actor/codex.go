package actor

// Codex unlock bits. Each bit is granted by finding the matching lore in the
// world (a library, a hermit, an item) and gates the quantopedia entries for
// an NPC family.
const (
	CodexFoam      = 1 // the foam family and observers
	CodexHills     = 2 // cat states
	CodexPerimeter = 4 // reserved for the perimeter zone
)

// CodexEntry is one quantopedia record: which NPC kind it describes, the
// unlock bit that reveals it, and the lore text.
type CodexEntry struct {
	Kind  string
	Bit   int
	Entry string
}

// codex is the explicit lore registry, in display order. NPC kinds are
// registered here rather than discovered reflectively.
var codex = []CodexEntry{
	{
		Kind: "Observer",
		Bit:  CodexFoam,
		Entry: "Observers are known to frequent quantum events.\n" +
			"They will measure qubits in order to find out their values.",
	},
	{
		Kind: "BlueFoam",
		Bit:  CodexFoam,
		Entry: "Blue foam are the simplest kind of quantum errors.  Blue foam\n" +
			"are usually found in the |0> state and can be measured.\n" +
			"They will often slime their opponents with small fractions of X gates.",
	},
	{
		Kind: "GreenFoam",
		Bit:  CodexFoam,
		Entry: "Green foam are a simple kind of quantum error.  Green foam\n" +
			"are usually found in the |0> state and can be measured immediately.\n" +
			"They will often ooze, which will change their opponent's phase.",
	},
	{
		Kind: "RedFoam",
		Bit:  CodexFoam,
		Entry: "Red foam are a slightly more dangerous type of quantum error.\n" +
			"They are usually found in the |1> state and must be flipped\n" +
			"before they can be safely measured.",
	},
	{
		Kind: "PurpleFoam",
		Bit:  CodexFoam,
		Entry: "Purple foam are a combination of red and blue foam.\n" +
			"They are found in a |+> state which is a combination of\n" +
			"the |0> state and |1> state.  They can be safely measured\n" +
			"once a Hadamard gate has been applied.",
	},
	{
		Kind: "SchrodingerCat",
		Bit:  CodexHills,
		Entry: "Schrödinger's cats are found in a superposition of zero and one.\n" +
			"These cats have been known to apply Hadamard gates with their\n" +
			"claws and to measure their opponents.",
	},
}

// Codex returns all registered entries in display order.
func Codex() []CodexEntry {
	return codex
}

// CodexFor looks up the entry for an NPC kind name.
func CodexFor(kind string) (CodexEntry, bool) {
	for _, e := range codex {
		if e.Kind == kind {
			return e, true
		}
	}
	return CodexEntry{}, false
}
