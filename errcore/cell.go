package errcore

// Kind tags the payload carried by a Cell. Only the kinds the error/unwind
// core actually touches are modeled; the full interpreter value space lives
// in the evaluator and is not this package's concern.
type Kind uint32

const (
	KindNone Kind = iota
	KindEnd
	KindBlank
	KindInteger
	KindWord
	KindString
	KindBlock
	KindObject
	KindError
	KindLogic
)

func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindBlank:
		return "blank"
	case KindInteger:
		return "integer"
	case KindWord:
		return "word"
	case KindString:
		return "string"
	case KindBlock:
		return "block"
	case KindObject:
		return "object"
	case KindError:
		return "error"
	case KindLogic:
		return "logic"
	default:
		return "none"
	}
}

// CellFlags are the per-array flags an Array can carry.
type CellFlags uint32

const (
	FlagManaged CellFlags = 1 << iota
	FlagVariableList
	FlagFileLine
)

// Cell is the runtime's universal value: a fixed-shape tagged union. Every
// slot is either uninitialized (never read), an end marker, or a valid
// value of some Kind — mirrored here by zero-valuing Payload whenever Kind
// is rewritten, so a stale payload of the wrong shape can never be read
// through a new Kind.
type Cell struct {
	Kind    Kind
	Managed bool
	Payload any
}

// Set clears and re-tags the cell: writing a cell must always replace its
// header and payload together, never patch one in isolation, so a stale
// payload of the wrong shape can never be read back out through a new Kind.
func (c *Cell) Set(kind Kind, payload any) {
	*c = Cell{Kind: kind, Payload: payload}
}

// End reports whether this cell is the end-marker sentinel.
func (c Cell) End() bool { return c.Kind == KindEnd }

func EndCell() Cell { return Cell{Kind: KindEnd} }

func BlankCell() Cell { return Cell{Kind: KindBlank} }

func IntegerCell(v int) Cell { return Cell{Kind: KindInteger, Payload: v} }

func WordCell(w string) Cell { return Cell{Kind: KindWord, Payload: w} }

func StringCell(s string) Cell { return Cell{Kind: KindString, Payload: s} }

func BlockCell(a *Array) Cell { return Cell{Kind: KindBlock, Payload: a} }

// Array is an ordered, growable sequence of cells terminated by an implicit
// end marker at Cells[len(Cells)]. Flags record whether the array backs a
// context's variable-list, is GC-managed, or carries file/line origin
// metadata for error reporting.
type Array struct {
	Cells []Cell
	Flags CellFlags
	File  string
	Line  int
}

func NewArray(flags CellFlags) *Array {
	return &Array{Flags: flags}
}

func (a *Array) Len() int { return len(a.Cells) }

func (a *Array) Push(c Cell) { a.Cells = append(a.Cells, c) }

// Truncate drops cells at and after index n, the Array equivalent of the
// chunk/stack truncation the unwinder performs on scalar cursors.
func (a *Array) Truncate(n int) {
	if n < 0 || n >= len(a.Cells) {
		return
	}
	a.Cells = a.Cells[:n]
}

func (a *Array) HasFileLine() bool { return a.Flags&FlagFileLine != 0 }
