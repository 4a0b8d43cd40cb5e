// Package symtab implements the block-structured symbol table: three
// parallel append-only tables (identifiers, blocks, array types) plus the
// display stack mapping each active lexical level to its block. Nothing is
// ever removed from any table; a popped block's record stays valid so every
// index minted during the run remains a usable handle.
package symtab

import "github.com/nusapascal/nusapascal/internal/types"

// NoLink marks the absence of a link or reference index.
const NoLink = -1

// UserStart is the first tab index available to user identifiers; entries
// below it are the seeded reserved words and builtin procedures.
const UserStart = 33

// TabEntry is one identifier record. Link chains the entry, inside its
// block, to the previous entry of the same object kind.
type TabEntry struct {
	Name    string
	Link    int // previous same-kind entry in the block, or NoLink
	Obj     types.ObjectKind
	Type    types.DataType
	Ref     int  // block index for subprograms/records, atab index for arrays, or NoLink
	Normal  bool // false for reference (var) parameters
	Level   int  // lexical level of the declaration
	Address int  // storage offset or value slot, kind-dependent
}

// BTabEntry is one block record.
type BTabEntry struct {
	Last      int // most recently inserted identifier of any kind
	LastPar   int // most recent parameter
	ParamSize int
	VarSize   int
}

// ATabEntry is one array-type descriptor.
type ATabEntry struct {
	IndexType   types.DataType
	ElementType types.DataType
	ElementRef  int // atab/btab ref when the element is composite, or NoLink
	Low, High   int
	ElementSize int
	TotalSize   int
}

// SymbolTable owns tab, btab and atab, and the display stack. Construct one
// per analysis run; it is not safe for concurrent use.
type SymbolTable struct {
	Tab     []TabEntry
	BTab    []BTabEntry
	ATab    []ATabEntry
	Display []int
}

// reservedWords are the seeded keyword entries, in their fixed index order.
var reservedWords = []string{
	"dan",        // 0  and
	"larik",      // 1  array
	"mulai",      // 2  begin
	"kasus",      // 3  case
	"konstanta",  // 4  const
	"bagi",       // 5  div
	"turun_ke",   // 6  downto
	"lakukan",    // 7  do
	"selain_itu", // 8  else
	"selesai",    // 9  end
	"untuk",      // 10 for
	"fungsi",     // 11 function
	"jika",       // 12 if
	"mod",        // 13 mod
	"tidak",      // 14 not
	"dari",       // 15 of
	"atau",       // 16 or
	"prosedur",   // 17 procedure
	"program",    // 18 program
	"rekaman",    // 19 record
	"ulangi",     // 20 repeat
	"string",     // 21 string
	"maka",       // 22 then
	"ke",         // 23 to
	"tipe",       // 24 type
	"sampai",     // 25 until
	"variabel",   // 26 var
	"selama",     // 27 while
	"padat",      // 28 packed
}

// builtinProcedures follow the reserved words, indices 29 through 32.
var builtinProcedures = []string{"writeln", "write", "readln", "read"}

// New creates a symbol table seeded with the reserved words and builtin
// procedures in their fixed low index range; user identifiers start at
// UserStart. The global block occupies btab[0] and the display starts there.
func New() *SymbolTable {
	st := &SymbolTable{
		Tab:     make([]TabEntry, 0, UserStart),
		BTab:    []BTabEntry{{}},
		Display: []int{0},
	}

	for i, word := range reservedWords {
		dt := types.Unknown
		if word == "string" {
			dt = types.String
		}
		st.Tab = append(st.Tab, TabEntry{
			Name:    word,
			Link:    NoLink,
			Obj:     types.ObjType,
			Type:    dt,
			Ref:     NoLink,
			Normal:  true,
			Level:   0,
			Address: i,
		})
	}
	for i, name := range builtinProcedures {
		st.Tab = append(st.Tab, TabEntry{
			Name:    name,
			Link:    NoLink,
			Obj:     types.ObjProcedure,
			Type:    types.Void,
			Ref:     NoLink,
			Normal:  true,
			Level:   0,
			Address: len(reservedWords) + i,
		})
	}

	return st
}

// EnterBlock allocates a new block record, pushes it on the display and
// returns its index.
func (st *SymbolTable) EnterBlock() int {
	index := len(st.BTab)
	st.BTab = append(st.BTab, BTabEntry{})
	st.Display = append(st.Display, index)
	return index
}

// ExitBlock pops the display. The block record itself is retained.
func (st *SymbolTable) ExitBlock() {
	if len(st.Display) > 1 {
		st.Display = st.Display[:len(st.Display)-1]
	}
}

// ReenterBlock pushes an already-allocated block back onto the display,
// used when a subprogram body is materialized after its name was registered
// in the enclosing scope.
func (st *SymbolTable) ReenterBlock(index int) {
	st.Display = append(st.Display, index)
}

// CurrentLevel is the active lexical level: display depth minus one.
func (st *SymbolTable) CurrentLevel() int {
	return len(st.Display) - 1
}

// CurrentBlock is the btab index of the active block.
func (st *SymbolTable) CurrentBlock() int {
	return st.Display[st.CurrentLevel()]
}

// Insert appends an identifier record to the active block and returns its
// tab index. The entry's Link is set to the previous entry of the same
// object kind in that block (reached through the block's existing chain);
// the block's Last pointer moves to the new entry regardless of kind.
func (st *SymbolTable) Insert(entry TabEntry) int {
	return st.insertInto(st.CurrentBlock(), entry)
}

// InsertAtGlobal appends an identifier record to the global block no matter
// which block is active, forcing level 0.
func (st *SymbolTable) InsertAtGlobal(entry TabEntry) int {
	entry.Level = 0
	return st.insertInto(0, entry)
}

func (st *SymbolTable) insertInto(blockIndex int, entry TabEntry) int {
	index := len(st.Tab)

	prevSameKind := NoLink
	for cur := st.BTab[blockIndex].Last; cur > 0; cur = st.Tab[cur].Link {
		if st.Tab[cur].Obj == entry.Obj {
			prevSameKind = cur
			break
		}
	}
	entry.Link = prevSameKind

	st.Tab = append(st.Tab, entry)
	st.BTab[blockIndex].Last = index
	if entry.Obj == types.ObjParameter {
		st.BTab[blockIndex].LastPar = index
	}
	return index
}

// Lookup resolves a name against the active scopes, innermost first. Within
// each level the walk starts at the block's Last pointer and follows the
// same-kind chain. If every level is exhausted, the seeded reserved/builtin
// range is scanned, then all level-0 identifiers regardless of block, which
// keeps globals visible to code analyzed before them.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	for level := st.CurrentLevel(); level >= 0; level-- {
		blockIndex := st.Display[level]
		for cur := st.BTab[blockIndex].Last; cur > 0; cur = st.Tab[cur].Link {
			if st.Tab[cur].Name == name {
				return cur, true
			}
		}
	}

	for i := 0; i < UserStart && i < len(st.Tab); i++ {
		if st.Tab[i].Name == name {
			return i, true
		}
	}
	for i := UserStart; i < len(st.Tab); i++ {
		if st.Tab[i].Name == name && st.Tab[i].Level == 0 {
			return i, true
		}
	}

	return NoLink, false
}

// LookupCurrentScope resolves a name in the active block only, for
// redeclaration checks. Same chain walk as Lookup, one level.
func (st *SymbolTable) LookupCurrentScope(name string) (int, bool) {
	blockIndex := st.CurrentBlock()
	for cur := st.BTab[blockIndex].Last; cur > 0; cur = st.Tab[cur].Link {
		if st.Tab[cur].Name == name {
			return cur, true
		}
	}
	return NoLink, false
}

// LookupInBlock resolves a name through the chain of an arbitrary block,
// used for record field resolution.
func (st *SymbolTable) LookupInBlock(blockIndex int, name string) (int, bool) {
	for cur := st.BTab[blockIndex].Last; cur > 0; cur = st.Tab[cur].Link {
		if st.Tab[cur].Name == name {
			return cur, true
		}
	}
	return NoLink, false
}

// InsertArray registers an array-type descriptor and returns its atab index.
func (st *SymbolTable) InsertArray(entry ATabEntry) int {
	st.ATab = append(st.ATab, entry)
	return len(st.ATab) - 1
}

// AddVarSize grows the active block's variable-size counter.
func (st *SymbolTable) AddVarSize(size int) {
	st.BTab[st.CurrentBlock()].VarSize += size
}

// AddParamSize grows the active block's parameter-size counter.
func (st *SymbolTable) AddParamSize(size int) {
	st.BTab[st.CurrentBlock()].ParamSize += size
}

// IsBuiltin reports whether name is one of the builtin procedures or the
// boolean word literals the lexer recognizes without a table entry.
func (st *SymbolTable) IsBuiltin(name string) bool {
	switch name {
	case "writeln", "write", "readln", "read", "true", "false":
		return true
	}
	return false
}
