// Package symtab interns symbol names into dense integer ids.
package symtab

// ID identifies an interned symbol. IDs are assigned sequentially from zero
// in first-seen order and are only meaningful within one Table.
type ID uint32

// Table maps distinct byte strings to IDs and back. The zero value is not
// usable, use New.
type Table struct {
	names []string
	ids   map[string]ID
}

// New returns an empty table sized for roughly sizeHint symbols.
func New(sizeHint int) *Table {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Table{
		names: make([]string, 0, sizeHint),
		ids:   make(map[string]ID, sizeHint),
	}
}

// Intern returns the ID of sym, allocating the next ID on first sight.
// sym may alias a reused buffer: the table keeps its own copy and never
// retains sym itself. Looking up a known symbol does not allocate.
func (t *Table) Intern(sym []byte) ID {
	if id, ok := t.ids[string(sym)]; ok {
		return id
	}
	return t.add(string(sym))
}

// InternString is Intern for a string.
func (t *Table) InternString(sym string) ID {
	if id, ok := t.ids[sym]; ok {
		return id
	}
	return t.add(sym)
}

func (t *Table) add(name string) ID {
	id := ID(len(t.names))
	t.names = append(t.names, name)
	t.ids[name] = id
	return id
}

// Name returns the text of id. It panics if id was not issued by t.
func (t *Table) Name(id ID) string {
	return t.names[id]
}

// Len returns the number of distinct symbols.
func (t *Table) Len() int {
	return len(t.names)
}

// Names returns the interned symbols indexed by ID. The slice is owned by the
// table and must not be modified.
func (t *Table) Names() []string {
	return t.names
}
