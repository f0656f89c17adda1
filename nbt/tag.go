package nbt

import (
	"fmt"
	"iter"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// Tag is one typed value in an NBT document. The set of implementations is
// closed; see the package documentation for the list.
type Tag interface {
	// Kind returns the wire id of the tag.
	Kind() Kind
	isTag()
}

// Leaf and array variants. Their Go representation is their value.
type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []byte
	IntArray  []int32
	LongArray []int64
)

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (String) Kind() Kind    { return KindString }
func (ByteArray) Kind() Kind { return KindByteArray }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }
func (*List) Kind() Kind     { return KindList }
func (*Compound) Kind() Kind { return KindCompound }

func (Byte) isTag()      {}
func (Short) isTag()     {}
func (Int) isTag()       {}
func (Long) isTag()      {}
func (Float) isTag()     {}
func (Double) isTag()    {}
func (String) isTag()    {}
func (ByteArray) isTag() {}
func (IntArray) isTag()  {}
func (LongArray) isTag() {}
func (*List) isTag()     {}
func (*Compound) isTag() {}

// Zero returns the default value of a kind: 0, "", an empty array, an
// empty list, or an empty compound. KindEnd has no value.
func Zero(k Kind) (Tag, error) {
	switch k {
	case KindByte:
		return Byte(0), nil
	case KindShort:
		return Short(0), nil
	case KindInt:
		return Int(0), nil
	case KindLong:
		return Long(0), nil
	case KindFloat:
		return Float(0), nil
	case KindDouble:
		return Double(0), nil
	case KindString:
		return String(""), nil
	case KindByteArray:
		return ByteArray{}, nil
	case KindIntArray:
		return IntArray{}, nil
	case KindLongArray:
		return LongArray{}, nil
	case KindList:
		return &List{}, nil
	case KindCompound:
		return NewCompound(), nil
	default:
		return nil, types.New(types.ErrKindInvalidValue, fmt.Sprintf("%s has no value", k))
	}
}

// -----------------------------------------------------------------------------
// List
// -----------------------------------------------------------------------------

// List is an ordered sequence of unnamed tags that all share one kind.
//
// An empty list accepts any kind; the first element fixes the element
// kind. An empty list decoded with a declared element kind keeps reporting
// it so the document re-encodes identically.
type List struct {
	elem  Kind
	items []Tag
}

// NewList builds a list of elem-kind tags. All items must have kind elem.
func NewList(elem Kind, items ...Tag) (*List, error) {
	if !elem.Valid() {
		return nil, types.New(types.ErrKindInvalidValue, fmt.Sprintf("invalid list element kind %d", elem))
	}
	if elem == KindEnd && len(items) > 0 {
		return nil, types.New(types.ErrKindKindMismatch, "list of TAG_End cannot hold elements")
	}
	for i, it := range items {
		if it == nil {
			return nil, types.New(types.ErrKindInvalidValue, fmt.Sprintf("list item %d is nil", i))
		}
		if it.Kind() != elem {
			return nil, mismatch(elem, it.Kind())
		}
	}
	return &List{elem: elem, items: append([]Tag(nil), items...)}, nil
}

// Elem returns the element kind (KindEnd for an untyped empty list).
func (l *List) Elem() Kind { return l.elem }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns element i. It panics if i is out of range, like a slice index.
func (l *List) At(i int) Tag { return l.items[i] }

// Items returns a copy of the element slice.
func (l *List) Items() []Tag { return append([]Tag(nil), l.items...) }

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.items {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Accepts reports whether a tag of kind k may be added.
func (l *List) Accepts(k Kind) bool {
	if k == KindEnd || !k.Valid() {
		return false
	}
	return len(l.items) == 0 || l.elem == k
}

// Append adds t at the end. Appending to an empty list sets its element kind.
func (l *List) Append(t Tag) error {
	return l.Insert(len(l.items), t)
}

// Insert places t at index i, shifting later elements.
func (l *List) Insert(i int, t Tag) error {
	if t == nil {
		return types.New(types.ErrKindInvalidValue, "cannot insert nil tag")
	}
	if i < 0 || i > len(l.items) {
		return types.New(types.ErrKindNotFound, fmt.Sprintf("list index %d out of range [0,%d]", i, len(l.items)))
	}
	if !l.Accepts(t.Kind()) {
		return mismatch(l.elem, t.Kind())
	}
	l.elem = t.Kind()
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = t
	return nil
}

// Set replaces element i with a tag of the same kind.
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.items) {
		return types.New(types.ErrKindNotFound, fmt.Sprintf("list index %d out of range", i))
	}
	if t == nil {
		return types.New(types.ErrKindInvalidValue, "cannot store nil tag")
	}
	if t.Kind() != l.elem {
		return mismatch(l.elem, t.Kind())
	}
	l.items[i] = t
	return nil
}

// Remove deletes element i and returns it. The element kind is kept even
// when the list becomes empty.
func (l *List) Remove(i int) (Tag, error) {
	if i < 0 || i >= len(l.items) {
		return nil, types.New(types.ErrKindNotFound, fmt.Sprintf("list index %d out of range", i))
	}
	t := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return t, nil
}

func mismatch(want, got Kind) error {
	return types.New(types.ErrKindKindMismatch, fmt.Sprintf("list holds %s, cannot add %s", want, got))
}

// -----------------------------------------------------------------------------
// Compound
// -----------------------------------------------------------------------------

// Entry is one named child of a Compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Compound is an insertion-ordered mapping from unique names to tags.
type Compound struct {
	entries []Entry
	index   map[string]int
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.entries) }

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Tag, true
}

// Has reports whether name is present.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Position returns the insertion position of name, or -1.
func (c *Compound) Position(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// At returns the entry at position i.
func (c *Compound) At(i int) Entry { return c.entries[i] }

// Keys returns the names in insertion order.
func (c *Compound) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (c *Compound) Entries() []Entry { return append([]Entry(nil), c.entries...) }

// All iterates over name/tag pairs in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, e := range c.entries {
			if !yield(e.Name, e.Tag) {
				return
			}
		}
	}
}

// Set stores t under name. An existing entry is replaced in place, so its
// position does not change; a new name is appended.
func (c *Compound) Set(name string, t Tag) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.entries[i].Tag = t
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Tag: t})
}

// Put adds a new entry and fails with a duplicate-key error if name exists.
func (c *Compound) Put(name string, t Tag) error {
	if t == nil {
		return types.New(types.ErrKindInvalidValue, "cannot store nil tag")
	}
	if c.Has(name) {
		return duplicate(name)
	}
	c.Set(name, t)
	return nil
}

// Delete removes name and reports whether it was present.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}
	return true
}

// Rename changes the key of an entry, keeping its position.
func (c *Compound) Rename(oldName, newName string) error {
	i, ok := c.index[oldName]
	if !ok {
		return types.New(types.ErrKindNotFound, fmt.Sprintf("key %q not found", oldName))
	}
	if oldName == newName {
		return nil
	}
	if c.Has(newName) {
		return duplicate(newName)
	}
	delete(c.index, oldName)
	c.index[newName] = i
	c.entries[i].Name = newName
	return nil
}

func duplicate(name string) error {
	return types.New(types.ErrKindDuplicateKey, fmt.Sprintf("key %q already exists", name))
}
