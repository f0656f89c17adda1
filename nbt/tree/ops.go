package tree

import (
	"fmt"

	"github.com/joshuapare/nbtkit/internal/mutf8"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Rename changes the key of a compound child. Renaming to the current key
// is a no-op; renaming to a key held by a sibling fails with a
// duplicate-key error.
func (t *Tree) Rename(id NodeID, key string) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent == None {
		return types.New(types.ErrKindInvariant, "the root is renamed with SetName")
	}
	p := t.at(n.parent)
	if p.kind != nbt.KindCompound {
		return types.New(types.ErrKindKindMismatch,
			fmt.Sprintf("node %d is a %s element and has no key", id, p.kind))
	}
	if n.key == key {
		return nil
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if _, taken := t.childByKey(p, key); taken {
		return types.New(types.ErrKindDuplicateKey, fmt.Sprintf("key %q already exists", key))
	}
	n.key = key
	t.rev++
	return nil
}

// SetValue parses raw according to the node's kind and stores the result.
// Containers have no scalar value, so SetValue on one changes nothing.
func (t *Tree) SetValue(id NodeID, raw string) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.kind.IsContainer() {
		return nil
	}
	v, err := ParseValue(n.kind, raw)
	if err != nil {
		return err
	}
	n.value = v
	t.rev++
	return nil
}

// SetTag replaces a leaf's value with v, which must be of the same kind.
func (t *Tree) SetTag(id NodeID, v nbt.Tag) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if v == nil {
		return types.New(types.ErrKindInvalidValue, "nil value")
	}
	if n.kind.IsContainer() || v.Kind() != n.kind {
		return types.New(types.ErrKindKindMismatch,
			fmt.Sprintf("cannot store %s in %s node", v.Kind(), n.kind))
	}
	n.value = nbt.Clone(v)
	t.rev++
	return nil
}

// InsertChild appends a zero-valued node of kind under parent. For a
// compound parent key must be new; for a list parent key is ignored and
// kind must match the element kind unless the list is empty, in which case
// the list adopts kind.
func (t *Tree) InsertChild(parent NodeID, kind nbt.Kind, key string) (NodeID, error) {
	if kind == nbt.KindEnd || !kind.Valid() {
		return None, types.New(types.ErrKindInvalidValue, fmt.Sprintf("cannot create a node of kind %s", kind))
	}
	zero, err := nbt.Zero(kind)
	if err != nil {
		return None, types.Wrap(types.ErrKindInvalidValue, "new node", err)
	}
	return t.InsertTag(parent, key, zero)
}

// InsertTag appends a copy of tag (with its descendants) under parent,
// following the same rules as InsertChild.
func (t *Tree) InsertTag(parent NodeID, key string, tag nbt.Tag) (NodeID, error) {
	p, err := t.get(parent)
	if err != nil {
		return None, err
	}
	if tag == nil {
		return None, types.New(types.ErrKindInvalidValue, "nil tag")
	}
	if err := checkTag(tag); err != nil {
		return None, err
	}
	kind := tag.Kind()
	switch p.kind {
	case nbt.KindCompound:
		if err := checkKey(key); err != nil {
			return None, err
		}
		if _, taken := t.childByKey(p, key); taken {
			return None, types.New(types.ErrKindDuplicateKey, fmt.Sprintf("key %q already exists", key))
		}
	case nbt.KindList:
		if len(p.children) > 0 && p.elem != kind {
			return None, types.New(types.ErrKindKindMismatch,
				fmt.Sprintf("list of %s cannot hold %s", p.elem, kind))
		}
		key = ""
	default:
		return None, types.New(types.ErrKindKindMismatch,
			fmt.Sprintf("node %d is %s and cannot have children", parent, p.kind))
	}

	// build may grow the arena, so p must not be used after this point.
	id := t.build(tag, parent, key)
	pn := t.at(parent)
	if pn.kind == nbt.KindList {
		pn.elem = kind
	}
	pn.children = append(pn.children, id)
	t.rev++
	return id, nil
}

// RemoveChild detaches id and its descendants from parent. Removing the
// last element of a list leaves the list's element kind unchanged.
func (t *Tree) RemoveChild(parent, id NodeID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	if _, err := t.get(id); err != nil {
		return err
	}
	i := indexOf(p.children, id)
	if i < 0 {
		return types.New(types.ErrKindNotFound, fmt.Sprintf("node %d is not a child of node %d", id, parent))
	}
	p.children = append(p.children[:i], p.children[i+1:]...)
	t.free(id)
	t.rev++
	return nil
}

// Remove detaches id from whatever parent holds it.
func (t *Tree) Remove(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent == None {
		return types.New(types.ErrKindInvariant, "the root cannot be removed")
	}
	return t.RemoveChild(n.parent, id)
}

func (t *Tree) free(id NodeID) {
	n := t.at(id)
	for _, cid := range n.children {
		t.free(cid)
	}
	*n = node{}
	t.live--
}

// checkTag rejects subtrees holding nil entries before any node is built.
func checkTag(tag nbt.Tag) error {
	switch v := tag.(type) {
	case *nbt.Compound:
		for name, child := range v.All() {
			if child == nil {
				return types.New(types.ErrKindInvalidValue, fmt.Sprintf("entry %q is nil", name))
			}
			if err := checkTag(child); err != nil {
				return err
			}
		}
	case *nbt.List:
		for _, child := range v.All() {
			if err := checkTag(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkKey(key string) error {
	if n := mutf8.EncodedLen(key); n > types.MaxStringBytes {
		return types.New(types.ErrKindInvalidValue,
			fmt.Sprintf("key of %d encoded bytes exceeds %d", n, types.MaxStringBytes))
	}
	return nil
}
