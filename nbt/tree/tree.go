package tree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// NodeID is a handle to a node within one Tree.
type NodeID uint32

// None is returned as the parent of the root.
const None NodeID = ^NodeID(0)

// SkipChildren may be returned from a Walk callback to skip the current
// node's descendants.
var SkipChildren = errors.New("tree: skip children")

type node struct {
	kind     nbt.Kind
	key      string   // set for children of a compound
	value    nbt.Tag  // leaves and arrays only
	elem     nbt.Kind // lists only
	parent   NodeID
	children []NodeID
	live     bool
}

// Tree is an arena of nodes rooted at a compound.
type Tree struct {
	name  string
	nodes []node
	base  NodeID // handle of nodes[0]; advances on Replace so handles stay unique
	root  NodeID
	live  int
	rev   uint64
}

// NodeMeta is a cheap snapshot of one node's structural fields.
type NodeMeta struct {
	ID         NodeID
	Kind       nbt.Kind
	Key        string   // compound key ("" for list elements and the root)
	Label      string   // key, list index, or root name
	Parent     NodeID   // None for the root
	ElemKind   nbt.Kind // lists only
	ChildCount int
}

// New returns a tree holding an empty root compound.
func New(name string) *Tree {
	return FromTag(name, nbt.NewCompound())
}

// FromTag builds a tree from a root compound. The tree copies everything it
// keeps, so later changes to root do not affect it. Nil compound entries
// are skipped.
func FromTag(name string, root *nbt.Compound) *Tree {
	t := &Tree{}
	t.Replace(name, root)
	return t
}

// Replace discards every node and loads root in their place. Handles from
// before the call are invalid afterwards.
func (t *Tree) Replace(name string, root *nbt.Compound) {
	if root == nil {
		root = nbt.NewCompound()
	}
	t.name = name
	t.base += NodeID(len(t.nodes))
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.live = 0
	t.root = t.build(root, None, "")
	t.rev++
}

// build appends tag and its descendants to the arena and returns its handle.
func (t *Tree) build(tag nbt.Tag, parent NodeID, key string) NodeID {
	id := t.base + NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{kind: tag.Kind(), key: key, parent: parent, live: true})
	t.live++

	switch v := tag.(type) {
	case *nbt.Compound:
		children := make([]NodeID, 0, v.Len())
		for name, child := range v.All() {
			if child == nil {
				continue
			}
			children = append(children, t.build(child, id, name))
		}
		t.at(id).children = children
	case *nbt.List:
		children := make([]NodeID, 0, v.Len())
		for _, child := range v.All() {
			children = append(children, t.build(child, id, ""))
		}
		t.at(id).children = children
		t.at(id).elem = v.Elem()
	default:
		t.at(id).value = nbt.Clone(tag)
	}
	return id
}

// Name returns the root tag's name.
func (t *Tree) Name() string { return t.name }

// SetName changes the root tag's name.
func (t *Tree) SetName(name string) {
	if name != t.name {
		t.name = name
		t.rev++
	}
}

// Root returns the root compound's handle.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.live }

// Revision increases on every successful change to the tree.
func (t *Tree) Revision() uint64 { return t.rev }

// Tag materializes the whole tree as a fresh root compound.
func (t *Tree) Tag() (string, *nbt.Compound) {
	root, _ := t.materialize(t.root).(*nbt.Compound)
	return t.name, root
}

// Value materializes the subtree at id as a fresh tag.
func (t *Tree) Value(id NodeID) (nbt.Tag, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	return t.materialize(id), nil
}

func (t *Tree) materialize(id NodeID) nbt.Tag {
	n := t.at(id)
	switch n.kind {
	case nbt.KindCompound:
		c := nbt.NewCompound()
		for _, cid := range n.children {
			c.Set(t.at(cid).key, t.materialize(cid))
		}
		return c
	case nbt.KindList:
		items := make([]nbt.Tag, len(n.children))
		for i, cid := range n.children {
			items[i] = t.materialize(cid)
		}
		l, err := nbt.NewList(n.elem, items...)
		if err != nil {
			// Mutations keep list children homogeneous; reaching this is a bug.
			panic(fmt.Sprintf("tree: inconsistent list node %d: %v", id, err))
		}
		return l
	default:
		return nbt.Clone(n.value)
	}
}

func (t *Tree) get(id NodeID) (*node, error) {
	if id < t.base || int(id-t.base) >= len(t.nodes) || !t.nodes[id-t.base].live {
		return nil, types.New(types.ErrKindNotFound, fmt.Sprintf("node %d does not exist", id))
	}
	return t.at(id), nil
}

// at returns the node for a handle already known to be valid.
func (t *Tree) at(id NodeID) *node { return &t.nodes[id-t.base] }

// Stat returns structural metadata for id.
func (t *Tree) Stat(id NodeID) (NodeMeta, error) {
	n, err := t.get(id)
	if err != nil {
		return NodeMeta{}, err
	}
	return NodeMeta{
		ID:         id,
		Kind:       n.kind,
		Key:        n.key,
		Label:      t.label(id),
		Parent:     n.parent,
		ElemKind:   n.elem,
		ChildCount: len(n.children),
	}, nil
}

// Kind returns the tag kind of id.
func (t *Tree) Kind(id NodeID) (nbt.Kind, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Parent returns the parent of id, or None for the root.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return None, err
	}
	return n.parent, nil
}

// Children returns a copy of id's ordered child handles.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return append([]NodeID(nil), n.children...), nil
}

// MustChildren is Children for handles known to be valid.
func (t *Tree) MustChildren(id NodeID) []NodeID {
	c, err := t.Children(id)
	if err != nil {
		panic(err)
	}
	return c
}

// Label returns the display name of id: its compound key, its list index,
// or the root name. Labels are derived on each call so they always reflect
// the current structure.
func (t *Tree) Label(id NodeID) (string, error) {
	if _, err := t.get(id); err != nil {
		return "", err
	}
	return t.label(id), nil
}

func (t *Tree) label(id NodeID) string {
	n := t.at(id)
	if n.parent == None {
		return t.name
	}
	p := t.at(n.parent)
	if p.kind == nbt.KindList {
		return strconv.Itoa(indexOf(p.children, id))
	}
	return n.key
}

// Index returns the position of id among its parent's children, or -1 for
// the root.
func (t *Tree) Index(id NodeID) (int, error) {
	n, err := t.get(id)
	if err != nil {
		return -1, err
	}
	if n.parent == None {
		return -1, nil
	}
	return indexOf(t.at(n.parent).children, id), nil
}

// ElemKind returns a list node's element kind.
func (t *Tree) ElemKind(id NodeID) (nbt.Kind, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	if n.kind != nbt.KindList {
		return 0, types.New(types.ErrKindKindMismatch, fmt.Sprintf("node %d is %s, not a list", id, n.kind))
	}
	return n.elem, nil
}

// Lookup finds the child of a compound by key.
func (t *Tree) Lookup(parent NodeID, key string) (NodeID, error) {
	p, err := t.get(parent)
	if err != nil {
		return None, err
	}
	if p.kind != nbt.KindCompound {
		return None, types.New(types.ErrKindKindMismatch, fmt.Sprintf("node %d is %s, not a compound", parent, p.kind))
	}
	if id, ok := t.childByKey(p, key); ok {
		return id, nil
	}
	return None, types.New(types.ErrKindNotFound, fmt.Sprintf("key %q not found", key))
}

func (t *Tree) childByKey(p *node, key string) (NodeID, bool) {
	for _, cid := range p.children {
		if t.at(cid).key == key {
			return cid, true
		}
	}
	return None, false
}

// Walk visits id and its descendants in pre-order. Returning SkipChildren
// from fn skips the node's descendants; any other error stops the walk and
// is returned.
func (t *Tree) Walk(id NodeID, fn func(NodeID) error) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	err := t.walk(id, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (t *Tree) walk(id NodeID, fn func(NodeID) error) error {
	if err := fn(id); err != nil {
		return err
	}
	for _, cid := range t.at(id).children {
		if err := t.walk(cid, fn); err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}
	return nil
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, c := range ids {
		if c == id {
			return i
		}
	}
	return -1
}
