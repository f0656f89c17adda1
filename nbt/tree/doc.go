// Package tree is the editable node model behind an NBT document.
//
// A Tree stores nodes in an arena and hands out small NodeID handles
// instead of pointers. Each node knows its parent through a handle, so
// there are no ownership cycles, and a handle to a removed node is
// detected rather than silently reused: IDs are never recycled within
// one tree.
//
// # Reading
//
//	t := tree.FromTag(name, root)
//	for _, child := range t.MustChildren(t.Root()) {
//	    meta, _ := t.Stat(child)
//	    fmt.Println(meta.Label, meta.Kind, t.MustSummary(child))
//	}
//
// # Editing
//
// Rename, SetValue, InsertChild, InsertTag, and RemoveChild validate
// everything before touching the tree. A failed operation leaves the tree
// exactly as it was, so callers can record undo snapshots only for
// operations that succeed.
//
// The tree holds no locks. One goroutine at a time may use it.
package tree
