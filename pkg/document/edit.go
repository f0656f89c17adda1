package document

import (
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

// PushSnapshot records the current state as an undo point and clears the
// redo stack. Call it before editing Tree() directly.
func (d *Document) PushSnapshot() {
	name, root := d.tree.Tag()
	d.hist.Push(name, root)
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (d *Document) Undo() bool {
	name, root := d.tree.Tag()
	snap, ok := d.hist.Undo(name, root)
	if !ok {
		return false
	}
	d.tree.Replace(snap.Name, snap.Root)
	d.logHistory("undo")
	return true
}

// Redo re-applies the most recently undone state.
func (d *Document) Redo() bool {
	name, root := d.tree.Tag()
	snap, ok := d.hist.Redo(name, root)
	if !ok {
		return false
	}
	d.tree.Replace(snap.Name, snap.Root)
	d.logHistory("redo")
	return true
}

func (d *Document) CanUndo() bool { return d.hist.CanUndo() }
func (d *Document) CanRedo() bool { return d.hist.CanRedo() }

// ClearHistory drops all undo and redo snapshots.
func (d *Document) ClearHistory() { d.hist.Reset() }

func (d *Document) logHistory(op string) {
	u, r := d.hist.Depth()
	d.log.Debug(op, "undo", u, "redo", r)
}

// Edit runs fn against the tree as one undoable step. If fn fails after
// changing the tree, the tree is restored and NodeIDs taken inside fn are
// invalid.
func (d *Document) Edit(fn func(t *tree.Tree) error) error {
	name, root := d.tree.Tag()
	rev := d.tree.Revision()
	if err := fn(d.tree); err != nil {
		if d.tree.Revision() != rev {
			d.tree.Replace(name, root)
		}
		return err
	}
	if d.tree.Revision() != rev {
		d.hist.Push(name, root)
	}
	return nil
}

// step wraps a single tree operation that is atomic on failure, so only the
// snapshot needs handling.
func (d *Document) step(op string, fn func() error) error {
	name, root := d.tree.Tag()
	rev := d.tree.Revision()
	if err := fn(); err != nil {
		d.log.Debug("edit rejected", "op", op, "error", err)
		return err
	}
	if d.tree.Revision() != rev {
		d.hist.Push(name, root)
	}
	return nil
}

// Rename changes a compound child's key.
func (d *Document) Rename(id tree.NodeID, key string) error {
	return d.step("rename", func() error { return d.tree.Rename(id, key) })
}

// SetValue parses raw into the node's value.
func (d *Document) SetValue(id tree.NodeID, raw string) error {
	return d.step("set", func() error { return d.tree.SetValue(id, raw) })
}

// SetName renames the root tag.
func (d *Document) SetName(name string) error {
	return d.step("set-name", func() error {
		d.tree.SetName(name)
		return nil
	})
}

// InsertChild adds a zero-valued node under parent.
func (d *Document) InsertChild(parent tree.NodeID, kind nbt.Kind, key string) (tree.NodeID, error) {
	id := tree.None
	err := d.step("insert", func() error {
		var err error
		id, err = d.tree.InsertChild(parent, kind, key)
		return err
	})
	return id, err
}

// InsertTag adds a copy of tag under parent.
func (d *Document) InsertTag(parent tree.NodeID, key string, tag nbt.Tag) (tree.NodeID, error) {
	id := tree.None
	err := d.step("insert", func() error {
		var err error
		id, err = d.tree.InsertTag(parent, key, tag)
		return err
	})
	return id, err
}

// RemoveChild detaches id from parent.
func (d *Document) RemoveChild(parent, id tree.NodeID) error {
	return d.step("remove", func() error { return d.tree.RemoveChild(parent, id) })
}

// Remove detaches id from its parent.
func (d *Document) Remove(id tree.NodeID) error {
	return d.step("remove", func() error { return d.tree.Remove(id) })
}
