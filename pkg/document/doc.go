/*
Package document is the editing facade over an NBT file: it loads and
saves with the file's own compression, keeps the editable tree, and records
undo/redo history.

# Quick Start

	doc, err := document.Open(ctx, "level.dat", document.DefaultOptions())
	if err != nil {
	    log.Fatal(err)
	}
	id, _ := doc.Tree().Find("Data/LevelName")
	if err := doc.SetValue(id, "My World"); err != nil {
	    log.Fatal(err)
	}
	err = doc.Save(ctx)

# History

The edit methods on Document (Rename, SetValue, InsertChild, InsertTag,
RemoveChild, Remove, SetName, Edit) record a snapshot only when the
change succeeds. Callers that edit Tree() directly call PushSnapshot first.
Undo and Redo swap whole documents, so NodeIDs obtained before either call
are invalid afterwards.

# Saving

Save and SaveAs write through a temp file that is synced and renamed over
the target. A failed save leaves the previous file intact.
*/
package document
