package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// PathSep separates segments in a node path. A literal separator or
// backslash inside a key is escaped with a backslash.
const PathSep = '/'

// Path returns the slash-separated location of id relative to the root.
// The root's path is "". List elements appear as their index.
func (t *Tree) Path(id NodeID) (string, error) {
	if _, err := t.get(id); err != nil {
		return "", err
	}
	var segs []string
	for cur := id; t.at(cur).parent != None; cur = t.at(cur).parent {
		segs = append(segs, escapeSegment(t.label(cur)))
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, string(PathSep)), nil
}

// Find resolves a path produced by Path (or typed by a user) to a handle.
// Leading and trailing separators are ignored.
func (t *Tree) Find(path string) (NodeID, error) {
	cur := t.root
	for _, seg := range SplitPath(path) {
		n := t.at(cur)
		switch n.kind {
		case nbt.KindCompound:
			id, ok := t.childByKey(n, seg)
			if !ok {
				return None, types.New(types.ErrKindNotFound, fmt.Sprintf("path %q: key %q not found", path, seg))
			}
			cur = id
		case nbt.KindList:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n.children) {
				return None, types.New(types.ErrKindNotFound,
					fmt.Sprintf("path %q: %q is not an index into %d items", path, seg, len(n.children)))
			}
			cur = n.children[i]
		default:
			return None, types.New(types.ErrKindNotFound,
				fmt.Sprintf("path %q: %s has no child %q", path, n.kind, seg))
		}
	}
	return cur, nil
}

// SplitPath breaks a path into unescaped segments.
func SplitPath(path string) []string {
	var (
		segs []string
		cur  strings.Builder
		esc  bool
	)
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}
	for _, r := range path {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc = true
		case r == PathSep:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return segs
}

func escapeSegment(s string) string {
	if !strings.ContainsAny(s, `/\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == PathSep || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
