package main

import (
	"fmt"

	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/tree"
	"github.com/joshuapare/nbtkit/pkg/document"
)

// editFlags are shared by every command that writes a document back.
type editFlags struct {
	output string
	backup bool
}

// openDocument opens path with the CLI logger attached.
func openDocument(path string, backup bool) (*document.Document, error) {
	printVerbose("Opening file: %s\n", path)
	opts := document.DefaultOptions()
	opts.Logger = cliLogger()
	opts.CreateBackup = backup
	doc, err := document.Open(cmdContext(), path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	printVerbose("Detected compression: %s\n", doc.Scheme())
	return doc, nil
}

// findNode resolves a user-typed path, reporting it in the error.
func findNode(doc *document.Document, path string) (tree.NodeID, error) {
	id, err := doc.Tree().Find(path)
	if err != nil {
		return tree.None, fmt.Errorf("failed to find %q: %w", path, err)
	}
	return id, nil
}

// saveDocument writes doc back to its own path, or to output when set.
func saveDocument(doc *document.Document, flags editFlags) (string, error) {
	if flags.output == "" {
		if err := doc.Save(cmdContext()); err != nil {
			return "", fmt.Errorf("failed to save: %w", err)
		}
		return doc.Path(), nil
	}
	if err := doc.SaveAs(cmdContext(), flags.output, doc.Scheme()); err != nil {
		return "", fmt.Errorf("failed to save: %w", err)
	}
	return flags.output, nil
}

// reportEdit prints the outcome of an edit command.
func reportEdit(action, file, path, saved string, backup bool) error {
	if jsonOut {
		return printJSON(map[string]any{
			"file":    file,
			"path":    path,
			"action":  action,
			"saved":   saved,
			"success": true,
		})
	}
	printSuccess("%s %s\n", action, displayPath(path))
	printInfo("Saved: %s\n", saved)
	if backup && saved == file {
		printInfo("Backup created: %s.bak\n", file)
	}
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

// parseCompression maps a flag value to a scheme, keeping current when empty.
func parseCompression(s string, current compress.Scheme) (compress.Scheme, error) {
	if s == "" {
		return current, nil
	}
	return compress.ParseScheme(s)
}
