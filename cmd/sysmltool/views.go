package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sysmltool/internal/driver"
	"sysmltool/internal/model"
)

var viewsCmd = &cobra.Command{
	Use:   "views [flags] <file.sysml|directory>...",
	Short: "List view and viewpoint elements from SysML v2 documents",
	Long:  `List view and viewpoint definitions and usages declared in one or more SysML v2 documents, including the elements each view exposes`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runViews,
}

// viewEntry is one listed view element.
type viewEntry struct {
	QualifiedName string
	Types         []string // typing clause targets, usages only
	Exposed       []string // expose targets, declaration order
}

// viewListing separates definitions from usages, each deduplicated by
// qualified name across documents.
type viewListing struct {
	Defs   []viewEntry
	Usages []viewEntry
}

// runViews executes the "views" command: it validates the inputs and
// lists every view and viewpoint element found in the loaded documents.
// Unlike structure, a document with validation errors still contributes
// what it has; the listing may just be incomplete.
func runViews(cmd *cobra.Command, args []string) error {
	files, err := collectModelFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, _, err := loadProjectManifest(wd)
	if err != nil {
		return err
	}
	opts, err := resolveRunnerOptions(cmd, manifest, 0)
	if err != nil {
		return err
	}

	batch := driver.NewRunner(opts).ValidateAll(cmd.Context(), files)

	broken := 0
	for i := range batch.Results {
		r := &batch.Results[i]
		errs, _ := r.Counts()
		if errs > 0 {
			fmt.Fprintf(os.Stderr, "[ERROR] %d validation error(s) in %s - views may be incomplete\n",
				errs, filepath.Base(r.Path))
			broken++
		}
	}

	printViews(os.Stdout, collectViewListing(batch))

	if broken > 0 {
		return silentExit(cmd)
	}
	return nil
}

func collectViewListing(batch *driver.Batch) viewListing {
	var listing viewListing
	seenDefs := make(map[string]bool)
	seenUsages := make(map[string]bool)
	for i := range batch.Results {
		r := &batch.Results[i]
		if r.Tree == nil || r.Tree.Root == nil {
			continue
		}
		collectNodeViews(r.Tree.Root, "", &listing, seenDefs, seenUsages)
	}
	return listing
}

// collectNodeViews walks the tree carrying the qualified path of named
// ancestors, appending view elements in document order.
func collectNodeViews(node *model.Node, prefix string, listing *viewListing, seenDefs, seenUsages map[string]bool) {
	qualified := prefix
	if node.HasName() && !model.TargetOnly(node.Kind) {
		qualified = model.JoinQualified(prefix, node.Name)
	}

	switch node.Kind {
	case model.KindViewDef, model.KindViewpointDef:
		if !seenDefs[qualified] {
			seenDefs[qualified] = true
			listing.Defs = append(listing.Defs, makeViewEntry(node, qualified))
		}
	case model.KindViewUsage, model.KindViewpointUsage:
		if !seenUsages[qualified] {
			seenUsages[qualified] = true
			listing.Usages = append(listing.Usages, makeViewEntry(node, qualified))
		}
	}

	for _, child := range node.Children {
		collectNodeViews(child, qualified, listing, seenDefs, seenUsages)
	}
}

func makeViewEntry(node *model.Node, qualified string) viewEntry {
	entry := viewEntry{QualifiedName: qualified}
	for _, ref := range node.Refs {
		entry.Types = append(entry.Types, ref.Target)
	}
	for _, child := range node.Children {
		if child.Kind == model.KindExpose && child.Name != "" {
			entry.Exposed = append(entry.Exposed, child.Name)
		}
	}
	return entry
}

func printViews(w io.Writer, listing viewListing) {
	fmt.Fprintf(w, "\n  Found %d view definition(s), %d view usage(s)\n\n",
		len(listing.Defs), len(listing.Usages))

	if len(listing.Defs) == 0 && len(listing.Usages) == 0 {
		fmt.Fprintln(w, "  No views defined in any loaded file.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Define views like:")
		fmt.Fprintln(w, "    view def MyView { ... }")
		fmt.Fprintln(w, "    view myView : MyView { expose someElement; }")
		return
	}

	if len(listing.Defs) > 0 {
		fmt.Fprintln(w, "  View definitions:")
		for _, e := range listing.Defs {
			printViewEntry(w, e)
		}
		fmt.Fprintln(w)
	}
	if len(listing.Usages) > 0 {
		fmt.Fprintln(w, "  View usages:")
		for _, e := range listing.Usages {
			printViewEntry(w, e)
		}
	}
}

func printViewEntry(w io.Writer, e viewEntry) {
	line := "    " + e.QualifiedName
	if len(e.Types) > 0 {
		line += " : " + strings.Join(e.Types, ", ")
	}
	fmt.Fprintln(w, line)
	for _, exposed := range e.Exposed {
		fmt.Fprintf(w, "        expose: %s\n", exposed)
	}
}
