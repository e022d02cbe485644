package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sysmltool/internal/driver"
	"sysmltool/internal/model"
)

var structureCmd = &cobra.Command{
	Use:   "structure [flags] <file.sysml|directory>...",
	Short: "Display SysML v2 document structure as ASCII tree or JSON",
	Long:  `Display the structural outline of one or more SysML v2 documents, including named elements and relation information. Documents must validate cleanly first`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStructure,
}

func init() {
	structureCmd.Flags().StringP("format", "f", "text", "output format (text|json)")
	structureCmd.Flags().Bool("relations", false, "print only the relations section; omit the element tree")
}

// relationInfo is a resolved relation triple.
type relationInfo struct {
	Kind string `json:"kind"`
	From string `json:"from"`
	To   string `json:"to"`
}

type structureNodeJSON struct {
	Type     string               `json:"type"`
	Name     string               `json:"name,omitempty"`
	Children []*structureNodeJSON `json:"children,omitempty"`
}

type structureOutputJSON struct {
	Structure []*structureNodeJSON `json:"structure,omitempty"`
	Relations []relationInfo       `json:"relations"`
}

// runStructure executes the "structure" command: it validates the inputs,
// refuses to render documents that carry validation errors, and prints the
// element hierarchy plus relation triples as an ASCII tree or JSON.
func runStructure(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("--format must be: text or json")
	}

	relationsOnly, err := cmd.Flags().GetBool("relations")
	if err != nil {
		return fmt.Errorf("failed to get relations flag: %w", err)
	}

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

	// A broken document would render as a misleading partial tree.
	refused := 0
	for i := range batch.Results {
		r := &batch.Results[i]
		errs, _ := r.Counts()
		if errs > 0 {
			fmt.Fprintf(os.Stderr, "[ERROR] %d validation error(s) in %s - fix before displaying structure.\n",
				errs, filepath.Base(r.Path))
			refused++
		}
	}
	if refused > 0 {
		return silentExit(cmd)
	}

	relations := collectRelations(batch)

	if format == "json" {
		return printStructureJSON(os.Stdout, batch, relations, relationsOnly)
	}
	printStructureText(os.Stdout, batch, relations, relationsOnly)
	return nil
}

// ASCII rendering

func printStructureText(w io.Writer, batch *driver.Batch, relations []relationInfo, relationsOnly bool) {
	if !relationsOnly {
		for i := range batch.Results {
			r := &batch.Results[i]
			if r.Tree == nil || r.Tree.Root == nil {
				continue
			}
			root := r.Tree.Root
			// An unnamed file-level namespace is a transparent wrapper;
			// render its children directly so no "[Namespace]" stub appears.
			if !root.HasName() {
				topLevel := structuralChildren(root)
				for j, child := range topLevel {
					renderASCII(w, child, "", j == len(topLevel)-1, true)
				}
			} else {
				renderASCII(w, root, "", true, true)
			}
		}
	}

	if len(relations) > 0 {
		if !relationsOnly {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "Relations:")
		for _, rel := range relations {
			fmt.Fprintf(w, "  %-40s -[%-11s]-> %s\n", rel.From, rel.Kind, rel.To)
		}
	}
}

// renderASCII prints one element and its subtree. isLast selects the
// connector glyph; roots print without a connector.
func renderASCII(w io.Writer, node *model.Node, prefix string, isLast, isRoot bool) {
	if model.ContentOnly(node.Kind) {
		return
	}

	if isRoot {
		fmt.Fprintln(w, elementLabel(node))
	} else {
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		fmt.Fprintln(w, prefix+connector+elementLabel(node))
	}

	childPrefix := ""
	if !isRoot {
		if isLast {
			childPrefix = "    "
		} else {
			childPrefix = "│   "
		}
	}
	children := structuralChildren(node)
	for i, child := range children {
		renderASCII(w, child, prefix+childPrefix, i == len(children)-1, false)
	}
}

// JSON rendering

func printStructureJSON(w io.Writer, batch *driver.Batch, relations []relationInfo, relationsOnly bool) error {
	output := structureOutputJSON{Relations: relations}
	if output.Relations == nil {
		output.Relations = []relationInfo{}
	}

	if !relationsOnly {
		for i := range batch.Results {
			r := &batch.Results[i]
			if r.Tree == nil || r.Tree.Root == nil {
				continue
			}
			root := r.Tree.Root
			if !root.HasName() {
				for _, child := range structuralChildren(root) {
					if node := buildStructureNode(child); node != nil {
						output.Structure = append(output.Structure, node)
					}
				}
			} else if node := buildStructureNode(root); node != nil {
				output.Structure = append(output.Structure, node)
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode structure output: %w", err)
	}
	return nil
}

func buildStructureNode(node *model.Node) *structureNodeJSON {
	if model.ContentOnly(node.Kind) {
		return nil
	}
	obj := &structureNodeJSON{
		Type: node.Kind.String(),
		Name: node.Name,
	}
	for _, child := range structuralChildren(node) {
		if childObj := buildStructureNode(child); childObj != nil {
			obj.Children = append(obj.Children, childObj)
		}
	}
	return obj
}

// Relation extraction

func collectRelations(batch *driver.Batch) []relationInfo {
	var out []relationInfo
	for i := range batch.Results {
		r := &batch.Results[i]
		if r.Tree == nil || r.Tree.Root == nil {
			continue
		}
		collectNodeRelations(r.Tree.Root, "", &out)
	}
	return out
}

// collectNodeRelations walks the tree carrying the nearest named ancestor,
// which serves as the relation source when the relation itself names none.
func collectNodeRelations(node *model.Node, owner string, out *[]relationInfo) {
	if label, ok := model.RelationKind(node.Kind); ok {
		if rel, ok := relationEndpoints(node, label, owner); ok {
			*out = append(*out, rel)
		}
	}
	next := owner
	if node.HasName() {
		next = node.Name
	}
	for _, child := range node.Children {
		collectNodeRelations(child, next, out)
	}
}

// relationEndpoints extracts the from/to pair of one relation node.
// Dependency and allocation read both endpoints left to right. Satisfy and
// verify name the requirement first, so the satisfying element (or the
// enclosing named element when the by-clause is absent) is the source.
// Clause-derived relations (subset, redefine, derive) carry only their
// counterpart and borrow the enclosing element as source.
func relationEndpoints(node *model.Node, label, owner string) (relationInfo, bool) {
	switch node.Kind {
	case model.KindDependency, model.KindAllocate:
		if len(node.Refs) >= 2 {
			return relationInfo{Kind: label, From: node.Refs[0].Target, To: node.Refs[1].Target}, true
		}
		if len(node.Refs) == 1 && owner != "" {
			return relationInfo{Kind: label, From: owner, To: node.Refs[0].Target}, true
		}
		return relationInfo{}, false
	case model.KindSatisfy, model.KindVerify:
		if len(node.Refs) == 0 {
			return relationInfo{}, false
		}
		from := owner
		if len(node.Refs) >= 2 {
			from = node.Refs[1].Target
		}
		if from == "" {
			return relationInfo{}, false
		}
		return relationInfo{Kind: label, From: from, To: node.Refs[0].Target}, true
	default:
		if len(node.Refs) == 0 || owner == "" {
			return relationInfo{}, false
		}
		return relationInfo{Kind: label, From: owner, To: node.Refs[0].Target}, true
	}
}

// Structural tree helpers

func structuralChildren(node *model.Node) []*model.Node {
	children := make([]*model.Node, 0, len(node.Children))
	for _, child := range node.Children {
		if !model.ContentOnly(child.Kind) {
			children = append(children, child)
		}
	}
	return children
}

// elementLabel returns "name [Kind]", or "[Kind]" for anonymous elements.
func elementLabel(node *model.Node) string {
	if node.HasName() {
		return node.Name + " [" + node.Kind.String() + "]"
	}
	return "[" + node.Kind.String() + "]"
}
