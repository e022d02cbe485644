package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Syntax (parser-level)
	SynUnexpectedToken   Code = 2001
	SynUnclosedBrace     Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynBadImportTarget   Code = 2005
	SynDuplicateArtifact Code = 2006

	// Semantic (rule checker)
	SemUnresolvedReference Code = 3001
	SemDuplicateMember     Code = 3002
	SemDanglingRelation    Code = 3003
	SemEmptyNamespace      Code = 3004
	SemCheckIncomplete     Code = 3005

	// I/O
	IOReadFailed Code = 4001
	IOLoadFailed Code = 4002

	// Project / batch
	PrjImportCycle        Code = 5001
	PrjSelfImport         Code = 5002
	PrjDuplicateNamespace Code = 5003
	PrjRuntimeUnavailable Code = 5004

	// Link (cross-reference resolution)
	LnkUnresolvedReference Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	SynUnexpectedToken:   "unexpected token",
	SynUnclosedBrace:     "unclosed brace",
	SynExpectSemicolon:   "expected ';'",
	SynExpectIdentifier:  "expected identifier",
	SynBadImportTarget:   "malformed import target",
	SynDuplicateArtifact: "duplicate declaration",

	SemUnresolvedReference: "unresolved reference",
	SemDuplicateMember:     "duplicate member name",
	SemDanglingRelation:    "relation endpoint missing",
	SemEmptyNamespace:      "empty namespace",
	SemCheckIncomplete:     "semantic validation incomplete",

	IOReadFailed: "cannot read file",
	IOLoadFailed: "cannot load document",

	PrjImportCycle:        "import cycle",
	PrjSelfImport:         "self import",
	PrjDuplicateNamespace: "duplicate namespace",
	PrjRuntimeUnavailable: "validation runtime unavailable",

	LnkUnresolvedReference: "unresolved reference",
}

// ID returns the compact stable identifier, e.g. "LNK6001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("LNK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
