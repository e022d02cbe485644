package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Origin identifies which pipeline stream produced a diagnostic.
type Origin uint8

const (
	// OriginIO marks unreadable or unloadable documents.
	OriginIO Origin = iota
	// OriginParse marks low-level syntax diagnostics from the parser.
	OriginParse
	// OriginLink marks unresolved-reference diagnostics from resolution.
	OriginLink
	// OriginSemantic marks rule violations from the semantic checker.
	OriginSemantic
	// OriginProject marks batch-wide findings (cycles, scheduling).
	OriginProject
)

func (o Origin) String() string {
	switch o {
	case OriginIO:
		return "io"
	case OriginParse:
		return "parse"
	case OriginLink:
		return "link"
	case OriginSemantic:
		return "semantic"
	case OriginProject:
		return "project"
	}
	return "unknown"
}
