package parser

import (
	"fmt"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
	"sysmltool/internal/source"
)

// Parse builds a document tree from content. The returned namespace is
// never nil: on syntax errors a partial tree is produced alongside the
// parse diagnostics, so the document still reaches resolution.
// parseDiagLimit caps syntax diagnostics per document; a file this
// broken repeats the same recovery failure over and over.
const parseDiagLimit = 256

func Parse(file source.FileID, identity string, content []byte) (*model.Namespace, []diag.Diagnostic) {
	bag := diag.NewBag(parseDiagLimit)
	p := &parser{
		sc:   newScanner(file, content),
		file: file,
		rep:  diag.BagReporter{Bag: bag},
	}
	p.advance()

	root := &model.Node{Kind: model.KindNamespace, Span: source.Span{File: file, End: uint32(len(content))}}
	p.parseItems(root, tokEOF)

	ns := &model.Namespace{Root: root, Identity: identity}
	for _, c := range root.Children {
		if c.Kind == model.KindNamespace && c.HasName() {
			ns.Name = c.Name
			break
		}
	}
	return ns, bag.Items()
}

type parser struct {
	sc   *scanner
	file source.FileID
	tok  token
	rep  diag.Reporter
}

func (p *parser) advance() {
	p.tok = p.sc.next()
}

func (p *parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(p.rep, code, diag.OriginParse, span, fmt.Sprintf(format, args...))
}

// skipToRecovery consumes tokens until a likely item boundary.
func (p *parser) skipToRecovery() {
	depth := 0
	for {
		switch p.tok.kind {
		case tokEOF:
			return
		case tokSemi:
			if depth == 0 {
				p.advance()
				return
			}
		case tokLBrace:
			depth++
		case tokRBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseItems fills parent.Children until the closing token.
func (p *parser) parseItems(parent *model.Node, until tokKind) {
	for p.tok.kind != until && p.tok.kind != tokEOF {
		if item := p.parseItem(); item != nil {
			parent.Children = append(parent.Children, item)
			parent.Span = parent.Span.Cover(item.Span)
		}
	}
	if p.tok.kind == until {
		p.advance()
	} else if until == tokRBrace {
		p.errorf(diag.SynUnclosedBrace, p.tok.span, "missing '}' before end of file")
	}
}

func (p *parser) parseItem() *model.Node {
	start := p.tok.span

	if p.tok.kind != tokIdent {
		p.errorf(diag.SynUnexpectedToken, p.tok.span, "unexpected token %q", p.tok.text)
		p.skipToRecovery()
		return nil
	}

	switch p.tok.text {
	case "standard", "library":
		// modifiers before a library package declaration
		p.advance()
		return p.parseItem()
	case "package":
		return p.parsePackage(start)
	case "private", "public":
		p.advance()
		return p.parseItem()
	case "import":
		return p.parseImport(start)
	case "expose":
		return p.parseExpose(start)
	case "part", "attribute", "requirement", "port", "view", "viewpoint":
		return p.parseDefOrUsage(start, p.tok.text)
	case "dependency":
		return p.parseEndpointRelation(start, model.KindDependency, "from", "to")
	case "allocate":
		return p.parseEndpointRelation(start, model.KindAllocate, "", "to")
	case "satisfy":
		return p.parseEndpointRelation(start, model.KindSatisfy, "", "by")
	case "verify":
		return p.parseEndpointRelation(start, model.KindVerify, "", "by")
	case "doc":
		return p.parseContent(start, model.KindDoc)
	case "comment":
		return p.parseContent(start, model.KindComment)
	default:
		p.errorf(diag.SynUnexpectedToken, p.tok.span, "unexpected %q at item position", p.tok.text)
		p.skipToRecovery()
		return nil
	}
}

func (p *parser) parseName() (string, bool) {
	if p.tok.kind == tokIdent || p.tok.kind == tokQuoted {
		name := p.tok.text
		p.advance()
		return name, true
	}
	p.errorf(diag.SynExpectIdentifier, p.tok.span, "expected a name, found %q", p.tok.text)
	return "", false
}

// parseQualified reads Seg(::Seg)*(::*)? and returns the textual form.
func (p *parser) parseQualified() (string, source.Span, bool) {
	start := p.tok.span
	if p.tok.kind != tokIdent && p.tok.kind != tokQuoted {
		p.errorf(diag.SynExpectIdentifier, p.tok.span, "expected a qualified name, found %q", p.tok.text)
		return "", start, false
	}
	name := p.tok.text
	span := p.tok.span
	p.advance()
	for p.tok.kind == tokDColon {
		p.advance()
		if p.tok.kind == tokStar {
			name += model.QualifiedSep + "*"
			span = span.Cover(p.tok.span)
			p.advance()
			break
		}
		if p.tok.kind != tokIdent && p.tok.kind != tokQuoted {
			p.errorf(diag.SynBadImportTarget, p.tok.span, "dangling '::' in qualified name")
			break
		}
		name += model.QualifiedSep + p.tok.text
		span = span.Cover(p.tok.span)
		p.advance()
	}
	return name, span, true
}

func (p *parser) expectSemi(context string) {
	if p.tok.kind == tokSemi {
		p.advance()
		return
	}
	p.errorf(diag.SynExpectSemicolon, p.tok.span, "expected ';' after %s", context)
	p.skipToRecovery()
}

func (p *parser) parsePackage(start source.Span) *model.Node {
	p.advance() // package
	name, ok := p.parseName()
	if !ok {
		p.skipToRecovery()
		return nil
	}
	node := &model.Node{Kind: model.KindNamespace, Name: name, Span: start.Cover(p.tok.span)}
	switch p.tok.kind {
	case tokLBrace:
		p.advance()
		p.parseItems(node, tokRBrace)
	case tokSemi:
		p.advance()
	default:
		p.errorf(diag.SynUnexpectedToken, p.tok.span, "expected '{' or ';' after package name")
		p.skipToRecovery()
	}
	return node
}

func (p *parser) parseImport(start source.Span) *model.Node {
	p.advance() // import
	target, span, ok := p.parseQualified()
	if !ok {
		p.skipToRecovery()
		return nil
	}
	node := &model.Node{Kind: model.KindImport, Name: target, Span: start.Cover(span)}
	if !model.IsWildcard(target) {
		// named imports resolve like any other reference
		node.Refs = append(node.Refs, &model.Ref{Target: target, Span: span})
	}
	p.expectSemi("import")
	return node
}

// parseExpose records which element a view makes visible. Like a named
// import, the target resolves as an ordinary reference.
func (p *parser) parseExpose(start source.Span) *model.Node {
	p.advance() // expose
	target, span, ok := p.parseQualified()
	if !ok {
		p.skipToRecovery()
		return nil
	}
	node := &model.Node{Kind: model.KindExpose, Name: target, Span: start.Cover(span)}
	if !model.IsWildcard(target) {
		node.Refs = append(node.Refs, &model.Ref{Target: target, Span: span})
	}
	p.expectSemi("expose")
	return node
}

// defKinds maps a declaration keyword to its definition and usage kinds.
var defKinds = map[string][2]model.Kind{
	"part":        {model.KindPartDef, model.KindPartUsage},
	"attribute":   {model.KindAttributeDef, model.KindAttributeUsage},
	"requirement": {model.KindRequirementDef, model.KindRequirementUsage},
	"port":        {model.KindPortDef, model.KindPortDef},
	"view":        {model.KindViewDef, model.KindViewUsage},
	"viewpoint":   {model.KindViewpointDef, model.KindViewpointUsage},
}

func (p *parser) parseDefOrUsage(start source.Span, keyword string) *model.Node {
	kinds := defKinds[keyword]
	p.advance() // keyword

	kind := kinds[1]
	if p.tok.kind == tokIdent && p.tok.text == "def" {
		kind = kinds[0]
		p.advance()
	}

	name, ok := p.parseName()
	if !ok {
		p.skipToRecovery()
		return nil
	}
	node := &model.Node{Kind: kind, Name: name, Span: start}

	// typing and specialization clauses, in any order
	clauses := true
	for clauses {
		switch {
		case p.tok.kind == tokColon || p.tok.kind == tokSpec || p.tok.kind == tokRedef:
			p.advance()
			target, span, ok := p.parseQualified()
			if !ok {
				p.skipToRecovery()
				return node
			}
			node.Refs = append(node.Refs, &model.Ref{Target: target, Span: span})
			node.Span = node.Span.Cover(span)
		case p.tok.kind == tokIdent && (p.tok.text == "subsets" || p.tok.text == "redefines" || p.tok.text == "specializes"):
			p.advance()
			target, span, ok := p.parseQualified()
			if !ok {
				p.skipToRecovery()
				return node
			}
			node.Refs = append(node.Refs, &model.Ref{Target: target, Span: span})
			node.Span = node.Span.Cover(span)
		case p.tok.kind == tokComma:
			p.advance()
		default:
			clauses = false
		}
	}

	switch p.tok.kind {
	case tokLBrace:
		p.advance()
		p.parseItems(node, tokRBrace)
	case tokSemi:
		p.advance()
	default:
		p.expectSemi(keyword + " declaration")
	}
	return node
}

// parseEndpointRelation parses relations of the shape
// keyword [intro] <ref> [link <ref>] ;
// e.g. "dependency from A to B;", "satisfy R by P;", "verify R;".
func (p *parser) parseEndpointRelation(start source.Span, kind model.Kind, intro, link string) *model.Node {
	p.advance() // keyword
	if intro != "" && p.tok.kind == tokIdent && p.tok.text == intro {
		p.advance()
	}
	first, span, ok := p.parseQualified()
	if !ok {
		p.skipToRecovery()
		return nil
	}
	node := &model.Node{Kind: kind, Span: start.Cover(span)}
	node.Refs = append(node.Refs, &model.Ref{Target: first, Span: span})

	if link != "" && p.tok.kind == tokIdent && p.tok.text == link {
		p.advance()
		second, span2, ok := p.parseQualified()
		if !ok {
			p.skipToRecovery()
			return node
		}
		node.Refs = append(node.Refs, &model.Ref{Target: second, Span: span2})
		node.Span = node.Span.Cover(span2)
	}
	p.expectSemi("relation")
	return node
}

func (p *parser) parseContent(start source.Span, kind model.Kind) *model.Node {
	p.advance() // doc / comment
	node := &model.Node{Kind: kind, Span: start}
	if p.tok.kind == tokComment {
		node.Text = p.tok.text
		node.Span = node.Span.Cover(p.tok.span)
		p.advance()
	} else {
		p.errorf(diag.SynUnexpectedToken, p.tok.span, "expected comment body after %q", kind.String())
		p.skipToRecovery()
	}
	if p.tok.kind == tokSemi {
		p.advance()
	}
	return node
}
