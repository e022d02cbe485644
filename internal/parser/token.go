package parser

import (
	"unicode"
	"unicode/utf8"

	"sysmltool/internal/source"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokQuoted  // 'some name'
	tokLBrace  // {
	tokRBrace  // }
	tokSemi    // ;
	tokColon   // :
	tokSpec    // :>
	tokRedef   // :>>
	tokDColon  // ::
	tokStar    // *
	tokComma   // ,
	tokComment // /* ... */ body, surfaced only after doc/comment keywords
	tokOther
)

type token struct {
	kind tokKind
	text string
	span source.Span
}

type scanner struct {
	file    source.FileID
	content []byte
	pos     uint32
}

func newScanner(file source.FileID, content []byte) *scanner {
	return &scanner{file: file, content: content}
}

func (s *scanner) span(start uint32) source.Span {
	return source.Span{File: s.file, Start: start, End: s.pos}
}

func (s *scanner) peekByte() (byte, bool) {
	if int(s.pos) >= len(s.content) {
		return 0, false
	}
	return s.content[s.pos], true
}

func (s *scanner) skipSpaceAndLineComments() {
	for {
		b, ok := s.peekByte()
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			s.pos++
		case b == '/' && int(s.pos)+1 < len(s.content) && s.content[s.pos+1] == '/':
			for int(s.pos) < len(s.content) && s.content[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *scanner) next() token {
	s.skipSpaceAndLineComments()
	start := s.pos
	b, ok := s.peekByte()
	if !ok {
		return token{kind: tokEOF, span: s.span(start)}
	}

	switch b {
	case '{':
		s.pos++
		return token{kind: tokLBrace, text: "{", span: s.span(start)}
	case '}':
		s.pos++
		return token{kind: tokRBrace, text: "}", span: s.span(start)}
	case ';':
		s.pos++
		return token{kind: tokSemi, text: ";", span: s.span(start)}
	case ',':
		s.pos++
		return token{kind: tokComma, text: ",", span: s.span(start)}
	case '*':
		s.pos++
		return token{kind: tokStar, text: "*", span: s.span(start)}
	case ':':
		s.pos++
		if b2, ok := s.peekByte(); ok && b2 == ':' {
			s.pos++
			return token{kind: tokDColon, text: "::", span: s.span(start)}
		}
		if b2, ok := s.peekByte(); ok && b2 == '>' {
			s.pos++
			if b3, ok := s.peekByte(); ok && b3 == '>' {
				s.pos++
				return token{kind: tokRedef, text: ":>>", span: s.span(start)}
			}
			return token{kind: tokSpec, text: ":>", span: s.span(start)}
		}
		return token{kind: tokColon, text: ":", span: s.span(start)}
	case '\'':
		s.pos++
		nameStart := s.pos
		for int(s.pos) < len(s.content) && s.content[s.pos] != '\'' && s.content[s.pos] != '\n' {
			s.pos++
		}
		text := string(s.content[nameStart:s.pos])
		if b2, ok := s.peekByte(); ok && b2 == '\'' {
			s.pos++
		}
		return token{kind: tokQuoted, text: text, span: s.span(start)}
	case '/':
		if int(s.pos)+1 < len(s.content) && s.content[s.pos+1] == '*' {
			s.pos += 2
			bodyStart := s.pos
			for int(s.pos)+1 < len(s.content) {
				if s.content[s.pos] == '*' && s.content[s.pos+1] == '/' {
					body := string(s.content[bodyStart:s.pos])
					s.pos += 2
					return token{kind: tokComment, text: body, span: s.span(start)}
				}
				s.pos++
			}
			s.pos = uint32(len(s.content))
			return token{kind: tokComment, text: string(s.content[bodyStart:]), span: s.span(start)}
		}
	}

	r, size := utf8.DecodeRune(s.content[s.pos:])
	if isIdentStart(r) {
		s.pos += uint32(size)
		for int(s.pos) < len(s.content) {
			r, size = utf8.DecodeRune(s.content[s.pos:])
			if !isIdentPart(r) {
				break
			}
			s.pos += uint32(size)
		}
		return token{kind: tokIdent, text: string(s.content[start:s.pos]), span: s.span(start)}
	}

	s.pos += uint32(size)
	return token{kind: tokOther, text: string(s.content[start:s.pos]), span: s.span(start)}
}
