// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package sig

import (
	"strconv"
	"strings"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
)

// scanner is a backtracking lexeme scanner over one signature line. Every
// matching primitive consumes trailing whitespace on success and leaves the
// position unchanged on failure, so grammar rules never account for
// inter-token spacing and alternation can retry other branches at the same
// offset.
//
// Failed expectations are recorded at the farthest offset reached so that an
// overall parse failure reports one absolute position with everything that
// was acceptable there.
type scanner struct {
	src string
	pos int

	failPos  int
	failCode string
	expected []string
}

func newScanner(src string) *scanner {
	s := &scanner{src: src, failPos: -1}
	s.skipSpace()
	return s
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos = s.pos + 1
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) mark() int {
	return s.pos
}

func (s *scanner) reset(pos int) {
	s.pos = pos
}

// fail records a failed expectation at the current position. Expectations at
// earlier positions than the farthest failure are discarded. At equal
// positions, a non-lexical code takes precedence over a lexical one.
func (s *scanner) fail(code string, expected string) {
	if s.pos > s.failPos {
		s.failPos = s.pos
		s.failCode = code
		s.expected = s.expected[:0]
	}
	if s.pos == s.failPos {
		if s.failCode == exc.CodeLexicalMismatch && code != exc.CodeLexicalMismatch {
			s.failCode = code
		}
		for _, e := range s.expected {
			if e == expected {
				return
			}
		}
		s.expected = append(s.expected, expected)
	}
}

// err converts the recorded farthest failure into an Exception. The line is
// always 1: the scanner only ever sees a single signature line.
func (s *scanner) err(uri string) exc.Exception {
	pos := s.failPos
	code := s.failCode
	if pos < 0 {
		pos = s.pos
		code = exc.CodeLexicalMismatch
	}
	if pos >= len(s.src) && code == exc.CodeLexicalMismatch {
		code = exc.CodeUnexpectedEOF
	}
	msg := "no alternative matched"
	if len(s.expected) > 0 {
		msg = "no alternative matched: expected " + strings.Join(s.expected, " or ")
	}
	return exc.New(exc.Location{
		URI:      uri,
		Location: decl.Location{Line: 1, Column: int32(pos) + 1, Offset: int64(pos)},
	}, code, msg)
}

func (s *scanner) match(tok string, code string) bool {
	if !strings.HasPrefix(s.src[s.pos:], tok) {
		s.fail(code, strconv.Quote(tok))
		return false
	}
	s.pos = s.pos + len(tok)
	s.skipSpace()
	return true
}

// literal matches one exact token spelling. There is deliberately no word
// boundary check: callers order longer spellings before their prefixes, and
// that ordering is the disambiguation mechanism.
func (s *scanner) literal(tok string) bool {
	return s.match(tok, exc.CodeLexicalMismatch)
}

// closer matches a closing delimiter after a construct has been committed to,
// so its failure is recorded as an unterminated construct.
func (s *scanner) closer(tok string) bool {
	return s.match(tok, exc.CodeUnterminatedConstruct)
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isIdentRest admits ':', '<' and '>' so that qualified and templated tokens
// read as one identifier.
func isIdentRest(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == ':' || c == '<' || c == '>'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) identifier() (string, bool) {
	if s.eof() || !isIdentStart(s.src[s.pos]) {
		s.fail(exc.CodeLexicalMismatch, "identifier")
		return "", false
	}
	start := s.pos
	s.pos = s.pos + 1
	for s.pos < len(s.src) && isIdentRest(s.src[s.pos]) {
		s.pos = s.pos + 1
	}
	id := s.src[start:s.pos]
	s.skipSpace()
	return id, true
}

func (s *scanner) unsigned() (int64, bool) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos = s.pos + 1
	}
	if s.pos == start {
		s.fail(exc.CodeLexicalMismatch, "integer")
		return 0, false
	}
	v, err := strconv.ParseInt(s.src[start:s.pos], 10, 64)
	if err != nil {
		s.reset(start)
		s.fail(exc.CodeInvalidNumber, "integer")
		return 0, false
	}
	s.skipSpace()
	return v, true
}

func (s *scanner) signedInt() (int64, bool) {
	start := s.pos
	if s.pos < len(s.src) && s.src[s.pos] == '-' {
		s.pos = s.pos + 1
	}
	digits := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos = s.pos + 1
	}
	if s.pos == digits {
		s.reset(start)
		s.fail(exc.CodeLexicalMismatch, "integer")
		return 0, false
	}
	v, err := strconv.ParseInt(s.src[start:s.pos], 10, 64)
	if err != nil {
		s.reset(start)
		s.fail(exc.CodeInvalidNumber, "integer")
		return 0, false
	}
	s.skipSpace()
	return v, true
}

// float matches a floating point literal with a fractional part, an exponent,
// or both. A bare integer does not match; the default-value grammar relies on
// that to fall through to the integer branch.
func (s *scanner) float() (float64, bool) {
	start := s.pos
	p := s.pos
	if p < len(s.src) && s.src[p] == '-' {
		p = p + 1
	}
	digits := p
	for p < len(s.src) && isDigit(s.src[p]) {
		p = p + 1
	}
	if p == digits {
		s.fail(exc.CodeLexicalMismatch, "floating point literal")
		return 0, false
	}
	isFloat := false
	if p < len(s.src) && s.src[p] == '.' {
		p = p + 1
		for p < len(s.src) && isDigit(s.src[p]) {
			p = p + 1
		}
		isFloat = true
	}
	if p < len(s.src) && (s.src[p] == 'e' || s.src[p] == 'E') {
		q := p + 1
		if q < len(s.src) && (s.src[q] == '+' || s.src[q] == '-') {
			q = q + 1
		}
		expDigits := q
		for q < len(s.src) && isDigit(s.src[q]) {
			q = q + 1
		}
		if q > expDigits {
			p = q
			isFloat = true
		}
	}
	if !isFloat {
		s.fail(exc.CodeLexicalMismatch, "floating point literal")
		return 0, false
	}
	v, err := strconv.ParseFloat(s.src[start:p], 64)
	if err != nil {
		s.fail(exc.CodeInvalidNumber, "floating point literal")
		return 0, false
	}
	s.pos = p
	s.skipSpace()
	return v, true
}
