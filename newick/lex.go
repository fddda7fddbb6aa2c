package newick

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendantsStart
	itemDescendantsEnd
	itemDelimiter
	itemLabel
	itemLength
)

const (
	eof           = -1
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	lengthStart   = ':'
	commentStart  = '['
	commentEnd    = ']'
)

const unquoteBanned = " ()[]':;,"

const lengthRunes = "0123456789+-.eE"

type stateFn func(lx *lexer) stateFn

// lexer is a state machine in the style of text/template's lexer. States
// emit items into a small buffered channel; the parser pulls items with
// nextItem, which runs states until an item is available.
type lexer struct {
	input io.Reader
	buf   string
	start int
	pos   int
	width int
	line  int
	state stateFn
	items chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func lex(input io.Reader) *lexer {
	return &lexer{
		input: bufio.NewReader(input),
		state: lexTokens,
		line:  1,
		items: make(chan item, 4),
	}
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil { // lexing stopped after EOF or an error
				return item{itemEOF, "", lx.line}
			}
			lx.state = lx.state(lx)
		}
	}
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.emitValue(typ, lx.current())
}

// emitValue sends an item with an explicit value and drops the consumed
// input from the buffer.
func (lx *lexer) emitValue(typ itemType, val string) {
	lx.items <- item{typ, val, lx.line}
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

// fill reads the next chunk of input into the buffer. It returns false if
// no more input is available.
func (lx *lexer) fill() bool {
	chunk := make([]byte, 4096)
	for {
		n, err := lx.input.Read(chunk)
		if n > 0 {
			lx.buf += string(chunk[:n])
			return true
		}
		if err != nil {
			return false
		}
	}
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.buf) && !lx.fill() {
		lx.width = 0
		return eof
	}
	for !utf8.FullRuneInString(lx.buf[lx.pos:]) && lx.fill() {
		// rune split across chunks
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	if r == '\n' {
		lx.line++
	}
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.width > 0 && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
	lx.width = 0
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
// Callers pass runes through escapeSpecial.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return nil
}

func lexTokens(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		lx.ignore()
		return lexTokens
	}
	switch r {
	case eof:
		lx.emit(itemEOF)
		return nil
	case descStart:
		lx.emit(itemDescendantsStart)
	case descEnd:
		lx.emit(itemDescendantsEnd)
	case descDelimiter:
		lx.emit(itemDelimiter)
	case terminal:
		lx.emit(itemTerminal)
	case lengthStart:
		lx.ignore()
		return lexLength
	case quote:
		lx.ignore()
		return lexQuoted
	case commentStart:
		return lexComment
	case commentEnd:
		return lx.errorf("unexpected '%c' outside of a comment", r)
	default:
		lx.backup()
		return lexLabel
	}
	return lexTokens
}

func lexLabel(lx *lexer) stateFn {
	for {
		r := lx.next()
		if r == eof || isBlank(r) || isNL(r) || strings.ContainsRune(unquoteBanned, r) {
			lx.backup()
			lx.emit(itemLabel)
			return lexTokens
		}
	}
}

func lexQuoted(lx *lexer) stateFn {
	var label strings.Builder
	for {
		r := lx.next()
		switch r {
		case eof:
			return lx.errorf("unterminated quoted label")
		case quote:
			if lx.peek() != quote {
				lx.emitValue(itemLabel, label.String())
				return lexTokens
			}
			lx.next() // '' is an escaped quote
		}
		label.WriteRune(r)
	}
}

func lexComment(lx *lexer) stateFn {
	for {
		switch lx.next() {
		case eof:
			return lx.errorf("unterminated comment")
		case commentEnd:
			lx.ignore()
			return lexTokens
		}
	}
}

func lexLength(lx *lexer) stateFn {
	for r := lx.next(); isBlank(r); r = lx.next() {
		lx.ignore()
	}
	lx.backup()
	for strings.ContainsRune(lengthRunes, lx.next()) {
	}
	lx.backup()
	if lx.pos == lx.start {
		return lx.errorf("expected a branch length after '%c', got '%s'", lengthStart, escapeSpecial(lx.peek()))
	}
	lx.emit(itemLength)
	return lexTokens
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "error"
	case itemEOF:
		return "end of input"
	case itemTerminal:
		return "terminal ';'"
	case itemDescendantsStart:
		return "'('"
	case itemDescendantsEnd:
		return "')'"
	case itemDelimiter:
		return "','"
	case itemLabel:
		return "label"
	case itemLength:
		return "branch length"
	}
	panic(fmt.Sprintf("BUG: unknown item type %d", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %q)", item.typ, item.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case eof:
		return "EOF"
	}
	return string(c)
}
