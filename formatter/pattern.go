package formatter

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidPattern is returned by Compile for malformed patterns.
var ErrInvalidPattern = errors.New("invalid log pattern")

// DefaultPattern renders [timestamp][logger][level][file:line] message,
// coloured by level on terminals.
const DefaultPattern = "%^[%Y-%m-%d %H:%M:%S.%e][%n][%-5!l][%g:%#] %v%$"

type align uint8

const (
	alignRight align = iota
	alignLeft
	alignCenter
)

const (
	kindLiteral  byte = 0
	kindColorOn  byte = '^'
	kindColorOff byte = '$'
)

// knownFlags lists every placeholder letter Compile accepts
const knownFlags = "vnlLYymdHIMSefFpzEaAbBDTcPsg#!@"

type item struct {
	kind     byte // placeholder letter, or kindLiteral
	literal  string
	width    int
	align    align
	truncate bool
}

// Pattern is a compiled pattern string. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source        string
	items         []item
	needsLocation bool
	hasColor      bool
}

// MustCompile is like Compile but panics on error
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile parses an spdlog-style pattern. Unknown placeholders and
// dangling % signs are reported as ErrInvalidPattern.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{source: pattern}
	var lit []byte

	flushLiteral := func() {
		if len(lit) > 0 {
			p.items = append(p.items, item{kind: kindLiteral, literal: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			lit = append(lit, c)
			continue
		}

		start := i
		i++
		if i >= len(pattern) {
			return nil, fmt.Errorf("%w: trailing %% at offset %d", ErrInvalidPattern, start)
		}
		if pattern[i] == '%' {
			lit = append(lit, '%')
			continue
		}

		it := item{}
		switch pattern[i] {
		case '-':
			it.align = alignLeft
			i++
		case '=':
			it.align = alignCenter
			i++
		}
		for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
			it.width = it.width*10 + int(pattern[i]-'0')
			if it.width > 128 {
				return nil, fmt.Errorf("%w: width too large at offset %d", ErrInvalidPattern, start)
			}
			i++
		}
		if i < len(pattern) && pattern[i] == '!' && it.width > 0 {
			it.truncate = true
			i++
		}
		if i >= len(pattern) {
			return nil, fmt.Errorf("%w: incomplete placeholder at offset %d", ErrInvalidPattern, start)
		}

		flag := pattern[i]
		switch {
		case flag == '^' || flag == '$':
			flushLiteral()
			p.items = append(p.items, item{kind: flag})
			p.hasColor = true
			continue
		case strings.IndexByte(knownFlags, flag) < 0:
			return nil, fmt.Errorf("%w: unknown placeholder %q at offset %d", ErrInvalidPattern, pattern[start:i+1], start)
		}

		flushLiteral()
		it.kind = flag
		switch flag {
		case 's', 'g', '#', '!', '@':
			p.needsLocation = true
		}
		p.items = append(p.items, it)
	}
	flushLiteral()

	return p, nil
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.source
}

// NeedsLocation reports whether the pattern references the call site,
// letting callers skip runtime.Caller when it would not be rendered.
func (p *Pattern) NeedsLocation() bool {
	return p.needsLocation
}

// HasColor reports whether the pattern contains a colour range
func (p *Pattern) HasColor() bool {
	return p.hasColor
}

var pid = os.Getpid()

// Append renders r into dst and returns the extended slice. Colour
// escape codes are only emitted when color is true.
func (p *Pattern) Append(dst []byte, r *Record, color bool) []byte {
	colorOpen := false
	for i := range p.items {
		it := &p.items[i]
		switch it.kind {
		case kindLiteral:
			dst = append(dst, it.literal...)
		case kindColorOn:
			if color && !colorOpen {
				dst = append(dst, levelColor(r.Level)...)
				colorOpen = true
			}
		case kindColorOff:
			if colorOpen {
				dst = append(dst, colorReset...)
				colorOpen = false
			}
		default:
			start := len(dst)
			dst = appendValue(dst, it.kind, r)
			if it.width > 0 {
				dst = pad(dst, start, it)
			}
		}
	}
	if colorOpen {
		dst = append(dst, colorReset...)
	}
	return dst
}

func appendValue(dst []byte, flag byte, r *Record) []byte {
	t := r.Time
	switch flag {
	case 'v':
		return append(dst, r.Message...)
	case 'n':
		return append(dst, r.Logger...)
	case 'l':
		return append(dst, r.Level.String()...)
	case 'L':
		return append(dst, r.Level.ShortString()...)
	case 'Y':
		return appendInt(dst, t.Year(), 4)
	case 'y':
		return appendInt(dst, t.Year()%100, 2)
	case 'm':
		return appendInt(dst, int(t.Month()), 2)
	case 'd':
		return appendInt(dst, t.Day(), 2)
	case 'H':
		return appendInt(dst, t.Hour(), 2)
	case 'I':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return appendInt(dst, h, 2)
	case 'M':
		return appendInt(dst, t.Minute(), 2)
	case 'S':
		return appendInt(dst, t.Second(), 2)
	case 'e':
		return appendInt(dst, t.Nanosecond()/1e6, 3)
	case 'f':
		return appendInt(dst, t.Nanosecond()/1e3, 6)
	case 'F':
		return appendInt(dst, t.Nanosecond(), 9)
	case 'p':
		if t.Hour() < 12 {
			return append(dst, "AM"...)
		}
		return append(dst, "PM"...)
	case 'z':
		return t.AppendFormat(dst, "-07:00")
	case 'E':
		return strconv.AppendInt(dst, t.Unix(), 10)
	case 'a':
		return t.AppendFormat(dst, "Mon")
	case 'A':
		return t.AppendFormat(dst, "Monday")
	case 'b':
		return t.AppendFormat(dst, "Jan")
	case 'B':
		return t.AppendFormat(dst, "January")
	case 'D':
		return t.AppendFormat(dst, "01/02/06")
	case 'T':
		return t.AppendFormat(dst, "15:04:05")
	case 'c':
		return t.AppendFormat(dst, "Mon Jan 2 15:04:05 2006")
	case 'P':
		return strconv.AppendInt(dst, int64(pid), 10)
	case 's':
		return append(dst, r.Location.ShortFile()...)
	case 'g':
		return append(dst, r.Location.File...)
	case '#':
		if !r.Location.Defined {
			return dst
		}
		return strconv.AppendInt(dst, int64(r.Location.Line), 10)
	case '!':
		return append(dst, r.Location.ShortFunction()...)
	case '@':
		if !r.Location.Defined {
			return dst
		}
		dst = append(dst, r.Location.ShortFile()...)
		dst = append(dst, ':')
		return strconv.AppendInt(dst, int64(r.Location.Line), 10)
	}
	return dst
}

// appendInt appends v zero-padded to width digits
func appendInt(dst []byte, v, width int) []byte {
	var tmp [20]byte
	b := strconv.AppendInt(tmp[:0], int64(v), 10)
	for n := len(b); n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, b...)
}

// pad aligns dst[start:] to the item's width, truncating when asked
func pad(dst []byte, start int, it *item) []byte {
	n := utf8.RuneCount(dst[start:])
	if n > it.width {
		if !it.truncate {
			return dst
		}
		cut := start
		for k := 0; k < it.width; k++ {
			_, size := utf8.DecodeRune(dst[cut:])
			cut += size
		}
		return dst[:cut]
	}

	missing := it.width - n
	if missing == 0 {
		return dst
	}

	var left, right int
	switch it.align {
	case alignLeft:
		right = missing
	case alignCenter:
		left = missing / 2
		right = missing - left
	default:
		left = missing
	}

	if left > 0 {
		end := len(dst)
		for k := 0; k < left; k++ {
			dst = append(dst, ' ')
		}
		copy(dst[start+left:], dst[start:end])
		for k := 0; k < left; k++ {
			dst[start+k] = ' '
		}
	}
	for k := 0; k < right; k++ {
		dst = append(dst, ' ')
	}
	return dst
}
