// Package jsonfast offers a minimal JSON object builder for small fixed schemas.
package jsonfast

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Builder appends a single flat JSON object into a reusable buffer.
// Field names are written as given and must not need escaping.
type Builder struct {
	buf   []byte
	first bool
}

// New creates a builder with initial capacity
func New(capacity int) *Builder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Builder{buf: make([]byte, 0, capacity), first: true}
}

// Reset clears the builder for reuse
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.first = true
}

// Bytes returns the underlying buffer (do not modify after use)
func (b *Builder) Bytes() []byte {
	return b.buf
}

// BeginObject starts the object
func (b *Builder) BeginObject() {
	b.buf = append(b.buf, '{')
	b.first = true
}

// EndObject closes the object
func (b *Builder) EndObject() {
	b.buf = append(b.buf, '}')
}

// AddStringField adds "name":"value" with value escaped
func (b *Builder) AddStringField(name, value string) {
	b.key(name)
	b.buf = append(b.buf, '"')
	b.escapeString(value)
	b.buf = append(b.buf, '"')
}

// AddIntField adds "name":v
func (b *Builder) AddIntField(name string, v int) {
	b.key(name)
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
}

// AddBoolField adds "name":true|false
func (b *Builder) AddBoolField(name string, v bool) {
	b.key(name)
	b.buf = strconv.AppendBool(b.buf, v)
}

// AddTimeField adds "name":"<RFC3339 UTC>"
func (b *Builder) AddTimeField(name string, t time.Time) {
	b.key(name)
	b.buf = append(b.buf, '"')
	b.buf = t.UTC().AppendFormat(b.buf, time.RFC3339)
	b.buf = append(b.buf, '"')
}

func (b *Builder) key(name string) {
	if !b.first {
		b.buf = append(b.buf, ',')
	}
	b.first = false
	b.buf = append(b.buf, '"')
	b.buf = append(b.buf, name...)
	b.buf = append(b.buf, '"', ':')
}

// escapeString writes s as JSON string content. Invalid UTF-8 becomes U+FFFD.
func (b *Builder) escapeString(s string) {
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				b.buf = append(b.buf, `\ufffd`...)
			} else {
				b.buf = append(b.buf, s[i:i+size]...)
			}
			i += size
			continue
		}

		switch c {
		case '\\', '"':
			b.buf = append(b.buf, '\\', c)
		case '\n':
			b.buf = append(b.buf, '\\', 'n')
		case '\r':
			b.buf = append(b.buf, '\\', 'r')
		case '\t':
			b.buf = append(b.buf, '\\', 't')
		default:
			if c < 0x20 {
				b.buf = append(b.buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0x0f])
			} else {
				b.buf = append(b.buf, c)
			}
		}
		i++
	}
}

const hex = "0123456789abcdef"
