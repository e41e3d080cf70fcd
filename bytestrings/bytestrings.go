// Package bytestrings provides helpers for iterating over line- and
// field-oriented text without allocating.
package bytestrings

import (
	"iter"
	"strings"
	"unsafe"
)

// NextNonEmptyLine returns the next non-empty line and the remaining text.
func NextNonEmptyLine[T ~[]byte | ~string](text T) (T, T) {
	for {
		lfIndex := strings.IndexByte(*(*string)(unsafe.Pointer(&text)), '\n')
		if lfIndex == -1 {
			return text, text[len(text):]
		}
		line := text[:lfIndex]
		text = text[lfIndex+1:]
		if lfIndex == 0 {
			continue
		}
		if line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			continue
		}
		return line, text
	}
}

// NonEmptyLines returns an iterator over the non-empty lines in text.
func NonEmptyLines[T ~[]byte | ~string](text T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			var line T
			line, text = NextNonEmptyLine(text)
			if len(line) == 0 {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// CutField returns the first field of s, delimited by spaces or tabs,
// and the remainder of s after the field.
func CutField(s string) (field, rest string) {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	end := start
	for end < len(s) && s[end] != ' ' && s[end] != '\t' {
		end++
	}
	return s[start:end], s[end:]
}

// TrimTrailingComment returns s up to, but not including, the first
// occurrence of marker.
func TrimTrailingComment(s string, marker byte) string {
	if i := strings.IndexByte(s, marker); i != -1 {
		return s[:i]
	}
	return s
}
