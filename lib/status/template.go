// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package status

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultTemplate is the status template used when NINJA_STATUS is
// unset.
const DefaultTemplate = "[%f/%t] "

// FormatError reports a status template that cannot be expanded.
type FormatError struct {
	// Template is the complete template text.
	Template string

	// Placeholder is the character following the offending "%", or
	// empty when the template ends with a lone "%".
	Placeholder string

	// Offset is the byte offset of the "%" in Template.
	Offset int
}

func (err *FormatError) Error() string {
	if err.Placeholder == "" {
		return fmt.Sprintf("status template %q: lone %% at end of template", err.Template)
	}
	return fmt.Sprintf("status template %q: unknown placeholder %%%s at offset %d", err.Template, err.Placeholder, err.Offset)
}

// Snapshot is the render state a template expands against.
type Snapshot struct {
	Total    int
	Started  int
	Running  int
	Finished int

	// TimeMillis is the timestamp of the most recent edge event, in
	// milliseconds since the build started.
	TimeMillis int64
}

// segment is either literal text or a single placeholder character.
type segment struct {
	literal     string
	placeholder byte
}

// Template is a parsed status template. The zero value expands to the
// empty string.
type Template struct {
	source   string
	segments []segment
}

// ParseTemplate validates and compiles a status template:
//
//	%s  started edges
//	%t  total edges
//	%r  running edges
//	%u  edges not yet started
//	%f  finished edges
//	%o  overall finish rate, edges per second
//	%c  current finish rate over the sliding window
//	%p  percentage of edges finished
//	%e  elapsed seconds
//	%%  a literal percent sign
//
// Any other character after "%" is a [FormatError].
func ParseTemplate(source string) (*Template, error) {
	template := &Template{source: source}
	var literal strings.Builder
	for index := 0; index < len(source); index++ {
		if source[index] != '%' {
			literal.WriteByte(source[index])
			continue
		}
		if index+1 == len(source) {
			return nil, &FormatError{Template: source, Offset: index}
		}
		next := source[index+1]
		switch next {
		case '%':
			literal.WriteByte('%')
		case 's', 't', 'r', 'u', 'f', 'o', 'c', 'p', 'e':
			if literal.Len() > 0 {
				template.segments = append(template.segments, segment{literal: literal.String()})
				literal.Reset()
			}
			template.segments = append(template.segments, segment{placeholder: next})
		default:
			placeholder, _ := utf8.DecodeRuneInString(source[index+1:])
			return nil, &FormatError{Template: source, Placeholder: string(placeholder), Offset: index}
		}
		index++
	}
	if literal.Len() > 0 {
		template.segments = append(template.segments, segment{literal: literal.String()})
	}
	return template, nil
}

// String returns the template source.
func (template *Template) String() string { return template.source }

// Expand renders the template. A %c placeholder feeds the current
// sample (keyed by the finished count) into rate before reading it;
// rate may be nil when the template has no %c.
func (template *Template) Expand(snapshot Snapshot, rate *SlidingRate) string {
	var builder strings.Builder
	for _, part := range template.segments {
		if part.placeholder == 0 {
			builder.WriteString(part.literal)
			continue
		}
		switch part.placeholder {
		case 's':
			builder.WriteString(strconv.Itoa(snapshot.Started))
		case 't':
			builder.WriteString(strconv.Itoa(snapshot.Total))
		case 'r':
			builder.WriteString(strconv.Itoa(snapshot.Running))
		case 'u':
			builder.WriteString(strconv.Itoa(snapshot.Total - snapshot.Started))
		case 'f':
			builder.WriteString(strconv.Itoa(snapshot.Finished))
		case 'o':
			if snapshot.TimeMillis <= 0 {
				builder.WriteByte('?')
				break
			}
			overall := float64(snapshot.Finished) / (float64(snapshot.TimeMillis) / 1e3)
			builder.WriteString(strconv.FormatFloat(overall, 'f', 1, 64))
		case 'c':
			if rate == nil {
				builder.WriteByte('?')
				break
			}
			rate.Update(snapshot.Finished, snapshot.TimeMillis)
			current, defined := rate.Rate()
			if !defined {
				builder.WriteByte('?')
				break
			}
			builder.WriteString(strconv.FormatFloat(current, 'f', 1, 64))
		case 'p':
			percent := 0
			if snapshot.Total > 0 {
				percent = 100 * snapshot.Finished / snapshot.Total
			}
			fmt.Fprintf(&builder, "%3d%%", percent)
		case 'e':
			builder.WriteString(strconv.FormatFloat(float64(snapshot.TimeMillis)/1e3, 'f', 3, 64))
		}
	}
	return builder.String()
}
