package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// FormatCompact returns a compact single-line error format.
func (e *StoreError) FormatCompact() string {
	var b strings.Builder

	if e.Store != "" {
		b.WriteString(e.Store)
		b.WriteString(": ")
	}
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	return b.String()
}

// Format returns a multi-line message for terminal display.
func (e *StoreError) Format() string {
	var b strings.Builder

	b.WriteString("ERROR ")
	b.WriteString(e.FormatCompact())
	b.WriteString("\n")

	if e.Wrapped != nil {
		b.WriteString("  cause: ")
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n")
	}
	for _, line := range wrapText(e.Detail, 70) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// Print writes a formatted error to w.
func Print(w io.Writer, err error) {
	var se *StoreError
	if errors.As(err, &se) {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "ERROR: %s\n", err.Error())
}
