/*
 * Javelin - The statically checked object-oriented expression language
 *
 * Copyright Javelin Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pretty

import (
	"io"
	"strings"

	"github.com/javelin-lang/javelin/ast"
	"github.com/javelin-lang/javelin/errors"
)

// ErrorPrefix is the prefix of all rendered error messages.
const ErrorPrefix = "error"

const (
	excerptArrow     = " --> "
	subMessageIndent = "  = "
	notePrefix       = "note: "
)

// FormatErrorMessage formats the given message as an error message,
// e.g. `error: type X has no method y`, optionally with color.
func FormatErrorMessage(prefix string, message string, useColor bool) string {
	var builder strings.Builder

	if useColor {
		builder.WriteString(colorizeError(prefix))
	} else {
		builder.WriteString(prefix)
	}

	builder.WriteString(": ")

	if useColor {
		builder.WriteString(colorizeMessage(message))
	} else {
		builder.WriteString(message)
	}

	builder.WriteByte('\n')

	return builder.String()
}

// ErrorPrettyPrinter renders checking errors for terminal output:
// the primary message, the expression that was being checked,
// a secondary message if the error provides one, and any notes.
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p ErrorPrettyPrinter) writeString(str string) error {
	_, err := io.WriteString(p.writer, str)
	return err
}

// PrettyPrintError writes a human-readable rendering of the given error.
// The expression is the expression that was being checked when the error
// was reported, and may be nil.
func (p ErrorPrettyPrinter) PrettyPrintError(err error, expression ast.Expression) error {
	writeErr := p.writeString(FormatErrorMessage(ErrorPrefix, err.Error(), p.useColor))
	if writeErr != nil {
		return writeErr
	}

	if expression != nil {
		writeErr = p.printExpression(expression)
		if writeErr != nil {
			return writeErr
		}
	}

	if secondaryError, ok := err.(errors.SecondaryError); ok {
		writeErr = p.printSubMessage(secondaryError.SecondaryError())
		if writeErr != nil {
			return writeErr
		}
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range errorNotes.ErrorNotes() {
			writeErr = p.printNote(note.Message())
			if writeErr != nil {
				return writeErr
			}
		}
	}

	return nil
}

func (p ErrorPrettyPrinter) printExpression(expression ast.Expression) error {
	arrow := excerptArrow
	if p.useColor {
		arrow = colorizeMeta(arrow)
	}
	return p.writeString(arrow + expression.String() + "\n")
}

func (p ErrorPrettyPrinter) printSubMessage(message string) error {
	indent := subMessageIndent
	if p.useColor {
		indent = colorizeMeta(indent)
	}
	return p.writeString(indent + message + "\n")
}

func (p ErrorPrettyPrinter) printNote(message string) error {
	prefix := notePrefix
	if p.useColor {
		prefix = colorizeNote(prefix)
	}
	return p.printSubMessage(prefix + message)
}
