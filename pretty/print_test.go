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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javelin-lang/javelin/ast"
	"github.com/javelin-lang/javelin/stdlib"
	"github.com/javelin-lang/javelin/types"
)

type testError struct{}

func (testError) Error() string {
	return "test error"
}

func TestFormatErrorMessage(t *testing.T) {

	t.Parallel()

	t.Run("plain", func(t *testing.T) {

		t.Parallel()

		require.Equal(t,
			"error: test error\n",
			FormatErrorMessage(ErrorPrefix, "test error", false),
		)
	})

	t.Run("colored", func(t *testing.T) {

		t.Parallel()

		formatted := FormatErrorMessage(ErrorPrefix, "test error", true)

		assert.Contains(t, formatted, "\x1b[")
		assert.Contains(t, formatted, "error")
		assert.Contains(t, formatted, "test error")
	})
}

func TestPrintError(t *testing.T) {

	t.Parallel()

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)

	err := printer.PrettyPrintError(testError{}, nil)
	require.NoError(t, err)

	require.Equal(t,
		"error: test error\n",
		sb.String(),
	)
}

func TestPrintErrorWithExpression(t *testing.T) {

	t.Parallel()

	expression := ast.NewMethodCall(ast.NewNullLiteral(), "f")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)

	err := printer.PrettyPrintError(testError{}, expression)
	require.NoError(t, err)

	require.Equal(t,
		"error: test error\n"+
			" --> null.f()\n",
		sb.String(),
	)
}

func TestPrintErrorWithSecondaryMessage(t *testing.T) {

	t.Parallel()

	expression := ast.NewMethodCall(ast.NewNullLiteral(), "f")

	checkErr := expression.CheckTypes()
	require.Error(t, checkErr)

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)

	err := printer.PrettyPrintError(checkErr, expression)
	require.NoError(t, err)

	require.Equal(t,
		"error: cannot invoke method `f()` on `null`\n"+
			" --> null.f()\n"+
			"  = the receiver is statically known to be null, and null has no methods\n",
		sb.String(),
	)
}

func TestPrintErrorWithNotes(t *testing.T) {

	t.Parallel()

	expression := ast.NewMethodCall(
		ast.NewVariable("p", stdlib.Point),
		"getZ",
	)

	checkErr := expression.CheckTypes()
	require.Error(t, checkErr)
	require.IsType(t, &types.NoSuchMethodError{}, checkErr)

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)

	err := printer.PrettyPrintError(checkErr, expression)
	require.NoError(t, err)

	require.Equal(t,
		"error: type `Point` has no method `getZ`\n"+
			" --> p.getZ()\n"+
			"  = did you mean `getX`?\n"+
			"  = note: the available methods are "+
			"`equals`, `getX`, `getY`, `hashCode`, `withX`, `withY`\n",
		sb.String(),
	)
}
