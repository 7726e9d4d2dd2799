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

package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/javelin-lang/javelin/ast"
	"github.com/javelin-lang/javelin/declarations"
	"github.com/javelin-lang/javelin/pretty"
	"github.com/javelin-lang/javelin/stdlib"
	"github.com/javelin-lang/javelin/types"
)

const defaultMaxLineWidth = 80

func must(err error, expression ast.Expression) {
	if err == nil {
		return
	}
	printErr := pretty.NewErrorPrettyPrinter(os.Stderr, true).
		PrettyPrintError(err, expression)
	if printErr != nil {
		panic(printErr)
	}
	os.Exit(1)
}

// ExitWithError prints the given message as an error and exits.
func ExitWithError(message string) {
	println(pretty.FormatErrorMessage(pretty.ErrorPrefix, message, true))
	os.Exit(1)
}

// PrepareRegistry returns a registry with the built-in types declared,
// extended with the class declarations in the given file, if any.
func PrepareRegistry(declarationsPath string) *types.Registry {
	registry := stdlib.NewRegistry()

	if declarationsPath == "" {
		return registry
	}

	data, err := os.ReadFile(declarationsPath)
	must(err, nil)

	err = declarations.Parse(data, registry)
	must(err, nil)

	return registry
}

// PrepareExpressionFromFile reads and decodes the expression tree
// in the given file. The filename `-` reads from standard input.
// Files with the extension `.cbor` hold CBOR, everything else JSON.
func PrepareExpressionFromFile(filename string, registry *types.Registry) ast.Expression {
	var data []byte
	var err error
	if filename == "-" {
		data, err = io.ReadAll(bufio.NewReader(os.Stdin))
	} else {
		data, err = os.ReadFile(filename)
	}
	must(err, nil)

	var expression ast.Expression
	if strings.EqualFold(filepath.Ext(filename), ".cbor") {
		expression, err = ast.DecodeExpressionCBOR(data, registry)
	} else {
		expression, err = ast.DecodeExpression(data, registry)
	}
	must(err, nil)

	return expression
}

// Check decodes the expression trees in the given files and checks them.
// It prints the static type of each well-typed expression,
// and exits with an error for the first ill-typed one.
func Check(args []string) {
	flagSet := flag.NewFlagSet("check", flag.ExitOnError)
	declarationsPath := flagSet.String("types", "", "path to a YAML file with additional class declarations")
	_ = flagSet.Parse(args)

	registry := PrepareRegistry(*declarationsPath)

	filenames := flagSet.Args()
	if len(filenames) == 0 {
		filenames = []string{"-"}
	}

	for _, filename := range filenames {
		expression := PrepareExpressionFromFile(filename, registry)

		must(expression.CheckTypes(), expression)

		fmt.Printf("%s: %s\n", filename, expression.StaticType())
	}
}

// Format decodes the expression trees in the given files
// and prints them formatted.
func Format(args []string) {
	flagSet := flag.NewFlagSet("fmt", flag.ExitOnError)
	declarationsPath := flagSet.String("types", "", "path to a YAML file with additional class declarations")
	maxLineWidth := flagSet.Int("width", defaultMaxLineWidth, "maximum line width")
	_ = flagSet.Parse(args)

	registry := PrepareRegistry(*declarationsPath)

	filenames := flagSet.Args()
	if len(filenames) == 0 {
		filenames = []string{"-"}
	}

	for _, filename := range filenames {
		expression := PrepareExpressionFromFile(filename, registry)

		var builder strings.Builder
		prettier.Prettier(&builder, expression.Doc(), *maxLineWidth, "    ")

		fmt.Println(builder.String())
	}
}
