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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/javelin-lang/javelin/ast"
	"github.com/javelin-lang/javelin/pretty"
	"github.com/javelin-lang/javelin/types"
)

// expressionKinds are the values of the "Type" field of an encoded
// expression, offered as completions.
var expressionKinds = []string{
	"Variable",
	"Literal",
	"NullLiteral",
	"MethodCall",
	"ConstructorCall",
}

// RunREPL reads one JSON-encoded expression per line, checks it,
// and prints its static type, or a pretty-printed error.
func RunREPL(args []string) {
	flagSet := flag.NewFlagSet("repl", flag.ExitOnError)
	declarationsPath := flagSet.String("types", "", "path to a YAML file with additional class declarations")
	_ = flagSet.Parse(args)

	registry := PrepareRegistry(*declarationsPath)

	printReplWelcome()

	errorPrettyPrinter := pretty.NewErrorPrettyPrinter(os.Stderr, true)

	printError := func(err error, expression ast.Expression) {
		printErr := errorPrettyPrinter.PrettyPrintError(err, expression)
		if printErr != nil {
			panic(printErr)
		}
	}

	executor := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		if strings.HasPrefix(line, ".") {
			handleCommand(line, registry)
			return
		}

		expression, err := ast.DecodeExpression([]byte(line), registry)
		if err != nil {
			printError(err, nil)
			return
		}

		if err := expression.CheckTypes(); err != nil {
			printError(err, expression)
			return
		}

		fmt.Printf(
			"%s: %s\n",
			expression,
			colorizeResult(expression.StaticType()),
		)
	}

	suggest := func(d prompt.Document) []prompt.Suggest {
		if len(d.GetWordBeforeCursor()) == 0 {
			return nil
		}

		suggests := []prompt.Suggest{}

		for _, kind := range expressionKinds {
			suggests = append(suggests, prompt.Suggest{
				Text:        kind,
				Description: "expression kind",
			})
		}

		for _, name := range registry.Names() {
			suggests = append(suggests, prompt.Suggest{
				Text:        name,
				Description: "type",
			})
		}

		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), false)
	}

	options := []prompt.Option{
		prompt.OptionPrefix("> "),
	}
	prompt.New(executor, suggest, options...).Run()
}

const replHelpMessage = `
Enter a JSON-encoded expression to check it.
Commands are prefixed with a dot. Valid commands are:

.exit     Exit the REPL
.help     Print this help message
.types    List the declared types

Press ^C to abort the current line, ^D to exit`

const replAssistanceMessage = `Type '.help' for assistance.`

func handleCommand(command string, registry *types.Registry) {
	switch command {
	case ".exit":
		os.Exit(0)
	case ".help":
		fmt.Println(replHelpMessage)
	case ".types":
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
	default:
		fmt.Println(colorizeError(fmt.Sprintf("Unknown command. %s", replAssistanceMessage)))
	}
}

func printReplWelcome() {
	fmt.Printf("Welcome to Javelin!\n%s\n\n", replAssistanceMessage)
}
