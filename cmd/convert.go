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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/javelin-lang/javelin/ast"
)

// Convert decodes the expression trees in the given files and
// re-encodes them to standard output in the requested encoding.
// JSON output is pretty-printed; CBOR output is raw bytes.
func Convert(args []string) {
	flagSet := flag.NewFlagSet("convert", flag.ExitOnError)
	declarationsPath := flagSet.String("types", "", "path to a YAML file with additional class declarations")
	to := flagSet.String("to", "json", "output encoding (json or cbor)")
	_ = flagSet.Parse(args)

	registry := PrepareRegistry(*declarationsPath)

	filenames := flagSet.Args()
	if len(filenames) == 0 {
		filenames = []string{"-"}
	}

	for _, filename := range filenames {
		expression := PrepareExpressionFromFile(filename, registry)

		var encoded []byte
		var err error

		switch *to {
		case "json":
			encoded, err = json.Marshal(expression)
			if err == nil {
				encoded = pretty.Pretty(encoded)
			}

		case "cbor":
			encoded, err = ast.EncodeExpressionCBOR(expression)

		default:
			ExitWithError(fmt.Sprintf("unsupported encoding: %s", *to))
		}

		must(err, expression)

		_, err = os.Stdout.Write(encoded)
		must(err, nil)
	}
}
