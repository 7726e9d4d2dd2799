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

package ast

import (
	"encoding/json"

	"github.com/javelin-lang/javelin/errors"
	"github.com/javelin-lang/javelin/types"
)

// DecodeExpression decodes the JSON representation of an expression,
// the format produced by the nodes' MarshalJSON implementations.
// Type references are names and are resolved through the given
// registry.
func DecodeExpression(data []byte, registry *types.Registry) (Expression, error) {
	var decoded struct {
		Type             string
		Name             string
		DeclaredType     string
		Value            string
		ValueType        string
		Receiver         json.RawMessage
		MethodName       string
		Arguments        []json.RawMessage
		InstantiatedType string
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, errors.NewDefaultUserError("invalid expression: %w", err)
	}

	switch decoded.Type {
	case "Variable":
		declaredType, err := registry.Lookup(decoded.DeclaredType)
		if err != nil {
			return nil, err
		}
		return NewVariable(decoded.Name, declaredType), nil

	case "Literal":
		valueType, err := registry.Lookup(decoded.ValueType)
		if err != nil {
			return nil, err
		}
		return NewLiteral(decoded.Value, valueType), nil

	case "NullLiteral":
		return NewNullLiteral(), nil

	case "MethodCall":
		if len(decoded.Receiver) == 0 {
			return nil, errors.NewDefaultUserError("method call without a receiver")
		}
		receiver, err := DecodeExpression(decoded.Receiver, registry)
		if err != nil {
			return nil, err
		}
		arguments, err := decodeArguments(decoded.Arguments, registry)
		if err != nil {
			return nil, err
		}
		return NewMethodCall(receiver, decoded.MethodName, arguments...), nil

	case "ConstructorCall":
		instantiatedType, err := registry.Lookup(decoded.InstantiatedType)
		if err != nil {
			return nil, err
		}
		arguments, err := decodeArguments(decoded.Arguments, registry)
		if err != nil {
			return nil, err
		}
		return NewConstructorCall(instantiatedType, arguments...), nil

	default:
		return nil, errors.NewDefaultUserError(
			"invalid expression: unknown kind `%s`",
			decoded.Type,
		)
	}
}

func decodeArguments(
	rawArguments []json.RawMessage,
	registry *types.Registry,
) ([]Expression, error) {
	// An absent argument list decodes to nil,
	// so that decoding is the exact inverse of encoding.
	if len(rawArguments) == 0 {
		return nil, nil
	}

	arguments := make([]Expression, len(rawArguments))
	for i, rawArgument := range rawArguments {
		argument, err := DecodeExpression(rawArgument, registry)
		if err != nil {
			return nil, err
		}
		arguments[i] = argument
	}
	return arguments, nil
}
