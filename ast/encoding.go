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
	"bytes"
	"io"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/javelin-lang/javelin/errors"
	"github.com/javelin-lang/javelin/types"
)

// The CBOR representation of an expression mirrors the JSON one:
// every node is a tagged map with small integer keys, and type
// references are names, resolved through a registry on decoding.

// cborTagBase is the first tag number of the block used for expression
// nodes. The numbers are part of the encoding and must never change.
const cborTagBase = 3217750

const (
	cborTagVariable = cborTagBase + iota
	cborTagLiteral
	cborTagNullLiteral
	cborTagMethodCall
	cborTagConstructorCall
)

type encodedVariable struct {
	Name         string `cbor:"0,keyasint"`
	DeclaredType string `cbor:"1,keyasint"`
}

type encodedLiteral struct {
	Value     string `cbor:"0,keyasint"`
	ValueType string `cbor:"1,keyasint"`
}

type encodedNullLiteral struct{}

type encodedMethodCall struct {
	Receiver   any    `cbor:"0,keyasint"`
	MethodName string `cbor:"1,keyasint"`
	Arguments  []any  `cbor:"2,keyasint"`
}

type encodedConstructorCall struct {
	InstantiatedType string `cbor:"0,keyasint"`
	Arguments        []any  `cbor:"1,keyasint"`
}

var cborTagSet = func() cbor.TagSet {
	tagSet := cbor.NewTagSet()
	tagOptions := cbor.TagOptions{
		EncTag: cbor.EncTagRequired,
		DecTag: cbor.DecTagRequired,
	}

	register := func(tag uint64, encodedType any) {
		err := tagSet.Add(
			tagOptions,
			reflect.TypeOf(encodedType),
			tag,
		)
		if err != nil {
			panic(err)
		}
	}

	register(cborTagVariable, encodedVariable{})
	register(cborTagLiteral, encodedLiteral{})
	register(cborTagNullLiteral, encodedNullLiteral{})
	register(cborTagMethodCall, encodedMethodCall{})
	register(cborTagConstructorCall, encodedConstructorCall{})

	return tagSet
}()

var cborEncMode = func() cbor.EncMode {
	encMode, err := cbor.CanonicalEncOptions().EncModeWithTags(cborTagSet)
	if err != nil {
		panic(err)
	}
	return encMode
}()

var cborDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		MaxNestedLevels: math.MaxInt16,
	}.DecModeWithTags(cborTagSet)
	if err != nil {
		panic(err)
	}
	return decMode
}()

// Encoder converts expressions into CBOR-encoded bytes.
type Encoder struct {
	enc *cbor.Encoder
}

// EncodeExpressionCBOR returns the CBOR-encoded representation of the
// given expression.
func EncodeExpressionCBOR(expression Expression) ([]byte, error) {
	var w bytes.Buffer
	if err := NewEncoder(&w).Encode(expression); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// NewEncoder initializes an Encoder that writes CBOR-encoded bytes
// to the given writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		enc: cborEncMode.NewEncoder(w),
	}
}

// Encode writes the CBOR-encoded representation of the given
// expression to this encoder's writer.
func (e *Encoder) Encode(expression Expression) error {
	return e.enc.Encode(e.prepare(expression))
}

// prepare traverses the expression tree and returns the representation
// that can be marshalled to CBOR.
func (e *Encoder) prepare(expression Expression) any {
	switch expression := expression.(type) {
	case *Variable:
		return encodedVariable{
			Name:         expression.Name,
			DeclaredType: expression.DeclaredType.Name(),
		}

	case *Literal:
		return encodedLiteral{
			Value:     expression.Value,
			ValueType: expression.Type.Name(),
		}

	case *NullLiteral:
		return encodedNullLiteral{}

	case *MethodCall:
		return encodedMethodCall{
			Receiver:   e.prepare(expression.Receiver),
			MethodName: expression.MethodName,
			Arguments:  e.prepareArguments(expression.Arguments),
		}

	case *ConstructorCall:
		return encodedConstructorCall{
			InstantiatedType: expression.InstantiatedType.Name(),
			Arguments:        e.prepareArguments(expression.Arguments),
		}

	default:
		// The variant set is closed
		panic(errors.NewUnreachableError())
	}
}

func (e *Encoder) prepareArguments(arguments []Expression) []any {
	if arguments == nil {
		return nil
	}
	prepared := make([]any, len(arguments))
	for i, argument := range arguments {
		prepared[i] = e.prepare(argument)
	}
	return prepared
}

// Decoder converts CBOR-encoded bytes into expressions.
type Decoder struct {
	dec      *cbor.Decoder
	registry *types.Registry
}

// DecodeExpressionCBOR decodes the CBOR representation of an
// expression, the format produced by EncodeExpressionCBOR.
// Type references are resolved through the given registry.
func DecodeExpressionCBOR(data []byte, registry *types.Registry) (Expression, error) {
	return NewDecoder(bytes.NewReader(data), registry).Decode()
}

// NewDecoder initializes a Decoder that reads CBOR-encoded bytes from
// the given reader. Type references are resolved through the given
// registry.
func NewDecoder(r io.Reader, registry *types.Registry) *Decoder {
	return &Decoder{
		dec:      cborDecMode.NewDecoder(r),
		registry: registry,
	}
}

// Decode reads the next CBOR-encoded expression from this decoder's
// reader.
func (d *Decoder) Decode() (Expression, error) {
	var decoded any
	if err := d.dec.Decode(&decoded); err != nil {
		return nil, errors.NewDefaultUserError("invalid expression: %w", err)
	}
	return d.decodeExpression(decoded)
}

func (d *Decoder) decodeExpression(decoded any) (Expression, error) {
	switch decoded := decoded.(type) {
	case encodedVariable:
		declaredType, err := d.registry.Lookup(decoded.DeclaredType)
		if err != nil {
			return nil, err
		}
		return NewVariable(decoded.Name, declaredType), nil

	case encodedLiteral:
		valueType, err := d.registry.Lookup(decoded.ValueType)
		if err != nil {
			return nil, err
		}
		return NewLiteral(decoded.Value, valueType), nil

	case encodedNullLiteral:
		return NewNullLiteral(), nil

	case encodedMethodCall:
		if decoded.Receiver == nil {
			return nil, errors.NewDefaultUserError("method call without a receiver")
		}
		receiver, err := d.decodeExpression(decoded.Receiver)
		if err != nil {
			return nil, err
		}
		arguments, err := d.decodeArguments(decoded.Arguments)
		if err != nil {
			return nil, err
		}
		return NewMethodCall(receiver, decoded.MethodName, arguments...), nil

	case encodedConstructorCall:
		instantiatedType, err := d.registry.Lookup(decoded.InstantiatedType)
		if err != nil {
			return nil, err
		}
		arguments, err := d.decodeArguments(decoded.Arguments)
		if err != nil {
			return nil, err
		}
		return NewConstructorCall(instantiatedType, arguments...), nil

	case cbor.Tag:
		return nil, errors.NewDefaultUserError(
			"invalid expression: unsupported tag %d",
			decoded.Number,
		)

	default:
		return nil, errors.NewDefaultUserError(
			"invalid expression: unsupported value %[1]T, %[1]v",
			decoded,
		)
	}
}

// decodeArguments decodes the argument list of a call.
// An absent argument list decodes to nil,
// so that decoding is the exact inverse of encoding.
func (d *Decoder) decodeArguments(rawArguments []any) ([]Expression, error) {
	if len(rawArguments) == 0 {
		return nil, nil
	}
	arguments := make([]Expression, len(rawArguments))
	for i, rawArgument := range rawArguments {
		argument, err := d.decodeExpression(rawArgument)
		if err != nil {
			return nil, err
		}
		arguments[i] = argument
	}
	return arguments, nil
}
