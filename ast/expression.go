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
	"fmt"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/javelin-lang/javelin/types"
)

// Expression

// Expression is the interface of all expression nodes.
// The variant set is closed: Variable, Literal, NullLiteral,
// MethodCall, and ConstructorCall.
//
// Expressions are immutable: they are constructed once and only read
// afterwards, so a tree may be validated concurrently as long as the
// type model supports concurrent reads.
type Expression interface {
	fmt.Stringer
	json.Marshaler
	isExpression()
	// Walk calls the given function for each direct child expression.
	Walk(walkChild func(Expression))
	// Doc returns the prettier document of the expression,
	// used to render it as source-like text.
	Doc() prettier.Doc
	// StaticType returns the compile-time type of the expression.
	//
	// It is total and pure: it never fails and never validates.
	// For method calls it resolves through the type model on every
	// invocation; callers needing the result repeatedly should cache it.
	StaticType() types.Type
	// CheckTypes validates the subtree rooted at this node and returns
	// the first inconsistency found, traversing children before the
	// node's own operation, and arguments left to right within a call.
	CheckTypes() error
}

// Variable

// Variable is a reference to a declared variable.
// Name resolution is out of scope of the checker:
// the declared type is supplied at construction time.
type Variable struct {
	Name         string
	DeclaredType types.Type
}

var _ Expression = &Variable{}

func NewVariable(name string, declaredType types.Type) *Variable {
	return &Variable{
		Name:         name,
		DeclaredType: declaredType,
	}
}

func (*Variable) isExpression() {}

func (*Variable) Walk(_ func(Expression)) {
	// NO-OP
}

func (e *Variable) String() string {
	return e.Name
}

func (e *Variable) Doc() prettier.Doc {
	return prettier.Text(e.Name)
}

func (e *Variable) StaticType() types.Type {
	return e.DeclaredType
}

func (e *Variable) MarshalJSON() ([]byte, error) {
	type Alias Variable
	return json.Marshal(&struct {
		Type string
		*Alias
		DeclaredType string
	}{
		Type:         "Variable",
		Alias:        (*Alias)(e),
		DeclaredType: e.DeclaredType.Name(),
	})
}

// Literal

// Literal is a constant of a known type.
// The value is an opaque textual representation:
// validation never inspects it.
type Literal struct {
	Value string
	Type  types.Type
}

var _ Expression = &Literal{}

func NewLiteral(value string, literalType types.Type) *Literal {
	return &Literal{
		Value: value,
		Type:  literalType,
	}
}

func (*Literal) isExpression() {}

func (*Literal) Walk(_ func(Expression)) {
	// NO-OP
}

func (e *Literal) String() string {
	return e.Value
}

func (e *Literal) Doc() prettier.Doc {
	return prettier.Text(e.Value)
}

func (e *Literal) StaticType() types.Type {
	return e.Type
}

func (e *Literal) MarshalJSON() ([]byte, error) {
	type Alias Literal
	return json.Marshal(&struct {
		Type string
		*Alias
		ValueType string
	}{
		Type:      "Literal",
		Alias:     (*Alias)(e),
		ValueType: e.Type.Name(),
	})
}

// NullLiteral

// NullLiteral is the literal `null`:
// its value is fixed to "null" and its type to types.Null.
type NullLiteral struct{}

var _ Expression = &NullLiteral{}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{}
}

func (*NullLiteral) isExpression() {}

func (*NullLiteral) Walk(_ func(Expression)) {
	// NO-OP
}

func (*NullLiteral) String() string {
	return "null"
}

var nullLiteralDoc prettier.Doc = prettier.Text("null")

func (*NullLiteral) Doc() prettier.Doc {
	return nullLiteralDoc
}

func (*NullLiteral) StaticType() types.Type {
	return types.Null
}

func (e *NullLiteral) MarshalJSON() ([]byte, error) {
	type Alias NullLiteral
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "NullLiteral",
		Alias: (*Alias)(e),
	})
}

// MethodCall

// MethodCall is the invocation of a method on a receiver expression:
// `receiver.method(arguments...)`.
type MethodCall struct {
	Receiver   Expression
	MethodName string
	Arguments  []Expression
}

var _ Expression = &MethodCall{}

func NewMethodCall(
	receiver Expression,
	methodName string,
	arguments ...Expression,
) *MethodCall {
	return &MethodCall{
		Receiver:   receiver,
		MethodName: methodName,
		Arguments:  arguments,
	}
}

func (*MethodCall) isExpression() {}

func (e *MethodCall) Walk(walkChild func(Expression)) {
	walkChild(e.Receiver)
	for _, argument := range e.Arguments {
		walkChild(argument)
	}
}

func (e *MethodCall) String() string {
	var builder strings.Builder
	builder.WriteString(e.Receiver.String())
	builder.WriteRune('.')
	builder.WriteString(e.MethodName)
	writeArguments(&builder, e.Arguments)
	return builder.String()
}

func (e *MethodCall) Doc() prettier.Doc {
	return prettier.Concat{
		e.Receiver.Doc(),
		prettier.Text("."),
		prettier.Text(e.MethodName),
		argumentsDoc(e.Arguments),
	}
}

// StaticType returns the return type of the resolved method,
// or types.Invalid if the method cannot be resolved.
// CheckTypes is the operation that reports resolution failures;
// StaticType never fails.
func (e *MethodCall) StaticType() types.Type {
	method, err := e.Receiver.StaticType().MethodNamed(e.MethodName)
	if err != nil {
		return types.Invalid
	}
	return method.ReturnType
}

func (e *MethodCall) MarshalJSON() ([]byte, error) {
	type Alias MethodCall
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "MethodCall",
		Alias: (*Alias)(e),
	})
}

// ConstructorCall

// ConstructorCall is the instantiation of a type:
// `new Type(arguments...)`.
type ConstructorCall struct {
	InstantiatedType types.Type
	Arguments        []Expression
}

var _ Expression = &ConstructorCall{}

func NewConstructorCall(
	instantiatedType types.Type,
	arguments ...Expression,
) *ConstructorCall {
	return &ConstructorCall{
		InstantiatedType: instantiatedType,
		Arguments:        arguments,
	}
}

func (*ConstructorCall) isExpression() {}

func (e *ConstructorCall) Walk(walkChild func(Expression)) {
	for _, argument := range e.Arguments {
		walkChild(argument)
	}
}

func (e *ConstructorCall) String() string {
	var builder strings.Builder
	builder.WriteString("new ")
	builder.WriteString(e.InstantiatedType.Name())
	writeArguments(&builder, e.Arguments)
	return builder.String()
}

var newKeywordDoc prettier.Doc = prettier.Text("new ")

func (e *ConstructorCall) Doc() prettier.Doc {
	return prettier.Concat{
		newKeywordDoc,
		prettier.Text(e.InstantiatedType.Name()),
		argumentsDoc(e.Arguments),
	}
}

func (e *ConstructorCall) StaticType() types.Type {
	return e.InstantiatedType
}

func (e *ConstructorCall) MarshalJSON() ([]byte, error) {
	type Alias ConstructorCall
	return json.Marshal(&struct {
		Type string
		*Alias
		InstantiatedType string
	}{
		Type:             "ConstructorCall",
		Alias:            (*Alias)(e),
		InstantiatedType: e.InstantiatedType.Name(),
	})
}

// rendering helpers shared by both call variants

func writeArguments(builder *strings.Builder, arguments []Expression) {
	builder.WriteRune('(')
	for i, argument := range arguments {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(argument.String())
	}
	builder.WriteRune(')')
}

var argumentsSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func argumentsDoc(arguments []Expression) prettier.Doc {
	if len(arguments) == 0 {
		return prettier.Text("()")
	}

	argumentDocs := make([]prettier.Doc, len(arguments))
	for i, argument := range arguments {
		argumentDocs[i] = argument.Doc()
	}

	return prettier.WrapParentheses(
		prettier.Join(argumentsSeparatorDoc, argumentDocs...),
		prettier.SoftLine{},
	)
}
