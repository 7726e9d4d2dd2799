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
	"fmt"
	"strings"

	"github.com/javelin-lang/javelin/errors"
	"github.com/javelin-lang/javelin/types"
)

// TypeError is implemented by all type checking errors reported by
// CheckTypes itself: invoking a method on a type that has no methods,
// a wrong argument count, an argument type mismatch, and instantiating
// a type that is not instantiable.
//
// A method call on a receiver that is statically known to be null is
// reported separately, as NullReceiverError, and method or constructor
// resolution failures propagate from the type model unchanged.
type TypeError interface {
	errors.UserError
	isTypeError()
}

// NullReceiverError

// NullReceiverError is reported when a method is invoked on an
// expression whose static type is the null type. The null type has no
// methods, so the call can never succeed, regardless of the method
// name or the arguments.
type NullReceiverError struct {
	MethodName string
}

var _ errors.UserError = &NullReceiverError{}
var _ errors.SecondaryError = &NullReceiverError{}

func (*NullReceiverError) IsUserError() {}

func (e *NullReceiverError) Error() string {
	return fmt.Sprintf(
		"cannot invoke method `%s()` on `null`",
		e.MethodName,
	)
}

func (e *NullReceiverError) SecondaryError() string {
	return "the receiver is statically known to be null, and null has no methods"
}

// NotObjectTypeError

// NotObjectTypeError is reported when a method is invoked on an
// expression whose static type is outside the object category,
// e.g. a primitive type.
type NotObjectTypeError struct {
	Type types.Type
}

var _ TypeError = &NotObjectTypeError{}
var _ errors.UserError = &NotObjectTypeError{}
var _ errors.SecondaryError = &NotObjectTypeError{}

func (*NotObjectTypeError) isTypeError() {}

func (*NotObjectTypeError) IsUserError() {}

func (e *NotObjectTypeError) Error() string {
	return fmt.Sprintf(
		"type `%s` does not have methods",
		e.Type.Name(),
	)
}

func (e *NotObjectTypeError) SecondaryError() string {
	return "methods exist only on subtypes of `Object`"
}

// ArgumentCountError

// ArgumentCountError is reported when a method or constructor call has
// more or fewer arguments than the resolved signature has parameters.
//
// An empty MethodName identifies a constructor call.
type ArgumentCountError struct {
	CalleeType     types.Type
	MethodName     string
	ParameterCount int
	ArgumentCount  int
}

var _ TypeError = &ArgumentCountError{}
var _ errors.UserError = &ArgumentCountError{}

func (*ArgumentCountError) isTypeError() {}

func (*ArgumentCountError) IsUserError() {}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf(
		"wrong number of arguments for %s: expected %d, got %d",
		describeCallee(e.CalleeType, e.MethodName),
		e.ParameterCount,
		e.ArgumentCount,
	)
}

// ArgumentTypeError

// ArgumentTypeError is reported when a method or constructor call has
// the right number of arguments, but an argument's static type is
// incompatible with the corresponding parameter type.
//
// ArgumentIndex is the first incompatible position, counting from zero.
// An empty MethodName identifies a constructor call.
type ArgumentTypeError struct {
	CalleeType    types.Type
	MethodName    string
	ExpectedTypes []types.Type
	ActualTypes   []types.Type
	ArgumentIndex int
}

var _ TypeError = &ArgumentTypeError{}
var _ errors.UserError = &ArgumentTypeError{}
var _ errors.SecondaryError = &ArgumentTypeError{}

func (*ArgumentTypeError) isTypeError() {}

func (*ArgumentTypeError) IsUserError() {}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf(
		"%s expects arguments of type %s, but got %s",
		describeCallee(e.CalleeType, e.MethodName),
		formatTypeList(e.ExpectedTypes),
		formatTypeList(e.ActualTypes),
	)
}

func (e *ArgumentTypeError) SecondaryError() string {
	return fmt.Sprintf(
		"argument %d is incompatible: expected `%s`, got `%s`",
		e.ArgumentIndex+1,
		e.ExpectedTypes[e.ArgumentIndex].Name(),
		e.ActualTypes[e.ArgumentIndex].Name(),
	)
}

// NotInstantiableError

// NotInstantiableError is reported when the instantiated type of a
// constructor call is outside the object category, e.g. a primitive
// type.
type NotInstantiableError struct {
	Type types.Type
}

var _ TypeError = &NotInstantiableError{}
var _ errors.UserError = &NotInstantiableError{}
var _ errors.SecondaryError = &NotInstantiableError{}

func (*NotInstantiableError) isTypeError() {}

func (*NotInstantiableError) IsUserError() {}

func (e *NotInstantiableError) Error() string {
	return fmt.Sprintf(
		"type `%s` is not instantiable",
		e.Type.Name(),
	)
}

func (e *NotInstantiableError) SecondaryError() string {
	return "only subtypes of `Object` can be instantiated with `new`"
}

// describeCallee renders the callee of a call for an error message.
// An empty method name describes a constructor.
func describeCallee(calleeType types.Type, methodName string) string {
	if methodName == "" {
		return fmt.Sprintf("`%s` constructor", calleeType.Name())
	}
	return fmt.Sprintf(
		"`%s.%s()`",
		calleeType.Name(),
		methodName,
	)
}

// formatTypeList renders type names as a parenthesized list,
// in declaration order.
func formatTypeList(typeList []types.Type) string {
	var builder strings.Builder
	builder.WriteRune('(')
	for i, t := range typeList {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(t.Name())
	}
	builder.WriteRune(')')
	return builder.String()
}
