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
	"github.com/javelin-lang/javelin/types"
)

// CheckTypes always succeeds: a variable reference has no children and
// its declared type is trusted.
func (*Variable) CheckTypes() error {
	return nil
}

// CheckTypes always succeeds: a literal has no children.
func (*Literal) CheckTypes() error {
	return nil
}

// CheckTypes always succeeds.
func (*NullLiteral) CheckTypes() error {
	return nil
}

// CheckTypes validates the arguments, then the receiver subtree, and
// then the call itself: the receiver's static type must be a subtype
// of Object that is not null, the method must resolve on it, and the
// arguments must match the method's parameters in number and in type.
//
// The first failure aborts the check and is returned unchanged.
func (e *MethodCall) CheckTypes() error {
	for _, argument := range e.Arguments {
		if err := argument.CheckTypes(); err != nil {
			return err
		}
	}
	if err := e.Receiver.CheckTypes(); err != nil {
		return err
	}

	receiverType := e.Receiver.StaticType()

	if receiverType.Equal(types.Null) {
		return &NullReceiverError{
			MethodName: e.MethodName,
		}
	}

	if !receiverType.IsSubtypeOf(types.Object) {
		return &NotObjectTypeError{
			Type: receiverType,
		}
	}

	method, err := receiverType.MethodNamed(e.MethodName)
	if err != nil {
		// Resolution failures surface from the type model
		// and propagate unchanged.
		return err
	}

	return checkCallArguments(
		receiverType,
		e.MethodName,
		method.ParameterTypes,
		e.Arguments,
	)
}

// CheckTypes validates the arguments and then the construction itself:
// the instantiated type must be a subtype of Object, and the arguments
// must match its constructor's parameters in number and in type.
//
// The first failure aborts the check and is returned unchanged.
func (e *ConstructorCall) CheckTypes() error {
	for _, argument := range e.Arguments {
		if err := argument.CheckTypes(); err != nil {
			return err
		}
	}

	if !e.InstantiatedType.IsSubtypeOf(types.Object) {
		return &NotInstantiableError{
			Type: e.InstantiatedType,
		}
	}

	constructor, err := e.InstantiatedType.Constructor()
	if err != nil {
		return err
	}

	return checkCallArguments(
		e.InstantiatedType,
		"",
		constructor.ParameterTypes,
		e.Arguments,
	)
}

// checkCallArguments checks the arity and the argument compatibility
// of a call, in that order: an arity error is reported independently
// of whether the supplied arguments would otherwise type-check.
//
// An empty methodName checks a constructor call.
func checkCallArguments(
	calleeType types.Type,
	methodName string,
	parameterTypes []types.Type,
	arguments []Expression,
) error {
	if len(arguments) != len(parameterTypes) {
		return &ArgumentCountError{
			CalleeType:     calleeType,
			MethodName:     methodName,
			ParameterCount: len(parameterTypes),
			ArgumentCount:  len(arguments),
		}
	}

	if index, ok := compatibleArguments(arguments, parameterTypes); !ok {
		return &ArgumentTypeError{
			CalleeType:    calleeType,
			MethodName:    methodName,
			ExpectedTypes: parameterTypes,
			ActualTypes:   staticTypes(arguments),
			ArgumentIndex: index,
		}
	}

	return nil
}

// compatibleArguments reports whether every positional argument is
// compatible with the corresponding parameter type. It short-circuits:
// the returned index is the first incompatible position.
//
// Positions beyond the shorter of the two sequences are ignored here;
// judging the argument count is deliberately the caller's concern.
func compatibleArguments(
	arguments []Expression,
	parameterTypes []types.Type,
) (int, bool) {
	for i := 0; i < len(arguments) && i < len(parameterTypes); i++ {
		if !compatibleArgument(arguments[i], parameterTypes[i]) {
			return i, false
		}
	}
	return 0, true
}

func compatibleArgument(argument Expression, parameterType types.Type) bool {
	argumentType := argument.StaticType()

	if argumentType.IsSubtypeOf(parameterType) {
		return true
	}

	// A null argument is accepted wherever a subtype of Object is
	// expected, although the null type itself is not a subtype of
	// Object.
	return argumentType.Equal(types.Null) &&
		parameterType.IsSubtypeOf(types.Object)
}

func staticTypes(arguments []Expression) []types.Type {
	argumentTypes := make([]types.Type, len(arguments))
	for i, argument := range arguments {
		argumentTypes[i] = argument.StaticType()
	}
	return argumentTypes
}
