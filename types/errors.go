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

package types

import (
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/javelin-lang/javelin/errors"
)

// NoSuchMethodError

// NoSuchMethodError is reported when a method cannot be resolved on a type,
// neither on the type itself nor on any of its supertypes.
type NoSuchMethodError struct {
	Type Type
	Name string

	// candidates are the sorted names of the methods visible on the type,
	// used to suggest a likely intended method.
	candidates []string
}

var _ errors.UserError = &NoSuchMethodError{}
var _ errors.SecondaryError = &NoSuchMethodError{}
var _ errors.ErrorNotes = &NoSuchMethodError{}

func (*NoSuchMethodError) IsUserError() {}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf(
		"type `%s` has no method `%s`",
		e.Type.Name(),
		e.Name,
	)
}

func (e *NoSuchMethodError) SecondaryError() string {
	if closest := findClosestName(e.Name, e.candidates); closest != "" {
		return fmt.Sprintf("did you mean `%s`?", closest)
	}
	return "unknown method"
}

func (e *NoSuchMethodError) ErrorNotes() []errors.ErrorNote {
	if len(e.candidates) == 0 {
		return nil
	}
	return []errors.ErrorNote{
		MethodListNote{Methods: e.candidates},
	}
}

// MethodListNote lists the methods that are visible on a type.
type MethodListNote struct {
	Methods []string
}

var _ errors.ErrorNote = MethodListNote{}

func (n MethodListNote) Message() string {
	var builder strings.Builder
	builder.WriteString("the available methods are ")
	for i, method := range n.Methods {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteByte('`')
		builder.WriteString(method)
		builder.WriteByte('`')
	}
	return builder.String()
}

// findClosestName searches the given sorted candidate names and finds the
// name with the smallest edit distance from the given name.
// Defaults to an empty string if there is no name with a distance below
// the cutoff.
func findClosestName(name string, candidates []string) (closest string) {
	nameRunes := []rune(name)
	closestDistance := len(name)

	for _, candidate := range candidates {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the name's text
		if distance < closestDistance && distance < len(candidate) {
			closest = candidate
			closestDistance = distance
		}
	}

	return
}

// NoConstructorError

// NoConstructorError is reported when a constructor is requested on a type
// that cannot have one, e.g. a primitive type.
type NoConstructorError struct {
	Type Type
}

var _ errors.UserError = &NoConstructorError{}

func (*NoConstructorError) IsUserError() {}

func (e *NoConstructorError) Error() string {
	return fmt.Sprintf(
		"type `%s` has no constructor",
		e.Type.Name(),
	)
}

// NotDeclaredTypeError

// NotDeclaredTypeError is reported when a type name cannot be resolved
// in a registry.
type NotDeclaredTypeError struct {
	Name string

	candidates []string
}

var _ errors.UserError = &NotDeclaredTypeError{}
var _ errors.SecondaryError = &NotDeclaredTypeError{}

func (*NotDeclaredTypeError) IsUserError() {}

func (e *NotDeclaredTypeError) Error() string {
	return fmt.Sprintf("cannot find type `%s`", e.Name)
}

func (e *NotDeclaredTypeError) SecondaryError() string {
	if closest := findClosestName(e.Name, e.candidates); closest != "" {
		return fmt.Sprintf("did you mean `%s`?", closest)
	}
	return "type is not declared"
}

// RedeclaredTypeError

// RedeclaredTypeError is reported when a type is registered under a name
// that is already taken.
type RedeclaredTypeError struct {
	Name string
}

var _ errors.UserError = &RedeclaredTypeError{}

func (*RedeclaredTypeError) IsUserError() {}

func (e *RedeclaredTypeError) Error() string {
	return fmt.Sprintf("cannot redeclare type `%s`", e.Name)
}
