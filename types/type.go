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

// Package types defines the nominal type model of the language:
// the primitive types, the null type, and class and interface types,
// together with the subtype relation and the method and constructor
// resolution the expression checker depends on.
package types

import (
	goErrors "errors"
	"sort"

	"github.com/javelin-lang/javelin/errors"
)

// Type is the capability surface the expression checker consumes.
// All types are immutable once declared, so they are safe for
// concurrent reads.
type Type interface {
	isType()
	// Name returns the declared name of the type.
	Name() string
	// String returns a description of the type.
	String() string
	// Equal returns true if the given type is the same type as this type.
	Equal(other Type) bool
	// IsSubtypeOf reports whether this type is a subtype of the given type.
	IsSubtypeOf(other Type) bool
	// MethodNamed resolves the method with the given name.
	// There is at most one method per name: the model has no overloading.
	MethodNamed(name string) (*Method, error)
	// Constructor resolves the constructor signature of the type.
	Constructor() (*Constructor, error)
}

// Method

// Method is the signature of a method:
// its name, its parameter types in declaration order, and its return type.
type Method struct {
	Name           string
	ParameterTypes []Type
	ReturnType     Type
}

// NewMethod declares a method signature.
// A nil return type declares a method that returns nothing, i.e. Void.
func NewMethod(name string, returnType Type, parameterTypes ...Type) *Method {
	if name == "" {
		panic(errors.NewUnexpectedError("method declared without a name"))
	}
	for _, parameterType := range parameterTypes {
		if parameterType == nil {
			panic(errors.NewUnexpectedError("method `%s` declared with a nil parameter type", name))
		}
	}
	if returnType == nil {
		returnType = Void
	}
	return &Method{
		Name:           name,
		ParameterTypes: parameterTypes,
		ReturnType:     returnType,
	}
}

// Constructor

// Constructor is the signature of a constructor: its parameter types
// in declaration order. Instantiation yields the declaring type itself,
// so there is no return type.
type Constructor struct {
	ParameterTypes []Type
}

func NewConstructor(parameterTypes ...Type) *Constructor {
	for _, parameterType := range parameterTypes {
		if parameterType == nil {
			panic(errors.NewUnexpectedError("constructor declared with a nil parameter type"))
		}
	}
	return &Constructor{
		ParameterTypes: parameterTypes,
	}
}

// PrimitiveType

// PrimitiveType is a value type without methods and without a constructor,
// e.g. `int`. A primitive type has no supertypes: it is only a subtype
// of itself.
type PrimitiveType struct {
	name string
}

var _ Type = &PrimitiveType{}

// The primitive types of the language.
var (
	Void    = &PrimitiveType{name: "void"}
	Boolean = &PrimitiveType{name: "boolean"}
	Int     = &PrimitiveType{name: "int"}
	Double  = &PrimitiveType{name: "double"}
)

func (*PrimitiveType) isType() {}

func (t *PrimitiveType) Name() string {
	return t.name
}

func (t *PrimitiveType) String() string {
	return t.name
}

func (t *PrimitiveType) Equal(other Type) bool {
	otherPrimitive, ok := other.(*PrimitiveType)
	return ok && otherPrimitive == t
}

func (t *PrimitiveType) IsSubtypeOf(other Type) bool {
	return t.Equal(other)
}

func (t *PrimitiveType) MethodNamed(name string) (*Method, error) {
	return nil, &NoSuchMethodError{Type: t, Name: name}
}

func (t *PrimitiveType) Constructor() (*Constructor, error) {
	return nil, &NoConstructorError{Type: t}
}

// NullType

// NullType is the type of the null literal.
//
// It is deliberately not a subtype of Object: null has no methods and
// no constructor. Argument compatibility nevertheless accepts a null
// argument wherever a class or interface type is expected; that rule
// lives in the expression checker, not here.
type NullType struct{}

var _ Type = &NullType{}

// Null is the singleton instance of NullType.
var Null = &NullType{}

func (*NullType) isType() {}

func (*NullType) Name() string {
	return "null"
}

func (*NullType) String() string {
	return "null"
}

func (*NullType) Equal(other Type) bool {
	_, ok := other.(*NullType)
	return ok
}

func (t *NullType) IsSubtypeOf(other Type) bool {
	return t.Equal(other)
}

func (t *NullType) MethodNamed(name string) (*Method, error) {
	return nil, &NoSuchMethodError{Type: t, Name: name}
}

func (t *NullType) Constructor() (*Constructor, error) {
	return nil, &NoConstructorError{Type: t}
}

// InvalidType

// InvalidType is the sentinel type of expressions whose type cannot be
// determined, e.g. a method call whose method does not resolve.
// StaticType stays total by returning Invalid; CheckTypes reports the
// underlying failure. Invalid is a subtype of nothing, not even itself,
// so it can never satisfy a compatibility check.
type InvalidType struct{}

var _ Type = &InvalidType{}

// Invalid is the singleton instance of InvalidType.
var Invalid = &InvalidType{}

func (*InvalidType) isType() {}

func (*InvalidType) Name() string {
	return "<<invalid>>"
}

func (*InvalidType) String() string {
	return "<<invalid>>"
}

func (*InvalidType) Equal(other Type) bool {
	_, ok := other.(*InvalidType)
	return ok
}

func (*InvalidType) IsSubtypeOf(_ Type) bool {
	return false
}

func (t *InvalidType) MethodNamed(name string) (*Method, error) {
	return nil, &NoSuchMethodError{Type: t, Name: name}
}

func (t *InvalidType) Constructor() (*Constructor, error) {
	return nil, &NoConstructorError{Type: t}
}

// ClassType

// ClassType is a class or interface type: a named type with direct
// supertypes, methods, and a constructor.
//
// Every class type has exactly one constructor. A class type declared
// without one gets the default zero-parameter constructor.
type ClassType struct {
	name             string
	directSupertypes []Type
	constructor      *Constructor
	methods          map[string]*Method
}

var _ Type = &ClassType{}

// Object is the root of the class hierarchy: the distinguished type
// whose subtypes are exactly the types that have methods and
// constructors. Class and interface types ultimately list Object among
// their supertypes; primitive types and the null type do not.
var Object = &ClassType{
	name:        "Object",
	constructor: &Constructor{},
	methods:     map[string]*Method{},
}

func init() {
	// Object's own methods refer to Object,
	// so they are attached here rather than in the declaration above.
	Object.DeclareMethod(NewMethod("equals", Boolean, Object))
	Object.DeclareMethod(NewMethod("hashCode", Int))
}

// NewClassType declares a class or interface type.
//
// A nil constructor declares the default zero-parameter constructor.
// The direct supertypes are recorded in declaration order; method
// resolution and the subtype relation visit them depth-first in that
// order.
func NewClassType(
	name string,
	directSupertypes []Type,
	constructor *Constructor,
	methods ...*Method,
) *ClassType {
	if name == "" {
		panic(errors.NewUnexpectedError("class type declared without a name"))
	}
	for _, supertype := range directSupertypes {
		if supertype == nil {
			panic(errors.NewUnexpectedError("class type `%s` declared with a nil supertype", name))
		}
	}
	if constructor == nil {
		constructor = NewConstructor()
	}
	methodsByName := make(map[string]*Method, len(methods))
	for _, method := range methods {
		if method == nil {
			panic(errors.NewUnexpectedError("class type `%s` declared with a nil method", name))
		}
		if _, ok := methodsByName[method.Name]; ok {
			panic(errors.NewUnexpectedError(
				"class type `%s` redeclares method `%s`",
				name,
				method.Name,
			))
		}
		methodsByName[method.Name] = method
	}
	return &ClassType{
		name:             name,
		directSupertypes: directSupertypes,
		constructor:      constructor,
		methods:          methodsByName,
	}
}

// DeclareMethod adds a method to the type.
//
// Types are immutable once in use: declaring a method after
// construction is only meant for initialization-time wiring of
// self-referential methods, e.g. a method of Point returning Point.
func (t *ClassType) DeclareMethod(method *Method) {
	if method == nil {
		panic(errors.NewUnexpectedError("class type `%s` declares a nil method", t.name))
	}
	if _, ok := t.methods[method.Name]; ok {
		panic(errors.NewUnexpectedError(
			"class type `%s` redeclares method `%s`",
			t.name,
			method.Name,
		))
	}
	t.methods[method.Name] = method
}

func (*ClassType) isType() {}

func (t *ClassType) Name() string {
	return t.name
}

func (t *ClassType) String() string {
	return t.name
}

// DirectSupertypes returns the declared direct supertypes, in declaration order.
func (t *ClassType) DirectSupertypes() []Type {
	return t.directSupertypes
}

// Equal returns true only for the identical declaration:
// two distinct declarations with the same name are distinct types.
func (t *ClassType) Equal(other Type) bool {
	otherClass, ok := other.(*ClassType)
	return ok && otherClass == t
}

// IsSubtypeOf reports whether this type is the given type, or inherits
// from it through any chain of direct supertypes.
func (t *ClassType) IsSubtypeOf(other Type) bool {
	if t.Equal(other) {
		return true
	}
	for _, supertype := range t.directSupertypes {
		if supertype.IsSubtypeOf(other) {
			return true
		}
	}
	return false
}

// MethodNamed resolves a method by name on this type or any of its
// supertypes. The type's own methods take precedence; supertypes are
// searched depth-first in declaration order, first match wins.
func (t *ClassType) MethodNamed(name string) (*Method, error) {
	if method, ok := t.methods[name]; ok {
		return method, nil
	}
	for _, supertype := range t.directSupertypes {
		method, err := supertype.MethodNamed(name)
		if err != nil {
			var notFound *NoSuchMethodError
			if goErrors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		return method, nil
	}
	return nil, &NoSuchMethodError{
		Type:       t,
		Name:       name,
		candidates: t.MethodNames(),
	}
}

func (t *ClassType) Constructor() (*Constructor, error) {
	return t.constructor, nil
}

// MethodNames returns the sorted names of all methods visible on this
// type, including inherited ones.
func (t *ClassType) MethodNames() []string {
	seen := map[string]struct{}{}
	var names []string
	t.collectMethodNames(seen, &names)
	sort.Strings(names)
	return names
}

func (t *ClassType) collectMethodNames(seen map[string]struct{}, names *[]string) {
	for name := range t.methods {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		*names = append(*names, name)
	}
	for _, supertype := range t.directSupertypes {
		if class, ok := supertype.(*ClassType); ok {
			class.collectMethodNames(seen, names)
		}
	}
}
