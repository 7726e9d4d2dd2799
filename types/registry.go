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
	"sort"
)

// Registry resolves type names to declared types.
//
// A new registry contains the built-in types: the primitive types, `null`,
// and `Object`. Class and interface types are added with Register.
// A registry is not synchronized: it is built once during setup and
// read-only afterwards.
type Registry struct {
	typesByName map[string]Type
}

// NewRegistry returns a registry containing the built-in types.
func NewRegistry() *Registry {
	registry := &Registry{
		typesByName: map[string]Type{},
	}
	for _, builtin := range []Type{
		Void,
		Boolean,
		Int,
		Double,
		Null,
		Object,
	} {
		registry.typesByName[builtin.Name()] = builtin
	}
	return registry
}

// Register declares the given type under its name.
func (r *Registry) Register(t Type) error {
	name := t.Name()
	if _, ok := r.typesByName[name]; ok {
		return &RedeclaredTypeError{Name: name}
	}
	r.typesByName[name] = t
	return nil
}

// MustRegister is like Register, but panics on redeclaration.
// It is intended for built-in universes constructed at initialization time.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup resolves a type by name.
func (r *Registry) Lookup(name string) (Type, error) {
	t, ok := r.typesByName[name]
	if !ok {
		return nil, &NotDeclaredTypeError{
			Name:       name,
			candidates: r.Names(),
		}
	}
	return t, nil
}

// Names returns the sorted names of all registered types.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.typesByName))
	for name := range r.typesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
