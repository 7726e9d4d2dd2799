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

// Package declarations loads class and interface declarations from a
// YAML document into a type registry, so that a checked program's type
// universe can be supplied as data instead of Go code.
package declarations

import (
	"github.com/goccy/go-yaml"

	"github.com/javelin-lang/javelin/errors"
	"github.com/javelin-lang/javelin/types"
)

// Document is the top-level structure of a declarations document.
type Document struct {
	Classes []ClassDeclaration `yaml:"classes"`
}

// ClassDeclaration declares one class or interface.
//
// A declaration without supertypes extends Object, like in Java.
// A declaration without a constructor gets the default zero-parameter
// constructor.
type ClassDeclaration struct {
	Name        string              `yaml:"name"`
	Supertypes  []string            `yaml:"supertypes"`
	Constructor []string            `yaml:"constructor"`
	Methods     []MethodDeclaration `yaml:"methods"`
}

// MethodDeclaration declares one method.
// A declaration without a return type returns void.
type MethodDeclaration struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters"`
	Returns    string   `yaml:"returns"`
}

// Parse loads the class declarations in the given YAML document into
// the given registry.
//
// Declarations are loaded in two passes. Supertypes and constructor
// parameters may only refer to types that are already declared, in the
// registry or earlier in the document. Methods may refer to any type
// in the document, including the declaring class itself.
func Parse(data []byte, registry *types.Registry) error {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return errors.NewDefaultUserError("malformed declarations: %w", err)
	}

	classes := make([]*types.ClassType, len(document.Classes))
	for i, declaration := range document.Classes {
		if declaration.Name == "" {
			return errors.NewDefaultUserError("class declaration without a name")
		}

		supertypes, err := resolveAll(registry, declaration.Supertypes)
		if err != nil {
			return err
		}
		if len(supertypes) == 0 {
			supertypes = []types.Type{types.Object}
		}

		var constructor *types.Constructor
		if declaration.Constructor != nil {
			parameterTypes, err := resolveAll(registry, declaration.Constructor)
			if err != nil {
				return err
			}
			constructor = types.NewConstructor(parameterTypes...)
		}

		class := types.NewClassType(declaration.Name, supertypes, constructor)
		if err := registry.Register(class); err != nil {
			return err
		}
		classes[i] = class
	}

	for i, declaration := range document.Classes {
		class := classes[i]
		declared := make(map[string]struct{}, len(declaration.Methods))

		for _, method := range declaration.Methods {
			if method.Name == "" {
				return errors.NewDefaultUserError(
					"class `%s` declares a method without a name",
					declaration.Name,
				)
			}
			if _, ok := declared[method.Name]; ok {
				return errors.NewDefaultUserError(
					"class `%s` redeclares method `%s`",
					declaration.Name,
					method.Name,
				)
			}
			declared[method.Name] = struct{}{}

			parameterTypes, err := resolveAll(registry, method.Parameters)
			if err != nil {
				return err
			}

			var returnType types.Type
			if method.Returns != "" {
				returnType, err = registry.Lookup(method.Returns)
				if err != nil {
					return err
				}
			}

			class.DeclareMethod(types.NewMethod(
				method.Name,
				returnType,
				parameterTypes...,
			))
		}
	}

	return nil
}

func resolveAll(registry *types.Registry, names []string) ([]types.Type, error) {
	if len(names) == 0 {
		return nil, nil
	}
	resolved := make([]types.Type, len(names))
	for i, name := range names {
		t, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		resolved[i] = t
	}
	return resolved, nil
}
