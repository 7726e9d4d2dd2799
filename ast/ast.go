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

// Package ast contains the expression nodes of the language.
// All nodes implement the Expression interface,
// expose their static type through StaticType,
// and validate their subtree through CheckTypes.
// Expressions also implement the json.Marshaler interface,
// so they can be serialized to a stable JSON format,
// and can be rendered back to source-like text
// through String and Doc.
package ast
