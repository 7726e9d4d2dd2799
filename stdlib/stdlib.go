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

// Package stdlib declares the standard type universe of the language:
// the String class and a small 2D graphics kit in the spirit of
// classroom drawing libraries.
package stdlib

import (
	"github.com/javelin-lang/javelin/types"
)

// String is the immutable text type.
var String = types.NewClassType(
	"String",
	[]types.Type{types.Object},
	types.NewConstructor(types.Object),
	types.NewMethod("length", types.Int),
	types.NewMethod("isEmpty", types.Boolean),
)

// Paint is the interface of everything that can fill or stroke a shape.
var Paint = types.NewClassType(
	"Paint",
	[]types.Type{types.Object},
	nil,
)

// Color is an RGB color.
var Color = types.NewClassType(
	"Color",
	[]types.Type{Paint},
	types.NewConstructor(types.Int, types.Int, types.Int),
	types.NewMethod("getRed", types.Int),
	types.NewMethod("getGreen", types.Int),
	types.NewMethod("getBlue", types.Int),
)

// Point is an immutable position in 2D space.
var Point = types.NewClassType(
	"Point",
	[]types.Type{types.Object},
	types.NewConstructor(types.Double, types.Double),
	types.NewMethod("getX", types.Double),
	types.NewMethod("getY", types.Double),
)

// Size is an immutable width and height pair.
var Size = types.NewClassType(
	"Size",
	[]types.Type{types.Object},
	types.NewConstructor(types.Double, types.Double),
	types.NewMethod("getWidth", types.Double),
	types.NewMethod("getHeight", types.Double),
)

// GraphicsObject is the interface of everything that can be drawn.
var GraphicsObject = types.NewClassType(
	"GraphicsObject",
	[]types.Type{types.Object},
	nil,
	types.NewMethod("getPosition", Point),
	types.NewMethod("setPosition", types.Void, Point),
	types.NewMethod("getSize", Size),
)

// Fillable is the interface of shapes with a fillable interior.
var Fillable = types.NewClassType(
	"Fillable",
	[]types.Type{types.Object},
	nil,
	types.NewMethod("setFillColor", types.Void, Paint),
	types.NewMethod("getFillColor", Paint),
	types.NewMethod("setFilled", types.Void, types.Boolean),
)

// Strokable is the interface of shapes with an outline.
var Strokable = types.NewClassType(
	"Strokable",
	[]types.Type{types.Object},
	nil,
	types.NewMethod("setStrokeColor", types.Void, Paint),
	types.NewMethod("getStrokeColor", Paint),
	types.NewMethod("setStrokeWidth", types.Void, types.Double),
)

// Rectangle is an axis-aligned rectangle.
var Rectangle = types.NewClassType(
	"Rectangle",
	[]types.Type{GraphicsObject, Strokable, Fillable},
	types.NewConstructor(Point, Size),
)

// GraphicsGroup is a group of graphics objects drawn together.
var GraphicsGroup = types.NewClassType(
	"GraphicsGroup",
	[]types.Type{GraphicsObject},
	types.NewConstructor(),
	types.NewMethod("add", types.Void, GraphicsObject),
	types.NewMethod("remove", types.Void, GraphicsObject),
)

// Window is a top-level window with a drawing canvas.
var Window = types.NewClassType(
	"Window",
	[]types.Type{types.Object},
	types.NewConstructor(String, types.Int, types.Int),
	types.NewMethod("getWidth", types.Int),
	types.NewMethod("getHeight", types.Int),
	types.NewMethod("add", types.Void, GraphicsObject),
	types.NewMethod("setTitle", types.Void, String),
)

func init() {
	// Methods whose types refer to the declaring type itself cannot be
	// part of the declaration above, so they are attached here.
	String.DeclareMethod(types.NewMethod("concat", String, String))
	String.DeclareMethod(types.NewMethod("toUpperCase", String))
	String.DeclareMethod(types.NewMethod("toLowerCase", String))

	Point.DeclareMethod(types.NewMethod("withX", Point, types.Double))
	Point.DeclareMethod(types.NewMethod("withY", Point, types.Double))
}

// NewRegistry returns a registry containing the built-in types and the
// standard classes and interfaces declared by this package.
func NewRegistry() *types.Registry {
	registry := types.NewRegistry()
	for _, standardType := range []types.Type{
		String,
		Paint,
		Color,
		Point,
		Size,
		GraphicsObject,
		Fillable,
		Strokable,
		Rectangle,
		GraphicsGroup,
		Window,
	} {
		registry.MustRegister(standardType)
	}
	return registry
}
