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

package ast_test

import (
	goErrors "errors"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/javelin-lang/javelin/ast"
	"github.com/javelin-lang/javelin/errors"
	"github.com/javelin-lang/javelin/stdlib"
	"github.com/javelin-lang/javelin/test_utils"
	"github.com/javelin-lang/javelin/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newFooClass declares the class used by most call tests:
// a class with one single-parameter method and one two-parameter method.
func newFooClass() *types.ClassType {
	return types.NewClassType(
		"Foo",
		[]types.Type{types.Object},
		nil,
		types.NewMethod("bar", nil, types.Int),
		types.NewMethod("baz", nil, stdlib.Paint, types.Int),
	)
}

func TestCheckVariable(t *testing.T) {

	t.Parallel()

	t.Run("class type", func(t *testing.T) {

		t.Parallel()

		variable := ast.NewVariable("rect", stdlib.Rectangle)

		require.NoError(t, variable.CheckTypes())
		assert.Same(t, stdlib.Rectangle, variable.StaticType())
	})

	t.Run("primitive type", func(t *testing.T) {

		t.Parallel()

		variable := ast.NewVariable("count", types.Int)

		require.NoError(t, variable.CheckTypes())
		assert.Same(t, types.Int, variable.StaticType())
	})

	t.Run("null type", func(t *testing.T) {

		t.Parallel()

		variable := ast.NewVariable("nothing", types.Null)

		require.NoError(t, variable.CheckTypes())
		assert.Same(t, types.Null, variable.StaticType())
	})
}

func TestCheckLiteral(t *testing.T) {

	t.Parallel()

	literal := ast.NewLiteral("42", types.Int)

	require.NoError(t, literal.CheckTypes())
	assert.Same(t, types.Int, literal.StaticType())
}

func TestCheckNullLiteral(t *testing.T) {

	t.Parallel()

	literal := ast.NewNullLiteral()

	require.NoError(t, literal.CheckTypes())
	assert.Same(t, types.Null, literal.StaticType())
}

func TestCheckMethodCall(t *testing.T) {

	t.Parallel()

	t.Run("without arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("p", stdlib.Point),
			"getX",
		)

		require.NoError(t, call.CheckTypes())
		assert.Same(t, types.Double, call.StaticType())
	})

	t.Run("argument of exact type", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			ast.NewLiteral("1", types.Int),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("argument of subtype", func(t *testing.T) {

		t.Parallel()

		// setFillColor is inherited from Fillable
		// and expects a Paint; Color is a subtype of Paint.
		call := ast.NewMethodCall(
			ast.NewVariable("rect", stdlib.Rectangle),
			"setFillColor",
			ast.NewVariable("red", stdlib.Color),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("null argument for object parameter", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("group", stdlib.GraphicsGroup),
			"add",
			ast.NewNullLiteral(),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("null argument for null parameter", func(t *testing.T) {

		t.Parallel()

		// A null parameter type is degenerate but declarable;
		// a null argument matches it by plain subtyping.
		degenerate := types.NewClassType(
			"Degenerate",
			[]types.Type{types.Object},
			nil,
			types.NewMethod("accept", nil, types.Null),
		)

		call := ast.NewMethodCall(
			ast.NewVariable("x", degenerate),
			"accept",
			ast.NewNullLiteral(),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("null argument for primitive parameter", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			ast.NewNullLiteral(),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.ArgumentTypeError{}, err)
	})

	t.Run("call on null literal", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewNullLiteral(),
			"bar",
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var nullReceiverErr *ast.NullReceiverError
		require.ErrorAs(t, err, &nullReceiverErr)

		assert.Equal(t,
			"cannot invoke method `bar()` on `null`",
			nullReceiverErr.Error(),
		)
	})

	t.Run("call on variable statically known to be null", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("nothing", types.Null),
			"hashCode",
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.NullReceiverError{}, err)
	})

	t.Run("call on null receiver fails regardless of arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewNullLiteral(),
			"equals",
			ast.NewLiteral("1", types.Int),
			ast.NewNullLiteral(),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.NullReceiverError{}, err)
	})

	t.Run("call on primitive receiver", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewLiteral("42", types.Int),
			"hashCode",
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var notObjectErr *ast.NotObjectTypeError
		require.ErrorAs(t, err, &notObjectErr)

		assert.Equal(t,
			"type `int` does not have methods",
			notObjectErr.Error(),
		)
	})

	t.Run("unknown method propagates the resolution failure", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("p", stdlib.Point),
			"getZ",
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var noSuchMethodErr *types.NoSuchMethodError
		require.ErrorAs(t, err, &noSuchMethodErr)

		assert.Same(t, stdlib.Point, noSuchMethodErr.Type)
		assert.Equal(t, "getZ", noSuchMethodErr.Name)
	})

	t.Run("too few arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentCountErr *ast.ArgumentCountError
		require.ErrorAs(t, err, &argumentCountErr)

		assert.Equal(t, 1, argumentCountErr.ParameterCount)
		assert.Equal(t, 0, argumentCountErr.ArgumentCount)
		assert.Equal(t,
			"wrong number of arguments for `Foo.bar()`: expected 1, got 0",
			argumentCountErr.Error(),
		)
	})

	t.Run("too many arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			ast.NewLiteral("1", types.Int),
			ast.NewLiteral("2", types.Int),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentCountErr *ast.ArgumentCountError
		require.ErrorAs(t, err, &argumentCountErr)

		assert.Equal(t, 1, argumentCountErr.ParameterCount)
		assert.Equal(t, 2, argumentCountErr.ArgumentCount)
	})

	t.Run("arity is checked before argument types", func(t *testing.T) {

		t.Parallel()

		// Both arguments are incompatible with the single int parameter,
		// but the count mismatch is reported, not the type mismatch.
		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			ast.NewNullLiteral(),
			ast.NewVariable("red", stdlib.Color),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.ArgumentCountError{}, err)
	})

	t.Run("argument type mismatch", func(t *testing.T) {

		t.Parallel()

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			ast.NewLiteral("1.0", types.Double),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentTypeErr *ast.ArgumentTypeError
		require.ErrorAs(t, err, &argumentTypeErr)

		assert.Equal(t,
			"`Foo.bar()` expects arguments of type (int), but got (double)",
			argumentTypeErr.Error(),
		)
		assert.Equal(t,
			"argument 1 is incompatible: expected `int`, got `double`",
			argumentTypeErr.SecondaryError(),
		)
	})

	t.Run("mismatch cites the first incompatible position", func(t *testing.T) {

		t.Parallel()

		// The first argument is compatible, the second is not:
		// the error must cite the second position.
		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"baz",
			ast.NewVariable("red", stdlib.Color),
			ast.NewLiteral("1.0", types.Double),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentTypeErr *ast.ArgumentTypeError
		require.ErrorAs(t, err, &argumentTypeErr)

		assert.Equal(t, 1, argumentTypeErr.ArgumentIndex)
		assert.Equal(t,
			"`Foo.baz()` expects arguments of type (Paint, int), but got (Color, double)",
			argumentTypeErr.Error(),
		)
		assert.Equal(t,
			"argument 2 is incompatible: expected `int`, got `double`",
			argumentTypeErr.SecondaryError(),
		)
	})

	t.Run("compatibility short-circuits at the first mismatch", func(t *testing.T) {

		t.Parallel()

		// Both arguments are incompatible;
		// the first position is the one cited.
		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"baz",
			ast.NewLiteral("1", types.Int),
			ast.NewLiteral("1.0", types.Double),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentTypeErr *ast.ArgumentTypeError
		require.ErrorAs(t, err, &argumentTypeErr)

		assert.Equal(t, 0, argumentTypeErr.ArgumentIndex)
	})

	t.Run("nested argument failure propagates", func(t *testing.T) {

		t.Parallel()

		// The inner call fails, so the outer call reports that failure
		// without reaching its own arity check:
		// two arguments for the single-parameter bar would otherwise
		// be a count mismatch.
		inner := ast.NewMethodCall(ast.NewNullLiteral(), "qux")

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"bar",
			inner,
			ast.NewLiteral("1", types.Int),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var nullReceiverErr *ast.NullReceiverError
		require.ErrorAs(t, err, &nullReceiverErr)

		assert.Equal(t, "qux", nullReceiverErr.MethodName)
	})

	t.Run("arguments are checked left to right", func(t *testing.T) {

		t.Parallel()

		first := ast.NewMethodCall(ast.NewNullLiteral(), "first")
		second := ast.NewMethodCall(ast.NewNullLiteral(), "second")

		call := ast.NewMethodCall(
			ast.NewVariable("foo", newFooClass()),
			"baz",
			first,
			second,
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var nullReceiverErr *ast.NullReceiverError
		require.ErrorAs(t, err, &nullReceiverErr)

		assert.Equal(t, "first", nullReceiverErr.MethodName)
	})

	t.Run("arguments are checked before the receiver", func(t *testing.T) {

		t.Parallel()

		receiver := ast.NewMethodCall(ast.NewNullLiteral(), "onReceiver")
		argument := ast.NewMethodCall(ast.NewNullLiteral(), "onArgument")

		call := ast.NewMethodCall(receiver, "equals", argument)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var nullReceiverErr *ast.NullReceiverError
		require.ErrorAs(t, err, &nullReceiverErr)

		assert.Equal(t, "onArgument", nullReceiverErr.MethodName)
	})

	t.Run("receiver subtree failure propagates", func(t *testing.T) {

		t.Parallel()

		inner := ast.NewMethodCall(ast.NewNullLiteral(), "getX")

		call := ast.NewMethodCall(inner, "hashCode")

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var nullReceiverErr *ast.NullReceiverError
		require.ErrorAs(t, err, &nullReceiverErr)

		assert.Equal(t, "getX", nullReceiverErr.MethodName)
	})
}

func TestCheckConstructorCall(t *testing.T) {

	t.Parallel()

	t.Run("without arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(stdlib.GraphicsGroup)

		require.NoError(t, call.CheckTypes())
		assert.Same(t, stdlib.GraphicsGroup, call.StaticType())
	})

	t.Run("with arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(
			stdlib.Point,
			ast.NewLiteral("0.0", types.Double),
			ast.NewLiteral("0.0", types.Double),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("argument of subtype", func(t *testing.T) {

		t.Parallel()

		// String's constructor expects an Object;
		// every class type is compatible.
		call := ast.NewConstructorCall(
			stdlib.String,
			ast.NewVariable("p", stdlib.Point),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("null argument for object parameter", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(
			stdlib.String,
			ast.NewNullLiteral(),
		)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("default constructor", func(t *testing.T) {

		t.Parallel()

		marker := types.NewClassType("Marker", []types.Type{types.Object}, nil)

		call := ast.NewConstructorCall(marker)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("Object is instantiable", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(types.Object)

		require.NoError(t, call.CheckTypes())
	})

	t.Run("primitive type is not instantiable", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(types.Int)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var notInstantiableErr *ast.NotInstantiableError
		require.ErrorAs(t, err, &notInstantiableErr)

		assert.Equal(t,
			"type `int` is not instantiable",
			notInstantiableErr.Error(),
		)
	})

	t.Run("null type is not instantiable", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(types.Null)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.NotInstantiableError{}, err)
	})

	t.Run("too few arguments", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(
			stdlib.Point,
			ast.NewLiteral("0.0", types.Double),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentCountErr *ast.ArgumentCountError
		require.ErrorAs(t, err, &argumentCountErr)

		assert.Equal(t, 2, argumentCountErr.ParameterCount)
		assert.Equal(t, 1, argumentCountErr.ArgumentCount)
		assert.Equal(t,
			"wrong number of arguments for `Point` constructor: expected 2, got 1",
			argumentCountErr.Error(),
		)
	})

	t.Run("argument type mismatch", func(t *testing.T) {

		t.Parallel()

		call := ast.NewConstructorCall(
			stdlib.Point,
			ast.NewLiteral("0.0", types.Double),
			ast.NewLiteral("0", types.Int),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		var argumentTypeErr *ast.ArgumentTypeError
		require.ErrorAs(t, err, &argumentTypeErr)

		assert.Equal(t, 1, argumentTypeErr.ArgumentIndex)
		assert.Equal(t,
			"`Point` constructor expects arguments of type (double, double), but got (double, int)",
			argumentTypeErr.Error(),
		)
	})

	t.Run("nested argument failure propagates", func(t *testing.T) {

		t.Parallel()

		inner := ast.NewMethodCall(ast.NewNullLiteral(), "getX")

		call := ast.NewConstructorCall(
			stdlib.Point,
			inner,
			ast.NewLiteral("0.0", types.Double),
		)

		err := call.CheckTypes()
		test_utils.RequireError(t, err)

		assert.IsType(t, &ast.NullReceiverError{}, err)
	})
}

// TestCheckErrorTaxonomy pins the error kinds apart:
// a null receiver is its own kind, the checker's own errors are
// type errors, and resolution failures come from the type model.
func TestCheckErrorTaxonomy(t *testing.T) {

	t.Parallel()

	isTypeError := func(err error) bool {
		var typeErr ast.TypeError
		return goErrors.As(err, &typeErr)
	}

	t.Run("null receiver error", func(t *testing.T) {

		t.Parallel()

		err := ast.NewMethodCall(ast.NewNullLiteral(), "bar").CheckTypes()

		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
		assert.False(t, isTypeError(err))
	})

	t.Run("type errors", func(t *testing.T) {

		t.Parallel()

		foo := newFooClass()

		typeErrs := []error{
			ast.NewMethodCall(ast.NewLiteral("1", types.Int), "bar").CheckTypes(),
			ast.NewMethodCall(ast.NewVariable("foo", foo), "bar").CheckTypes(),
			ast.NewMethodCall(
				ast.NewVariable("foo", foo),
				"bar",
				ast.NewLiteral("1.0", types.Double),
			).CheckTypes(),
			ast.NewConstructorCall(types.Int).CheckTypes(),
		}

		for _, err := range typeErrs {
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err))
			assert.True(t, isTypeError(err))
		}
	})

	t.Run("resolution failure", func(t *testing.T) {

		t.Parallel()

		err := ast.NewMethodCall(
			ast.NewVariable("p", stdlib.Point),
			"getZ",
		).CheckTypes()

		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
		assert.False(t, isTypeError(err))
	})
}

func TestCheckProperties(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	parameterTypes := []types.Type{
		types.Void,
		types.Boolean,
		types.Int,
		types.Double,
		types.Object,
		stdlib.String,
		stdlib.Paint,
		stdlib.Color,
		stdlib.Point,
		stdlib.Rectangle,
	}

	properties.Property(
		"a null argument is accepted exactly for object-category parameters",
		prop.ForAll(
			func(i int) bool {
				parameterType := parameterTypes[i]

				host := types.NewClassType(
					"Host",
					[]types.Type{types.Object},
					nil,
					types.NewMethod("accept", nil, parameterType),
				)

				err := ast.NewMethodCall(
					ast.NewVariable("host", host),
					"accept",
					ast.NewNullLiteral(),
				).CheckTypes()

				if parameterType.IsSubtypeOf(types.Object) {
					return err == nil
				}
				return err != nil
			},
			gen.IntRange(0, len(parameterTypes)-1),
		),
	)

	properties.Property(
		"a method call on a null receiver never checks",
		prop.ForAll(
			func(methodName string, argumentCount int) bool {
				arguments := make([]ast.Expression, argumentCount)
				for i := range arguments {
					arguments[i] = ast.NewLiteral("1", types.Int)
				}

				err := ast.NewMethodCall(
					ast.NewNullLiteral(),
					methodName,
					arguments...,
				).CheckTypes()

				var nullReceiverErr *ast.NullReceiverError
				return goErrors.As(err, &nullReceiverErr)
			},
			gen.AlphaString(),
			gen.IntRange(0, 3),
		),
	)

	properties.TestingRun(t)
}

// TestCheckTypesConcurrently validates one shared tree from multiple
// goroutines. Expressions and the type model are immutable, so this
// must be safe without any synchronization.
func TestCheckTypesConcurrently(t *testing.T) {

	t.Parallel()

	expr := ast.NewMethodCall(
		ast.NewVariable("rect", stdlib.Rectangle),
		"setFillColor",
		ast.NewConstructorCall(
			stdlib.Color,
			ast.NewLiteral("255", types.Int),
			ast.NewLiteral("0", types.Int),
			ast.NewLiteral("0", types.Int),
		),
	)

	const goroutines = 8
	const iterations = 100

	failures := make(chan error, goroutines)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if err := expr.CheckTypes(); err != nil {
					failures <- err
					return
				}
				if expr.StaticType() != types.Void {
					failures <- goErrors.New("unexpected static type")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		require.NoError(t, err)
	}
}
