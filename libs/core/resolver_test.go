package core

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorArg_NilBecomesZeroValue(t *testing.T) {
	value, err := constructorArg(reflect.TypeOf(0), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, value.Interface())

	value, err = constructorArg(TypeKey((*weapon)(nil)), nil)
	require.NoError(t, err)
	assert.True(t, value.IsNil())
}

func TestConstructorArg_MultiInjectSliceConversion(t *testing.T) {
	resolved := []interface{}{katana{}, shuriken{}}

	value, err := constructorArg(reflect.TypeOf([]weapon{}), resolved)
	require.NoError(t, err)

	weapons := value.Interface().([]weapon)
	require.Len(t, weapons, 2)
	assert.Equal(t, 10, weapons[0].damage())
	assert.Equal(t, 3, weapons[1].damage())
}

func TestConstructorArg_SliceElementMismatch(t *testing.T) {
	resolved := []interface{}{katana{}, "not a weapon"}

	_, err := constructorArg(reflect.TypeOf([]weapon{}), resolved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assignable")
}

func TestConstructorArg_TypeMismatch(t *testing.T) {
	_, err := constructorArg(reflect.TypeOf(0), "a string")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assignable")
}

func TestInvokeConstructor_ArityMismatch(t *testing.T) {
	_, err := invokeConstructor("Ninja", newNinja, nil)
	require.Error(t, err)

	var invalid *InvalidBindingError
	assert.ErrorAs(t, err, &invalid)
}

func TestInvokeConstructor_SingleReturn(t *testing.T) {
	value, err := invokeConstructor("Weapon", newKatana, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, value.(weapon).damage())
}
