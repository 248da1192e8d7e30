package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	global := newEnv(nil)
	middle := newEnv(global)
	local := newEnv(middle)

	global.define("a", lumenNumber(1))
	middle.define("a", lumenNumber(2))

	name := &token{token: tkIdentifier, lexeme: "a", line: 7}

	// get and assign only look at the local map
	_, err := local.get(name)
	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.True(t, errors.Is(err, errUndefinedVar))
	assert.Equal(t, 7, runtimeErr.Line())
	assert.Error(t, local.assign(name, nil))

	v, err := global.get(name)
	require.NoError(t, err)
	assert.Equal(t, lumenNumber(1), v)

	assert.Equal(t, lumenNumber(2), local.getAt(1, "a"))
	assert.Equal(t, lumenNumber(1), local.getAt(2, "a"))

	local.assignAt(2, "a", lumenString("x"))
	assert.Equal(t, lumenString("x"), global.values["a"])
	assert.Equal(t, lumenNumber(2), middle.values["a"])

	assert.Same(t, global, local.ancestor(2))
}
