// Copyright 2019 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

type testErrType struct {
	msg string
}

func (e *testErrType) Error() string {
	return e.msg
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestIsTimeout(t *testing.T) {
	assert.False(t, serrors.IsTimeout(serrors.New("no timeout")))
	assert.True(t, serrors.IsTimeout(serrors.Wrap("sending", timeoutErr{})))
}

func TestWrap(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		err := serrors.New("simple err")
		wrapped := serrors.Wrap("msg", err, "someCtx", "someValue")
		assert.ErrorIs(t, wrapped, err)
		assert.ErrorIs(t, wrapped, wrapped)
	})
	t.Run("As", func(t *testing.T) {
		err := &testErrType{msg: "test err"}
		wrapped := serrors.Wrap("msg", err, "someCtx", "someValue")
		var errAs *testErrType
		require.True(t, errors.As(wrapped, &errAs))
		assert.Equal(t, err, errAs)
	})
	t.Run("string", func(t *testing.T) {
		err := serrors.Wrap("installing flows", errors.New("refused"),
			"switch", "00:01", "action", "install")
		assert.Equal(t, "installing flows {action=install; switch=00:01}: refused", err.Error())
	})
}

func TestJoin(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		base := errors.New("base")
		cause := serrors.New("cause")
		joined := serrors.Join(base, cause, "k", "v")
		assert.ErrorIs(t, joined, base)
		assert.ErrorIs(t, joined, cause)
	})
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, serrors.Join(nil, nil))
	})
	t.Run("nil base", func(t *testing.T) {
		cause := errors.New("cause")
		assert.ErrorIs(t, serrors.Join(nil, cause), cause)
	})
}

func TestContext(t *testing.T) {
	base := errors.New("base")
	err := serrors.Wrap("outer", serrors.Join(base, nil, "switch", "00:02"), "action", "delete")
	v, ok := serrors.Context(err, "switch")
	require.True(t, ok)
	assert.Equal(t, "00:02", v)
	v, ok = serrors.Context(err, "action")
	require.True(t, ok)
	assert.Equal(t, "delete", v)
	_, ok = serrors.Context(err, "missing")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	var l serrors.List
	assert.NoError(t, l.ToError())
	target := errors.New("target")
	l = append(l, serrors.New("first"), serrors.Wrap("second", target))
	err := l.ToError()
	require.Error(t, err)
	assert.ErrorIs(t, err, target)
	assert.Equal(t, "[ first; second: target ]", err.Error())

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, enc.AddArray("errs", l))
	assert.Len(t, enc.Fields["errs"], 2)
}
