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

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/pkg/private/prom"
)

func TestErrFmt(t *testing.T) {
	f := func(t *testing.T, expect error, err error) {
		t.Helper()
		expectedMsg := fmt.Sprintf("%s {detailMsg=test}", expect)
		require.Equal(t, expectedMsg, err.Error())
	}

	f(t, ErrTx, NewTxError("test", nil))
	f(t, ErrInvalidInputData, NewInputDataError("test", nil))
	f(t, ErrDataInvalid, NewDataError("test", nil))
	f(t, ErrReadFailed, NewReadError("test", nil))
	f(t, ErrWriteFailed, NewWriteError("test", nil))
}

func TestErrIs(t *testing.T) {
	cause := errors.New("disk full")
	err := NewWriteError("inserting request", cause, "switch", "00:01")
	require.ErrorIs(t, err, ErrWriteFailed)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrReadFailed)
}

func TestErrToMetricLabel(t *testing.T) {
	testCases := map[string]struct {
		Err   error
		Label string
	}{
		"nil":     {Err: nil, Label: prom.Success},
		"read":    {Err: NewReadError("select", nil), Label: "err_db_read"},
		"write":   {Err: NewWriteError("insert", errors.New("full")), Label: "err_db_write"},
		"tx":      {Err: NewTxError("begin", nil), Label: "err_db_transaction"},
		"input":   {Err: NewInputDataError("bad", nil), Label: "err_input_data_invalid"},
		"timeout": {Err: context.DeadlineExceeded, Label: prom.ErrTimeout},
		"other":   {Err: errors.New("other"), Label: prom.ErrNotClassified},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.Label, ErrToMetricLabel(tc.Err))
		})
	}
}
