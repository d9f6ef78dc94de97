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

	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

var (
	// ErrInvalidInputData indicates invalid data was tried to input in the DB.
	ErrInvalidInputData = serrors.New("db: input data invalid")
	// ErrDataInvalid indicates invalid data is stored in the DB.
	ErrDataInvalid = serrors.New("db: db data invalid")
	// ErrSchema indicates the stored schema version does not match.
	ErrSchema = serrors.New("db: schema version mismatch")
	// ErrReadFailed indicates that reading from the DB failed.
	ErrReadFailed = serrors.New("db: read failed")
	// ErrWriteFailed indicates that writing to the DB failed.
	ErrWriteFailed = serrors.New("db: write failed")
	// ErrTx indicates a transaction error.
	ErrTx = serrors.New("db: transaction error")
)

// NewTxError wraps err as a transaction error.
func NewTxError(msg string, err error, logCtx ...any) error {
	return classify(ErrTx, msg, err, logCtx)
}

// NewInputDataError wraps err as an input validation error.
func NewInputDataError(msg string, err error, logCtx ...any) error {
	return classify(ErrInvalidInputData, msg, err, logCtx)
}

// NewDataError wraps err as an error about invalid stored data.
func NewDataError(msg string, err error, logCtx ...any) error {
	return classify(ErrDataInvalid, msg, err, logCtx)
}

// NewReadError wraps err as a read error.
func NewReadError(msg string, err error, logCtx ...any) error {
	return classify(ErrReadFailed, msg, err, logCtx)
}

// NewWriteError wraps err as a write error.
func NewWriteError(msg string, err error, logCtx ...any) error {
	return classify(ErrWriteFailed, msg, err, logCtx)
}

func classify(class error, msg string, err error, logCtx []any) error {
	return serrors.Join(class, err, append([]any{"detailMsg", msg}, logCtx...)...)
}

// ErrToMetricLabel classifies errors from the db package into a metric label.
func ErrToMetricLabel(err error) string {
	switch {
	case err == nil:
		return prom.Success
	case serrors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return prom.ErrTimeout
	case errors.Is(err, ErrInvalidInputData):
		return "err_input_data_invalid"
	case errors.Is(err, ErrDataInvalid):
		return "err_db_data_invalid"
	case errors.Is(err, ErrReadFailed):
		return "err_db_read"
	case errors.Is(err, ErrWriteFailed):
		return "err_db_write"
	case errors.Is(err, ErrTx):
		return "err_db_transaction"
	default:
		return prom.ErrNotClassified
	}
}
