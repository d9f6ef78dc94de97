// Copyright 2020 Anapaya Systems
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

package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/log/testlog"
	"github.com/sdnprobe/coloring/private/config"
)

func TestConfigValidate(t *testing.T) {
	testCases := map[string]struct {
		Config    log.Config
		Assertion assert.ErrorAssertionFunc
	}{
		"defaults": {
			Assertion: assert.NoError,
		},
		"invalid level": {
			Config:    log.Config{Console: log.ConsoleConfig{Level: "loud"}},
			Assertion: assert.Error,
		},
		"invalid format": {
			Config:    log.Config{Console: log.ConsoleConfig{Format: "xml"}},
			Assertion: assert.Error,
		},
		"debug json": {
			Config:    log.Config{Console: log.ConsoleConfig{Level: "debug", Format: "json"}},
			Assertion: assert.NoError,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc.Config.InitDefaults()
			tc.Assertion(t, tc.Config.Validate())
		})
	}
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, log.Setup(log.Config{Console: log.ConsoleConfig{Format: "json"}}))
	t.Cleanup(func() { _ = log.SetLevel("info") })
	assert.Equal(t, "info", log.ConsoleLevel())
	require.NoError(t, log.SetLevel("debug"))
	assert.Equal(t, "debug", log.ConsoleLevel())
	assert.Error(t, log.SetLevel("chatty"))
}

func TestFromCtx(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		assert.NotNil(t, log.FromCtx(nil)) //nolint:staticcheck
	})
	t.Run("attached logger", func(t *testing.T) {
		rec := testlog.NewRecorder()
		ctx := log.CtxWith(context.Background(), rec)
		log.FromCtx(ctx).Info("hello", "switch", "00:01")
		assert.Equal(t, []string{"hello"}, rec.Messages(log.InfoLevel))
	})
	t.Run("with labels", func(t *testing.T) {
		rec := testlog.NewRecorder()
		ctx := log.CtxWith(context.Background(), rec)
		ctx, _ = log.WithLabels(ctx, "component", "test")
		log.FromCtx(ctx).Error("boom")
		entries := rec.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "test", entries[0].ContextMap()["component"])
	})
	t.Run("span", func(t *testing.T) {
		tracer := mocktracer.New()
		span := tracer.StartSpan("op")
		rec := testlog.NewRecorder()
		ctx := log.CtxWith(context.Background(), rec)
		ctx = opentracing.ContextWithSpan(ctx, span)
		l := log.FromCtx(ctx)
		_, ok := l.(log.Span)
		require.True(t, ok)
		l.Info("traced")
		span.Finish()
		spans := tracer.FinishedSpans()
		require.Len(t, spans, 1)
		assert.Len(t, spans[0].Logs(), 1)
	})
}

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg log.Config
	config.WriteSample(&sample, nil, nil, &cfg)
	assert.Contains(t, sample.String(), "[log.console]")

	var decoded struct {
		Log log.Config `toml:"log"`
	}
	require.NoError(t, config.Decode(sample.Bytes(), &decoded))
	assert.Equal(t, "info", decoded.Log.Console.Level)
	assert.Equal(t, "human", decoded.Log.Console.Format)
	decoded.Log.InitDefaults()
	assert.NoError(t, decoded.Log.Validate())
}
