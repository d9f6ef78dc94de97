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

// Package app contains helpers shared by service binaries.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Cleanup is a list of cleanup functions that are run in reverse order of
// registration.
type Cleanup struct {
	fns []func() error
}

// Add registers a cleanup function.
func (c *Cleanup) Add(f func() error) {
	c.fns = append(c.fns, f)
}

// Do runs all cleanup functions. All functions are run even if some fail;
// the failures are returned as a single error.
func (c *Cleanup) Do() error {
	var errs serrors.List
	for i := len(c.fns) - 1; i >= 0; i-- {
		if err := c.fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.fns = nil
	return errs.ToError()
}

// SIGHUPChannel returns a channel that receives a value for every SIGHUP the
// process gets. The subscription ends when ctx is done.
func SIGHUPChannel(ctx context.Context) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)
	reload := make(chan struct{}, 1)
	go func() {
		defer log.HandlePanic()
		defer signal.Stop(sig)
		for {
			select {
			case <-sig:
				select {
				case reload <- struct{}{}:
				default:
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return reload
}

// WithSignal derives a child context that is cancelled when any of the
// provided signals is received.
func WithSignal(ctx context.Context, sig ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, sig...)
}
