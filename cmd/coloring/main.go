// Copyright 2025 Anapaya Systems
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

package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/sdnprobe/coloring/coloring"
	"github.com/sdnprobe/coloring/coloring/config"
	"github.com/sdnprobe/coloring/coloring/events"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/mgmtapi"
	"github.com/sdnprobe/coloring/coloring/registry"
	"github.com/sdnprobe/coloring/coloring/synchronizer"
	"github.com/sdnprobe/coloring/coloring/tablegroup"
	"github.com/sdnprobe/coloring/coloring/topology"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/private/app"
	"github.com/sdnprobe/coloring/private/app/launcher"
	"github.com/sdnprobe/coloring/private/periodic"
	"github.com/sdnprobe/coloring/private/storage"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "Coloring Service",
		Main:       realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	metrics := coloring.NewMetrics()
	trCloser, err := coloring.InitTracer(globalCfg.Tracing, globalCfg.General.ID)
	if err != nil {
		return serrors.Wrap("initializing tracer", err)
	}
	defer trCloser.Close()

	g, errCtx := errgroup.WithContext(ctx)
	var cleanup app.Cleanup
	g.Go(func() error {
		defer log.HandlePanic()
		<-errCtx.Done()
		return cleanup.Do()
	})

	cc := globalCfg.Coloring
	client := &http.Client{Timeout: cc.RequestTimeout.Duration}

	var journal storage.JournalDB
	if globalCfg.Journal.Enabled() {
		journalCfg := storage.SetID(globalCfg.Journal, globalCfg.General.ID)
		journal, err = storage.NewJournalStorage(*journalCfg,
			metrics.Journal(), metrics.Cleaner())
		if err != nil {
			return serrors.Wrap("initializing journal", err)
		}
		cleanup.Add(journal.Close)
	}

	failures := flow.NewFailureCache(cc.FailureTTL.Duration)
	emitter := &flow.Emitter{
		Sender: flow.HTTPSender{
			URLTemplate: cc.FlowManagerURL,
			Client:      client,
		},
		Failures: failures,
		Metrics:  metrics.Emitter(),
	}
	if journal != nil {
		emitter.Journal = journal
	}

	var publisher events.Notifier = events.LogPublisher{}
	if cc.AckURL != "" {
		publisher = events.HTTPPublisher{URL: cc.AckURL, Client: client}
	}
	acks := &events.Recorder{Next: publisher}

	reg := registry.New(metrics.Registry())
	tables := tablegroup.New(cc.TableGroups, nil)
	sync := &synchronizer.Synchronizer{
		Registry:          reg,
		Tables:            tables,
		Emitter:           emitter,
		Notifier:          acks,
		ColorField:        cc.ColorField,
		CookiePrefix:      cc.CookiePrefix,
		SupportedVersions: cc.SupportedVersions,
		Metrics:           metrics.Synchronizer(),
	}
	dispatcher := events.NewDispatcher(sync, metrics.Events())
	log.Info("Coloring initialized",
		"color_field", cc.ColorField,
		"table_groups", tables.Allowed(),
		"events", dispatcher.Names(),
	)

	var source topology.Source = topology.HTTPSource{URL: cc.TopologyURL, Client: client}
	if cc.TopologyFile != "" {
		source = topology.FileSource{Path: cc.TopologyFile}
	}
	poller := &topology.Poller{
		Source: source,
		Handler: func(ctx context.Context, snap topology.Snapshot) {
			sync.HandleTopology(ctx, snap)
		},
		Metrics: metrics.Poller(),
	}
	interval := cc.ColoringInterval.Duration
	pollRunner := periodic.StartWithMetrics(poller, metrics.Periodic(poller.Name()),
		interval, max(interval, cc.RequestTimeout.Duration))
	cleanup.Add(func() error { pollRunner.Kill(); return nil })

	g.Go(func() error {
		defer log.HandlePanic()
		reload := app.SIGHUPChannel(errCtx)
		for {
			select {
			case <-errCtx.Done():
				return nil
			case <-reload:
				log.Info("Received SIGHUP, refreshing topology")
				pollRunner.TriggerRun()
			}
		}
	})

	// Initialize and start the query and event API.
	if globalCfg.API.Addr != "" {
		r := chi.NewRouter()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
		}))
		server := mgmtapi.Server{
			Colors:   sync,
			Tables:   tables,
			Events:   dispatcher,
			Failures: failures,
			Acks:     acks,
			Settings: mgmtapi.Settings{
				ColorField:       cc.ColorField,
				ColoringInterval: interval,
				TopologyURL:      cc.TopologyURL,
				FlowManagerURL:   cc.FlowManagerURL,
			},
			Diagnostics: func(w io.Writer) {
				reg.DiagnosticsWrite(w, cc.ColorField)
			},
			Config: &globalCfg,
		}
		if journal != nil {
			server.Journal = journal
		}
		log.Info("Exposing API", "addr", globalCfg.API.Addr)
		h := mgmtapi.HandlerFromMuxWithBaseURL(&server, r, mgmtapi.BaseURL)
		mgmtServer := &http.Server{
			Addr:    globalCfg.API.Addr,
			Handler: h,
		}
		cleanup.Add(mgmtServer.Close)
		g.Go(func() error {
			defer log.HandlePanic()
			err := mgmtServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving coloring API", err)
			}
			return nil
		})
	} else {
		log.Info("API disabled, inbound events are not accepted")
	}
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx)
	})

	return g.Wait()
}
