// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/uber/fwcore/pkg/common/config"
	"github.com/uber/fwcore/pkg/common/health"
	"github.com/uber/fwcore/pkg/common/logging"
	"github.com/uber/fwcore/pkg/common/metrics"
	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/mesos/mhttp"
	"github.com/uber/fwcore/pkg/framework/scheduler"
	"github.com/uber/fwcore/pkg/storage/stores"
)

const _appName = "fwcore"

var (
	version string
	app     = kingpin.New(_appName, "Mesos framework scheduler core")

	debug = app.Flag(
		"debug", "enable debug logging").
		Short('d').
		Default("false").
		Envar("ENABLE_DEBUG_LOGGING").
		Bool()

	cfgFiles = app.Flag(
		"config",
		"YAML config files (can be provided multiple times to merge configs)").
		Short('c').
		Required().
		ExistingFiles()

	httpPort = app.Flag(
		"http-port", "HTTP port (http_port override) (set $HTTP_PORT to override)").
		Envar("HTTP_PORT").
		Int()

	zkPath = app.Flag(
		"mesos-zk-path", "Mesos master zk://host:port/path or host:port "+
			"(mesos.zk_path override) (set $MESOS_ZK_PATH to override)").
		Envar("MESOS_ZK_PATH").
		String()

	frameworkName = app.Flag(
		"framework-name", "Framework name (mesos.framework.name override) "+
			"(set $FRAMEWORK_NAME to override)").
		Envar("FRAMEWORK_NAME").
		String()

	mesosSecretFile = app.Flag(
		"mesos-secret-file", "Secret file of the framework principal "+
			"(mesos.secret_file override) (set $MESOS_SECRET_FILE to override)").
		Envar("MESOS_SECRET_FILE").
		String()

	storageType = app.Flag(
		"storage-type", "Storage backend (storage.type override) "+
			"(set $STORAGE_TYPE to override)").
		Envar("STORAGE_TYPE").
		Enum("memory", "zookeeper")

	storageZkServers = app.Flag(
		"storage-zk-server", "Storage ZooKeeper servers. Specify multiple times "+
			"for multiple servers (storage.zookeeper.servers override) "+
			"(set $STORAGE_ZK_SERVERS to override)").
		Envar("STORAGE_ZK_SERVERS").
		Strings()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	var cfg Config
	if err := config.Parse(&cfg, *cfgFiles...); err != nil {
		log.WithError(err).Fatal("Cannot parse yaml config")
	}
	applyFlags(&cfg)
	if err := config.Validate(&cfg); err != nil {
		log.WithError(err).Fatal("Invalid config after flag overrides")
	}

	if *debug {
		cfg.Logging.Level = log.DebugLevel.String()
	}
	initialLevel, err := logging.Setup(cfg.Logging, log.Fields{"app": _appName})
	if err != nil {
		log.WithError(err).Fatal("Cannot set up logging")
	}
	log.WithField("config", cfg).Info("Loaded framework configuration")

	var dispatcher *scheduler.Dispatcher
	rootScope, scopeCloser, mux, err := metrics.InitMetricScope(
		&cfg.Metrics,
		_appName,
		func() bool { return dispatcher != nil && dispatcher.IsReady() },
	)
	if err != nil {
		log.WithError(err).Fatal("Cannot set up metrics")
	}
	defer scopeCloser.Close()

	mux.HandleFunc(logging.LevelOverwrite, logging.LevelOverwriteHandler(initialLevel))

	if rc := cfg.Metrics.RuntimeMetrics; rc != nil && rc.Enabled {
		collector := metrics.NewRuntimeCollector(rootScope, clock.New(), rc.CollectInterval)
		collector.Start()
		defer collector.Stop()
	}

	store, storeCloser := stores.MustCreateStore(&cfg.Storage, rootScope)
	defer storeCloser.Close()

	detector, stopDetector, err := mesos.NewDetector(cfg.Mesos.ZkPath)
	if err != nil {
		log.WithError(err).Fatal("Cannot create Mesos master detector")
	}
	defer stopDetector()

	authHeader, err := mesos.GetAuthHeader(&cfg.Mesos)
	if err != nil {
		log.WithError(err).Fatal("Cannot load Mesos authorization header")
	}

	outbound := mhttp.NewOutbound(
		rootScope, detector, mhttp.WithOutboundHeaders(authHeader))
	driver := mesos.NewSchedulerDriver(&cfg.Mesos, store, outbound, rootScope)

	name := cfg.Mesos.Framework.Name
	client := eventclient.NewMultiplexer(cfg.Framework.Clients, rootScope)
	if err := client.AddClient(name, eventclient.NewStoreClient(name, store)); err != nil {
		log.WithError(err).Fatal("Cannot register event client")
	}

	if len(cfg.Framework.Roles) == 0 {
		cfg.Framework.Roles = cfg.Mesos.Framework.Roles
	}
	dispatcher, err = scheduler.NewDispatcher(
		cfg.Framework,
		name,
		driver,
		store,
		store,
		client,
		clock.New(),
		scheduler.OSExiter,
		rootScope,
	)
	if err != nil {
		log.WithError(err).Fatal("Cannot create framework scheduler")
	}
	defer dispatcher.Stop()

	heartbeat := health.NewHeartbeat(rootScope, cfg.Health, clock.New(), dispatcher.IsReady)
	heartbeat.Start()
	defer heartbeat.Stop()

	for _, r := range client.HTTPResources() {
		if ep, ok := r.(eventclient.Endpoint); ok {
			log.WithField("path", ep.Path).Info("Serving client resource")
			mux.Handle(ep.Path, ep.Handler)
		}
	}

	go dispatcher.AwaitReady()
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		log.WithError(err).WithField("port", cfg.HTTPPort).Fatal("Cannot listen")
	}
	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()
	defer server.Close()
	dispatcher.MarkReady()

	inbound := mhttp.NewInbound(
		rootScope,
		detector,
		driver,
		dispatcher,
		mhttp.WithInboundHeaders(authHeader),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := inbound.Start(ctx); err != nil {
		log.WithError(err).Error("Cannot subscribe to Mesos master")
		scheduler.OSExiter(scheduler.ExitRegistrationFailure,
			fmt.Sprintf("subscription failed: %v", err))
	}
	defer inbound.Stop()

	log.WithFields(log.Fields{
		"http_port": cfg.HTTPPort,
		"framework": name,
	}).Info("Started framework scheduler")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	log.WithField("signal", sig.String()).Info("Shutting down framework scheduler")
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *Config) {
	if *httpPort != 0 {
		cfg.HTTPPort = *httpPort
	}
	if *zkPath != "" {
		cfg.Mesos.ZkPath = *zkPath
	}
	if *frameworkName != "" && cfg.Mesos.Framework != nil {
		cfg.Mesos.Framework.Name = *frameworkName
	}
	if *mesosSecretFile != "" {
		cfg.Mesos.SecretFile = *mesosSecretFile
	}
	if *storageType != "" {
		cfg.Storage.Type = *storageType
	}
	if len(*storageZkServers) > 0 && cfg.Storage.ZooKeeper != nil {
		cfg.Storage.ZooKeeper.Servers = *storageZkServers
	}
}
