package internal

import (
	"context"
	"fmt"
	"github.com/markusressel/pid2go/internal/api"
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/plant"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	runIdLayout     = "20060102-150405"
	shutdownTimeout = 5 * time.Second
)

// Daemon holds all objects of a running control loop
type Daemon struct {
	Controller *pid.Controller
	Plant      *plant.Plant
	Setpoint   *control_loop.SetpointRamp
	Driver     *control_loop.Driver
	// nil if tracing is disabled
	Recorder *persistence.Recorder
}

// NewDaemon wires the controller, plant, setpoint ramp and trace recorder
// described by the given configuration.
func NewDaemon(config configuration.Configuration, clk clock.Clock) (*Daemon, error) {
	p := plant.NewPlant(config.Plant)

	controller, err := pid.NewController(config.Controller.Mode, config.ToParameters(), p, clk)
	if err != nil {
		return nil, err
	}

	ramp := control_loop.NewSetpointRamp(clk, config.Setpoint.Initial, config.Setpoint.MaxChangePerSecond)

	var observers []control_loop.Observer
	var recorder *persistence.Recorder
	if config.Trace.Enabled {
		pers := persistence.NewPersistence(config.Trace.DbPath)
		if err = pers.Init(); err != nil {
			return nil, err
		}
		started := clk.Now()
		recorder, err = persistence.NewRecorder(pers, clk, persistence.RunInfo{
			Id:      started.Format(runIdLayout),
			Mode:    config.Controller.Mode,
			Started: started,
		})
		if err != nil {
			return nil, err
		}
		observers = append(observers, recorder)
	}

	driver := control_loop.NewDriver(controller, p, ramp, config.Controller.TickRate, observers...)

	return &Daemon{
		Controller: controller,
		Plant:      p,
		Setpoint:   ramp,
		Driver:     driver,
		Recorder:   recorder,
	}, nil
}

func RunDaemon() {
	config := configuration.CurrentConfig

	daemon, err := NewDaemon(config, clock.System())
	if err != nil {
		ui.Fatal("Unable to create controller: %v", err)
	}
	if daemon.Recorder != nil {
		ui.Info("Recording trace of run %s to %s", daemon.Recorder.RunId(), config.Trace.DbPath)
	}

	statistics.Register(statistics.NewControllerCollector(daemon.Controller))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			return daemon.Driver.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	if config.Api.Enabled {
		// === REST api
		rest, err := api.CreateRestService(api.Dependencies{
			Controller: daemon.Controller,
			Setpoint:   daemon.Setpoint,
			Plant:      daemon.Plant,
			Config:     &config,
			Registerer: prometheus.DefaultRegisterer,
		})
		if err != nil {
			ui.Fatal("Unable to create REST api: %v", err)
		}

		g.Add(func() error {
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			ui.Info("Starting REST api on %s", addr)
			if err := rest.Start(addr); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping REST api: %v", err)
			}
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addServer(&g, "statistics", fmt.Sprintf(":%d", config.Statistics.Port), mux)
	}
	if config.Profiling.Enabled {
		// === pprof
		addServer(&g, "profiling", fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port), profilingHandler())
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if daemon.Recorder != nil {
		if flushErr := daemon.Recorder.Flush(); flushErr != nil {
			ui.Warning("Unable to write trace: %v", flushErr)
		}
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func addServer(g *run.Group, name string, addr string, handler http.Handler) {
	server := &http.Server{Addr: addr, Handler: handler}
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			return err
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}

func profilingHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
