package statistics

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

// SnapshotProvider is implemented by pid.Controller
type SnapshotProvider interface {
	Log() pid.Snapshot
}

type ControllerCollector struct {
	controller SnapshotProvider

	gain         *prometheus.Desc
	setpoint     *prometheus.Desc
	position     *prometheus.Desc
	integral     *prometheus.Desc
	lastError    *prometheus.Desc
	meanAbsError *prometheus.Desc
	output       *prometheus.Desc
	escalated    *prometheus.Desc
	windowSize   *prometheus.Desc
	ticks        *prometheus.Desc
	retunes      *prometheus.Desc
	boosts       *prometheus.Desc
	reverts      *prometheus.Desc
}

func NewControllerCollector(controller SnapshotProvider) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		gain: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "gain"),
			"Currently active gain of the controller",
			[]string{"mode", "term"}, nil,
		),
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "setpoint"),
			"Setpoint of the last tick",
			[]string{"mode"}, nil,
		),
		position: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "position"),
			"Measured position of the controlled system",
			[]string{"mode"}, nil,
		),
		integral: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "integral"),
			"Accumulated error over time",
			[]string{"mode"}, nil,
		),
		lastError: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "error"),
			"Error of the last tick",
			[]string{"mode"}, nil,
		),
		meanAbsError: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "mean_abs_error"),
			"Mean absolute error over the recent ticks",
			[]string{"mode"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "output"),
			"Clamped output of the last tick",
			[]string{"mode"}, nil,
		),
		escalated: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "escalation_active"),
			"1 while an escalation episode is running",
			[]string{"mode"}, nil,
		),
		windowSize: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "oscillation_window_size"),
			"Number of samples in the self-tuning oscillation window",
			[]string{"mode"}, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Number of ticks",
			[]string{"mode"}, nil,
		),
		retunes: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "retunes_total"),
			"Number of gain re-estimations by the self-tuning estimator",
			[]string{"mode"}, nil,
		),
		boosts: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "escalation_boosts_total"),
			"Number of ticks on which gains were boosted by the escalation policy",
			[]string{"mode"}, nil,
		),
		reverts: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "escalation_reverts_total"),
			"Number of escalation episodes that ended within tolerance",
			[]string{"mode"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.gain
	ch <- collector.setpoint
	ch <- collector.position
	ch <- collector.integral
	ch <- collector.lastError
	ch <- collector.meanAbsError
	ch <- collector.output
	ch <- collector.escalated
	ch <- collector.windowSize
	ch <- collector.ticks
	ch <- collector.retunes
	ch <- collector.boosts
	ch <- collector.reverts
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.controller.Log()
	mode := snapshot.Mode.String()

	ch <- prometheus.MustNewConstMetric(collector.gain, prometheus.GaugeValue, snapshot.Kp, mode, "p")
	ch <- prometheus.MustNewConstMetric(collector.gain, prometheus.GaugeValue, snapshot.Ki, mode, "i")
	ch <- prometheus.MustNewConstMetric(collector.gain, prometheus.GaugeValue, snapshot.Kd, mode, "d")
	ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, snapshot.Setpoint, mode)
	ch <- prometheus.MustNewConstMetric(collector.position, prometheus.GaugeValue, snapshot.Position, mode)
	ch <- prometheus.MustNewConstMetric(collector.integral, prometheus.GaugeValue, snapshot.Integral, mode)
	ch <- prometheus.MustNewConstMetric(collector.lastError, prometheus.GaugeValue, snapshot.PreviousError, mode)
	ch <- prometheus.MustNewConstMetric(collector.meanAbsError, prometheus.GaugeValue, snapshot.MeanAbsError, mode)
	ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, snapshot.Output, mode)
	ch <- prometheus.MustNewConstMetric(collector.escalated, prometheus.GaugeValue, boolToFloat(snapshot.Escalated), mode)
	ch <- prometheus.MustNewConstMetric(collector.windowSize, prometheus.GaugeValue, float64(snapshot.WindowSize), mode)
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(snapshot.Ticks), mode)
	ch <- prometheus.MustNewConstMetric(collector.retunes, prometheus.CounterValue, float64(snapshot.Retunes), mode)
	ch <- prometheus.MustNewConstMetric(collector.boosts, prometheus.CounterValue, float64(snapshot.Boosts), mode)
	ch <- prometheus.MustNewConstMetric(collector.reverts, prometheus.CounterValue, float64(snapshot.Reverts), mode)
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
