package spindle

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus collectors for cache activity. Attach a set to a
// cache with WithMetrics.
type Metrics struct {
	ThreadsSpawned   prometheus.Counter
	ThreadsReused    prometheus.Counter
	ThreadsExited    prometheus.Counter
	IdleThreads      prometheus.Gauge
	JobsExecuted     prometheus.Counter
	DeliveryFailures prometheus.Counter
	WorkDuration     prometheus.Histogram
}

// NewMetrics creates the collector set. The collectors are not registered;
// call Register with the registry of your choice.
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		ThreadsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "threads_spawned_total",
			Help:      "Total number of worker threads created",
		}),
		ThreadsReused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "threads_reused_total",
			Help:      "Total number of jobs assigned to an already-idle worker",
		}),
		ThreadsExited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "threads_exited_total",
			Help:      "Total number of worker threads that exited after idling",
		}),
		IdleThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "idle_threads",
			Help:      "Current number of idle worker threads",
		}),
		JobsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_executed_total",
			Help:      "Total number of jobs executed",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "delivery_failures_total",
			Help:      "Total number of delivery callbacks that panicked",
		}),
		WorkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "work_duration_seconds",
			Help:      "Histogram of work function execution time",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.ThreadsSpawned,
		m.ThreadsReused,
		m.ThreadsExited,
		m.IdleThreads,
		m.JobsExecuted,
		m.DeliveryFailures,
		m.WorkDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers every collector with reg and panics on error.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if err := m.Register(reg); err != nil {
		panic(err)
	}
}
