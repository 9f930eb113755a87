package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the process counters. A nil *Recorder records nothing.
type Recorder struct {
	xpAwarded         *prometheus.CounterVec
	sessionsCompleted prometheus.Counter
	phaseRuns         *prometheus.CounterVec
	quizFallbacks     *prometheus.CounterVec
	persistFailures   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upmind_xp_awarded_total",
			Help: "XP added to the ledger, by category.",
		}, []string{"category"}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upmind_sessions_completed_total",
			Help: "Completed focus sessions.",
		}),
		phaseRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upmind_phase_runs_total",
			Help: "Timed phase runs by technique and outcome.",
		}, []string{"technique", "outcome"}),
		quizFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upmind_quiz_fallbacks_total",
			Help: "Question provider failures that fell through to the next provider.",
		}, []string{"provider"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upmind_persist_failures_total",
			Help: "Snapshot writes that failed, by store key.",
		}, []string{"key"}),
	}
	if reg != nil {
		reg.MustRegister(r.xpAwarded, r.sessionsCompleted, r.phaseRuns, r.quizFallbacks, r.persistFailures)
	}
	return r
}

func (r *Recorder) XPAwarded(category string, amount int) {
	if r == nil || amount <= 0 {
		return
	}
	r.xpAwarded.WithLabelValues(category).Add(float64(amount))
}

func (r *Recorder) SessionCompleted() {
	if r == nil {
		return
	}
	r.sessionsCompleted.Inc()
}

func (r *Recorder) PhaseRun(technique, outcome string) {
	if r == nil {
		return
	}
	r.phaseRuns.WithLabelValues(technique, outcome).Inc()
}

func (r *Recorder) QuizFallback(provider string) {
	if r == nil {
		return
	}
	r.quizFallbacks.WithLabelValues(provider).Inc()
}

func (r *Recorder) PersistFailure(key string) {
	if r == nil {
		return
	}
	r.persistFailures.WithLabelValues(key).Inc()
}
