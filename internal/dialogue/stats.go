package dialogue

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// Response categories counted per session.
const (
	StatIntent      = "intent"
	StatGenerate    = "generate"
	StatFailure     = "failure"
	StatAdvertising = "advertising"
)

var (
	responsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restobot_responses_total",
		Help: "Replies produced by the dialogue engine, by response category.",
	}, []string{"category"})

	intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restobot_intents_total",
		Help: "Intents answered by the dialogue engine.",
	}, []string{"intent"})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "restobot_turn_duration_seconds",
		Help:    "Time spent resolving one utterance.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)

type StatsRecorder struct {
	log *logrus.Logger
}

func NewStatsRecorder(log *logrus.Logger) *StatsRecorder {
	return &StatsRecorder{log: log}
}

func (r *StatsRecorder) Record(session Session, category, question, answer string) {
	session.RecordStat(category)
	responsesTotal.WithLabelValues(category).Inc()

	r.log.WithFields(logrus.Fields{
		"category": category,
		"question": question,
		"answer":   answer,
	}).Debug("dialogue stats updated")
}

func (r *StatsRecorder) Intent(name string) {
	intentsTotal.WithLabelValues(name).Inc()
}

func (r *StatsRecorder) Observe(started time.Time) {
	turnDuration.Observe(time.Since(started).Seconds())
}
