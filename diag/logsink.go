package diag

import "github.com/sirupsen/logrus"

// LogSink emits records through a logrus logger. Accepted records are logged
// at AcceptLevel, rejections at RejectLevel.
type LogSink struct {
	Log         logrus.FieldLogger
	AcceptLevel logrus.Level
	RejectLevel logrus.Level
}

// NewLogSink returns a LogSink logging accepts at debug and rejections at trace.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{Log: log, AcceptLevel: logrus.DebugLevel, RejectLevel: logrus.TraceLevel}
}

// Record implements Sink.
func (s *LogSink) Record(r Record) {
	level := s.RejectLevel
	if r.Accepted() {
		level = s.AcceptLevel
	}
	entry := s.Log.WithFields(logrus.Fields{
		"queue":  r.Queue.Code(),
		"id":     r.ID.String(),
		"amount": r.Total,
		"reason": r.Reason.Code(),
	})
	entry.Log(level, r.Reason.String())
}
