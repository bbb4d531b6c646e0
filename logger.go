package actor

// Logger is deliberately small: a Println sink for anything that wants
// to plug in some other log library by satisfying one method, plus the
// structured, leveled methods the kernel loop and bootstrap actually
// use. The implementation provided in package alog (alog.NewZap) backs
// both with go.uber.org/zap; a System with no Logger configured uses
// discardLogger.
type Logger interface {
	Println(string)
	Debugw(msg string, kv ...interface{})
	Infow(msg string, kv ...interface{})
	Warnw(msg string, kv ...interface{})
	Errorw(msg string, kv ...interface{})
}

// discardLogger is the default when no Logger is configured.
type discardLogger struct{}

func (discardLogger) Println(string)                        {}
func (discardLogger) Debugw(string, ...interface{})          {}
func (discardLogger) Infow(string, ...interface{})           {}
func (discardLogger) Warnw(string, ...interface{})           {}
func (discardLogger) Errorw(string, ...interface{})          {}

func (s *System) log() Logger {
	if s.logger == nil {
		return discardLogger{}
	}
	return s.logger
}
