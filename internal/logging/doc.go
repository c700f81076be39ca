// Package logging builds zap loggers.
//
// Production loggers write JSON, development loggers write colored
// console lines. Both write to stderr by default.
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("server starting", zap.String("addr", ":8000"))
package logging
