// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// Every request carries a RayID (see core/middleware/rayid). The WithRayID helper extracts it from
// a Fiber context and attaches it to the log entry, so all logs of one catalog submission can be
// correlated, including the provenance entries written for it.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Ingest failed", zap.Error(err))
package logger
