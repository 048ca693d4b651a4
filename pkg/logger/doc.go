// Package logger builds *slog.Logger values that write to several sinks at
// once, filter by level, colour console output, print banners and notify
// callbacks registered per level.
//
// A single factory, New, creates the logger from Option functions. Options
// let you:
//
//   - Select an output format: json, text or console (coloured, one line per record)
//   - Set the minimum level, including LevelNoise and LevelSilent
//   - Add sinks with WithOutput (any io.Writer) and WithFile (append per write)
//   - Decorate console lines with a signature, the caller and a timestamp
//   - Register ContextExtractor callbacks that inject attributes from context
//   - Attach a Callbacks registry that receives the text of every record of a given level
//
// # Architecture
//
// New picks the concrete slog.Handler: ConsoleHandler for the console format
// or slog's text and JSON handlers over a fan-out of all sinks. Files set with
// SetGlobalFiles are appended to every logger's sinks unless it was created
// WithoutGlobalFiles. The handler is wrapped by LogHandlerDecorator, which
// runs context extractors and dispatches records to level callbacks. slog
// only hands enabled records to the handler, so callbacks never see records
// the level filter drops.
//
// Console colour is decided per sink: terminals get ANSI codes (via
// fatih/color), files and buffers get plain text. The colour of one record can
// be overridden with the InColor attribute, which is never printed.
//
// # Usage
//
//	cbs := logger.NewCallbacks()
//	stop := cbs.Register(slog.LevelError, func(msg string) { alerts <- msg })
//	defer stop()
//
//	log := logger.New(
//	    logger.WithConsoleFormatter(),
//	    logger.WithLevel(logger.LevelNoise),
//	    logger.WithFile("/var/log/app.log"),
//	    logger.WithSignature("worker-1"),
//	    logger.WithCallbacks(cbs),
//	)
//
//	logger.Banner(ctx, log, "starting", "=")
//	logger.Noise(ctx, log, "polling", logger.Count(3))
//	log.Info("ready", logger.InColor(logger.Green))
//	log.Error("lost connection", logger.Error(err))
//
// # Configuration
//
// Config carries the same settings in environment variables (LOG_LEVEL,
// LOG_FORMAT, LOG_FILES, ...) and converts them with Config.Options.
// WithDevelopment, WithStaging and WithProduction apply per-environment
// defaults.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil, so they can be passed without a nil check. Write
// failures of one sink do not stop the others.
package logger
