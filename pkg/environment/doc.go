// Package environment names the application environment (development,
// staging, production) and carries it through context.Context.
//
// Parse turns configuration values, including the short aliases dev, stage
// and prod, into an Environment. WithContext and FromContext attach and read
// it; IsDevelopment, IsStaging and IsProduction are shortcuts.
//
// LoggerExtractor returns a function compatible with logger.ContextExtractor
// that adds the environment from context as the "env" attribute:
//
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
//	ctx := environment.WithContext(ctx, environment.Parse(cfg.Env))
//	log.InfoContext(ctx, "started") // ... env=production
package environment
