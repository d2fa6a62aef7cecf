// Package logging configures timerflow's structured logging on top of zerolog.
//
// Components take a zerolog.Logger by value. A zero value is replaced by
// Default, a JSON logger on os.Stderr, so execution faults are never lost;
// pass Nop to silence a component. New builds a console or JSON logger from
// Config:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "console"}, os.Stderr)
//	if err != nil {
//		return err
//	}
//	pool, err := workerpool.NewWithConfig(workerpool.Config{
//		WorkerCount: 4,
//		Queue:       q,
//		Logger:      logger,
//	})
package logging
