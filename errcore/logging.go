package errcore

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the Runtime's structured logger, reading its level
// from the environment once at construction time rather than re-checking
// it on every log call.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(os.Getenv("AURORA_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
