package pohoda

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogging configures the process-wide logrus logger. Logs go to stderr
// so documents printed on stdout stay clean.
func InitLogging(level, format string) error {
	logrus.SetOutput(os.Stderr)

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000000Z07:00"})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006/01/02 15:04:05.000000"})
	}
	return nil
}
