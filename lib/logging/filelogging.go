package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger logs to STDOUT, or to a dated file next to logFilePath when it is set.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile opens the log file for today, appending when it already exists.
func GetLoggingFile(path string) (*os.File, error) {
	date := time.Now().Format("-2006-01-02")
	if extension := filepath.Ext(path); extension != "" {
		path = strings.TrimSuffix(path, extension) + date + extension
	} else {
		path = path + date + ".log"
	}

	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
