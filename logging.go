package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the standard logger at a rotating file when one
// is configured; otherwise logs stay on stderr.
func setupLogging(settings *configSettings) {
	logFile := settings.GetString(sLogFile)
	if logFile == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    settings.GetInt(sLogSize),
		MaxBackups: settings.GetInt(sLogCount),
	})
}
