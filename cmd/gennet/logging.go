package main

import (
	logger "github.com/sirupsen/logrus"
)

// UTCFormatter forces log timestamps into UTC regardless of the host
// timezone, so runs on different machines line up.
type UTCFormatter struct {
	logger.Formatter
}

func (u UTCFormatter) Format(e *logger.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}
