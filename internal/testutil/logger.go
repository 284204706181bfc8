package testutil

import (
	"io"

	"github.com/dtroode/ipo-auth/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
