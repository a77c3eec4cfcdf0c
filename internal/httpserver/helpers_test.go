package httpserver

import (
	"io"
	"log/slog"
	"strconv"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
