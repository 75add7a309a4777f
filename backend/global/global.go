package global

import "github.com/rs/zerolog"

// Logger is the process logger, replaced at startup from config.
var Logger zerolog.Logger = zerolog.Nop()
