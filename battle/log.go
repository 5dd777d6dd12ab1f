package battle

import "github.com/go-logr/logr"

var internalLogger = logr.Discard()

// SetInternalLogger sets the logger every new battle derives its own logger from
func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("battle")
}
