package courselint

import "github.com/coursekit/courselint/internal/runtimeconfig"

var (
	ErrURLCheckTimeoutInvalid   = runtimeconfig.ErrURLCheckTimeoutInvalid
	ErrURLCheckBatchSizeInvalid = runtimeconfig.ErrURLCheckBatchSizeInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	ProcessingConfig = runtimeconfig.ProcessingConfig
	URLCheckConfig   = runtimeconfig.URLCheckConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
