//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/oshokin/geronimo/internal/logger"
)

// ApplyLogLevel sets the global level from the CLI override or the configured value.
func ApplyLogLevel(configured, override string) error {
	name := lo.CoalesceOrEmpty(override, configured)

	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("unknown log level %q", name)
	}

	logger.SetLevel(level)

	return nil
}
