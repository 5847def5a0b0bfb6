//go:build !linux

package hook

import (
	"context"
	"errors"
	"log/slog"
)

// RunEvdev is only available on Linux.
func RunEvdev(ctx context.Context, d *Device, logger *slog.Logger) error {
	return errors.New("evdev input source is only available on linux")
}
