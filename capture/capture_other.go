//go:build !linux

package capture

import (
	"github.com/pkg/errors"
)

func openLive(iface string) (Source, error) {
	return nil, errors.New("live capture not supported on this platform: " + iface)
}
