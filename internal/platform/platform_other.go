//go:build !darwin && !windows && !linux

package platform

import "context"

type unsupportedKeepAlive struct{}

func (k *unsupportedKeepAlive) Start(ctx context.Context) error {
	return ErrUnsupported
}

func (k *unsupportedKeepAlive) Stop() error {
	return nil
}

// NewKeepAlive returns a guard whose Start always fails with ErrUnsupported.
func NewKeepAlive() (KeepAlive, error) {
	return &unsupportedKeepAlive{}, nil
}
