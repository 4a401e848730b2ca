package app

import (
	"context"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/testrunner"
)

// Test runs vitest with the test settings of the descriptor. args are
// passed to vitest unchanged.
func (a *App) Test(ctx context.Context, args []string) error {
	desc, err := a.Descriptor(descriptor.ModeTest)
	if err != nil {
		return err
	}
	return testrunner.NewRunner(a.fs, a.stdout, a.stderr, a.logger).Run(ctx, desc, args)
}
