// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"github.com/pkg/errors"
)

// Errors returned by Compile and Evaluate. Returned errors wrap these and
// can be tested with errors.Is.
var (
	ErrMissingLibrary   = errors.New("missing library")
	ErrMissingComponent = errors.New("missing component")
	ErrWidthMismatch    = errors.New("width mismatch")
	ErrCompiled         = errors.New("circuit already compiled")
	ErrNotCompiled      = errors.New("circuit not compiled")
	ErrOscillation      = errors.New("circuit does not settle")
)

func errWidth(what string, want, got int) error {
	return errors.Wrapf(ErrWidthMismatch, "%s: expected %d bits, got %d", what, want, got)
}
