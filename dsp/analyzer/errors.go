package analyzer

import "errors"

// ErrInvalidOrder is returned by ChangeOrder for an unsupported FFT order.
var ErrInvalidOrder = errors.New("analyzer: unsupported fft order")
