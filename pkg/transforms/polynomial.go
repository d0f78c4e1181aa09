package transforms

import "math/cmplx"

// Polynomial is the map z -> z^N + C.
//
// N may be any complex exponent; powers use the principal branch. Results
// that overflow are returned as-is, so callers must treat non-finite values
// as divergent.
type Polynomial struct {
	N complex128
	C complex128
}

func (p Polynomial) Next(z complex128) complex128 {
	return cmplx.Pow(z, p.N) + p.C
}
