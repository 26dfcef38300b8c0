package pixz

import (
	"os"
	"strconv"
)

// Feature levels reported by Features.
const (
	FeatureScalar = "scalar"
	FeatureAVX2   = "avx2"
	FeatureAVX512 = "avx512"
	FeatureNEON   = "neon"
	FeatureSVE    = "sve"
)

// NoSIMDEnv is the environment variable that forces Features to report
// FeatureScalar.
const NoSIMDEnv = "PIXZ_NO_SIMD"

// Features reports the widest vector instruction set detected on the host.
// The value is informational: pixz kernels are scalar Go, and backends
// record it on spans so traces from different hosts can be compared.
func Features() string {
	if noSIMD() {
		return FeatureScalar
	}
	return detectFeatures()
}

func noSIMD() bool {
	v, ok := os.LookupEnv(NoSIMDEnv)
	if !ok {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	// Any other non-empty value counts as set.
	return v != ""
}
