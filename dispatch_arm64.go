//go:build arm64

package pixz

import "golang.org/x/sys/cpu"

func detectFeatures() string {
	switch {
	case cpu.ARM64.HasSVE:
		return FeatureSVE
	case cpu.ARM64.HasASIMD:
		return FeatureNEON
	default:
		return FeatureScalar
	}
}
