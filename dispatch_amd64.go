//go:build amd64

package pixz

import "golang.org/x/sys/cpu"

func detectFeatures() string {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		return FeatureAVX512
	case cpu.X86.HasAVX2:
		return FeatureAVX2
	default:
		return FeatureScalar
	}
}
