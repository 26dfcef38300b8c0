//go:build !amd64 && !arm64

package pixz

func detectFeatures() string {
	return FeatureScalar
}
