// export_test.go exports private functions for white-box testing.
package release

var (
	NewAcquirerWithClient = newAcquirerWithClient
	FormatDigest          = formatDigest
)
