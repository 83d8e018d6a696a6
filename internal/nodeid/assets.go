// internal/nodeid/assets.go
package nodeid

const (
	// BuildSuffix is appended to an asset id to form its build node id.
	BuildSuffix = "-build"
	// PublishSuffix is appended to an asset id to form its publish node id.
	PublishSuffix = "-publish"
)

// Build returns the id of the node that builds the given asset.
func Build(assetID string) string {
	return assetID + BuildSuffix
}

// Publish returns the id of the node that publishes the given asset.
func Publish(assetID string) string {
	return assetID + PublishSuffix
}
