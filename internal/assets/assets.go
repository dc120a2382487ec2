// Package assets provides CSS styles for rendered documents.
// Styles can be loaded from embedded files or custom filesystem paths.
package assets

// StyleLoader loads a CSS style by name.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
