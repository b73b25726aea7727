package validation

// ManifestValidator validates raw manifest documents against a schema.
type ManifestValidator interface {
	// Validate checks that the manifest document matches the registered schema.
	Validate(data []byte) (*ValidationResult, error)
}

// ValidationResult reports the outcome of a manifest validation.
type ValidationResult struct {
	Valid  bool
	Errors []string
}
