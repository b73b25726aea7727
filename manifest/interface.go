package manifest

// Parser parses raw manifest bytes into a Document.
type Parser interface {
	// Parse unmarshals manifest bytes into a Document struct.
	Parse(data []byte) (*Document, error)
}
