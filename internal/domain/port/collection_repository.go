package port

import "github.com/haxorport/postman-rewrite/internal/domain/model"

// CollectionRepository reads and writes collection documents
type CollectionRepository interface {
	// Load reads and decodes the collection stored at path
	Load(path string) (*model.Document, error)

	// Save writes the collection of doc to path, keeping every field of the
	// original document that the collection model does not describe
	Save(doc *model.Document, path string, pretty bool) error
}
