package collection

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
)

// ErrNotCollection is returned for files that are not a collection document
var ErrNotCollection = errors.New("not a collection document")

// CollectionRepository is an implementation of port.CollectionRepository
// for collection JSON files
type CollectionRepository struct{}

// NewCollectionRepository creates a new CollectionRepository instance
func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{}
}

// Load reads and decodes the collection stored at path
func (r *CollectionRepository) Load(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", path)
	}
	return Decode(data)
}

// Decode decodes a collection document
func Decode(data []byte) (*model.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(ErrNotCollection, "invalid JSON")
	}
	if !gjson.GetBytes(data, "item").IsArray() {
		return nil, errors.Wrap(ErrNotCollection, "missing item list")
	}

	var collection model.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, errors.Wrap(err, "decoding collection")
	}
	return &model.Document{Collection: &collection, Source: data}, nil
}

// Save writes the collection of doc to path
func (r *CollectionRepository) Save(doc *model.Document, path string, pretty bool) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if pretty {
		data = []byte(gjson.GetBytes(data, "@pretty").Raw)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing collection %s", path)
	}
	return nil
}

// Encode patches the source of doc with the fields the replacement engine
// may have changed. Every other field of the source is kept as it was.
func Encode(doc *model.Document) ([]byte, error) {
	out := doc.Source
	err := doc.Collection.Walk(func(path string, request *model.Request) error {
		var err error
		if out, err = setString(out, path+".name", request.Name); err != nil {
			return err
		}
		if request.Request == nil {
			return nil
		}
		if out, err = setHeaders(out, path+".request.header", request.Request.Header); err != nil {
			return err
		}
		if request.Request.URL == nil {
			return nil
		}
		url := request.Request.URL
		if out, err = setString(out, path+".request.url.raw", url.Raw); err != nil {
			return err
		}
		if out, err = setStrings(out, path+".request.url.host", url.Host); err != nil {
			return err
		}
		out, err = setStrings(out, path+".request.url.path", url.Path)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding collection")
	}
	return out, nil
}

func setString(data []byte, path, value string) ([]byte, error) {
	current := gjson.GetBytes(data, path)
	if current.Type == gjson.String && current.Str == value {
		return data, nil
	}
	return sjson.SetBytes(data, path, value)
}

func setStrings(data []byte, path string, values []string) ([]byte, error) {
	current := gjson.GetBytes(data, path)
	if !current.Exists() && values == nil {
		return data, nil
	}
	if current.IsArray() && equalStrings(current.Array(), values) {
		return data, nil
	}
	if values == nil {
		values = []string{}
	}
	return sjson.SetBytes(data, path, values)
}

// setHeaders updates header values in place, so that other header fields
// such as "type" or "disabled" survive, and appends the added headers
func setHeaders(data []byte, path string, headers []model.Header) ([]byte, error) {
	current := gjson.GetBytes(data, path)
	if !current.IsArray() {
		if len(headers) == 0 {
			return data, nil
		}
		return sjson.SetBytes(data, path, headers)
	}

	existing := int(current.Get("#").Int())
	var err error
	for i, header := range headers {
		if i < existing {
			if data, err = setString(data, path+"."+strconv.Itoa(i)+".value", header.Value); err != nil {
				return nil, err
			}
			continue
		}
		if data, err = sjson.SetBytes(data, path+".-1", header); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func equalStrings(results []gjson.Result, values []string) bool {
	if len(results) != len(values) {
		return false
	}
	for i, r := range results {
		if r.Type != gjson.String || r.Str != values[i] {
			return false
		}
	}
	return true
}

// Ensure CollectionRepository implements port.CollectionRepository
var _ port.CollectionRepository = (*CollectionRepository)(nil)
