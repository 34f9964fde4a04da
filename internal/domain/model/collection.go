package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Info is the collection metadata block
type Info struct {
	// Name is the display name of the collection
	Name string `json:"name"`
	// Schema is the schema URL of the collection format
	Schema string `json:"schema,omitempty"`
}

// Collection is the root of a collection tree
type Collection struct {
	// Info is the collection metadata
	Info Info `json:"info"`
	// Item is the ordered list of top-level items
	Item Items `json:"item"`
}

// Item is a node of a collection tree. It is implemented by *Folder,
// *Request and *Unknown only.
type Item interface {
	isItem()
}

// Folder is an item grouping other items
type Folder struct {
	// Name is the folder name
	Name string `json:"name"`
	// Item is the ordered list of child items
	Item Items `json:"item"`
}

// Request is an item carrying a request payload
type Request struct {
	// Name is the display name of the request, usually containing the path
	Name string `json:"name"`
	// Request is the request payload
	Request *RequestPayload `json:"request"`
}

// Unknown is an item that is neither a folder nor a request.
// It is kept verbatim and never rewritten.
type Unknown struct {
	Raw json.RawMessage
}

func (*Folder) isItem()  {}
func (*Request) isItem() {}
func (*Unknown) isItem() {}

// RequestPayload is the request part of a request item
type RequestPayload struct {
	// Method is the HTTP method
	Method string `json:"method,omitempty"`
	// Header is the ordered list of request headers
	Header []Header `json:"header"`
	// URL is the request URL
	URL *URL `json:"url"`
}

// Header is a single request header
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// URL is the structured form of a request URL
type URL struct {
	// Raw is the full URL string
	Raw string `json:"raw"`
	// Host is the hostname split into labels
	Host []string `json:"host"`
	// Path is the URL path split into segments
	Path []string `json:"path"`
}

// Items is an ordered list of collection items
type Items []Item

// UnmarshalJSON decodes items, telling folders and requests apart by the
// fields they carry
func (items *Items) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*items = nil
		return nil
	}
	if !parsed.IsArray() {
		return fmt.Errorf("item must be an array, got %s", parsed.Type)
	}

	var (
		out     Items
		itemErr error
	)
	parsed.ForEach(func(_, value gjson.Result) bool {
		var item Item
		switch {
		case isPresent(value.Get("request")):
			item = &Request{}
		case isPresent(value.Get("item")):
			item = &Folder{}
		default:
			item = &Unknown{}
		}
		if err := json.Unmarshal([]byte(value.Raw), item); err != nil {
			itemErr = fmt.Errorf("item %d: %v", len(out), err)
			return false
		}
		out = append(out, item)
		return true
	})
	if itemErr != nil {
		return itemErr
	}

	*items = out
	return nil
}

// isPresent reports whether a member exists and is not null
func isPresent(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// UnmarshalJSON keeps the raw item
func (u *Unknown) UnmarshalJSON(data []byte) error {
	u.Raw = append(u.Raw[:0], data...)
	return nil
}

// MarshalJSON returns the raw item
func (u *Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("{}"), nil
	}
	return u.Raw, nil
}

// WalkFunc is called for every request item with its JSON path inside the
// collection document (for example "item.0.item.3")
type WalkFunc func(path string, request *Request) error

// Walk visits every request of the collection depth-first, in document
// order, descending into folders of any depth. It stops at the first error.
func (c *Collection) Walk(fn WalkFunc) error {
	return walkItems(c.Item, "item", fn)
}

func walkItems(items Items, prefix string, fn WalkFunc) error {
	for i, item := range items {
		path := prefix + "." + strconv.Itoa(i)
		switch it := item.(type) {
		case *Request:
			if err := fn(path, it); err != nil {
				return err
			}
		case *Folder:
			if err := walkItems(it.Item, path+".item", fn); err != nil {
				return err
			}
		case *Unknown, nil:
		}
	}
	return nil
}

// CountRequests returns the number of request items in the tree
func (c *Collection) CountRequests() int {
	n := 0
	// the callback never fails, so Walk cannot return an error
	_ = c.Walk(func(string, *Request) error {
		n++
		return nil
	})
	return n
}

// Document is a loaded collection together with the bytes it was read from
type Document struct {
	// Collection is the decoded collection tree
	Collection *Collection
	// Source is the original file content
	Source []byte
}
