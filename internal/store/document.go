package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

const (
	// Tag marks a JSON document as a key store.
	Tag = "--key-store--"

	// TagField holds Tag.
	TagField = "__tag__"

	// DataField holds the key to record map.
	DataField = "data"
)

// Document is the parsed content of a store file.
type Document struct {
	Tag  string
	Data map[string]string

	// extra keeps unknown top-level fields so rewrites don't drop them.
	extra map[string]json.RawMessage
}

// NewDocument returns an empty, tagged document.
func NewDocument() *Document {
	return &Document{Tag: Tag, Data: make(map[string]string)}
}

// Keys returns the entry keys in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Data))
	for k := range d.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Record is a stored value: an encrypted blob plus the advisory origin host.
type Record struct {
	Blob string
	Host string
}

// ParseRecord splits a stored value at the first ':'. Base64 never contains
// a colon, so everything after it is the host annotation.
func ParseRecord(value string) Record {
	blob, host, _ := strings.Cut(value, ":")
	return Record{Blob: blob, Host: host}
}

// String encodes the record in its on-disk form.
func (r Record) String() string {
	if r.Host == "" {
		return r.Blob
	}
	return r.Blob + ":" + r.Host
}

// Decode parses and validates store content.
func Decode(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", kerrors.ErrInvalidStore, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not a JSON object", kerrors.ErrInvalidStore)
	}

	rawTag, ok := fields[TagField]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", kerrors.ErrInvalidStore, TagField)
	}
	var tag string
	if err := json.Unmarshal(rawTag, &tag); err != nil || tag != Tag {
		return nil, fmt.Errorf("%w: %s is %s", kerrors.ErrInvalidStore, TagField, rawTag)
	}

	doc := NewDocument()
	if rawData, ok := fields[DataField]; ok && string(rawData) != "null" {
		if err := json.Unmarshal(rawData, &doc.Data); err != nil {
			return nil, fmt.Errorf("%w: %s must map keys to strings: %v", kerrors.ErrInvalidStore, DataField, err)
		}
	}

	delete(fields, TagField)
	delete(fields, DataField)
	if len(fields) > 0 {
		doc.extra = fields
	}
	return doc, nil
}

// Encode serializes the document with 4-space indentation.
func Encode(doc *Document) ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(doc.extra)+2)
	for k, v := range doc.extra {
		fields[k] = v
	}

	rawTag, err := json.Marshal(doc.Tag)
	if err != nil {
		return nil, err
	}
	fields[TagField] = rawTag

	data := doc.Data
	if data == nil {
		data = map[string]string{}
	}
	rawData, err := marshalNoEscape(data)
	if err != nil {
		return nil, err
	}
	fields[DataField] = rawData

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Load reads and validates the store at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", path, kerrors.ErrInvalidStore, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save overwrites path with doc. The write is in place, not atomic.
func Save(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func notFound(path string) error {
	return fmt.Errorf("%s: %w (%w)", path, kerrors.ErrStoreNotFound, kerrors.ErrInvalidStore)
}
