package lgc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/genoconv/util"
	"github.com/mitchellh/mapstructure"
)

// ProjectNumberKey is the Header key naming the project a report belongs to.
const ProjectNumberKey = "Project number"

// Metadata is the content of a report's Header table: string keys and values,
// in the order the keys first appeared.
type Metadata struct {
	keys   []string
	values map[string]string
}

// Report is the typed view of Metadata used by loaders.
type Report struct {
	ProjectNumber string `mapstructure:"Project number"`
	// Fields holds every other key.
	Fields map[string]interface{} `mapstructure:",remain"`
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: map[string]string{}}
}

// Set sets key to value. A key set twice keeps its first position.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value of key.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in order.
func (m *Metadata) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Metadata) Len() int { return len(m.keys) }

// Decode fills the struct pointed to by v from the metadata, matching keys to
// `mapstructure` field tags.
func (m *Metadata) Decode(v interface{}) error {
	return mapstructure.Decode(m.values, v)
}

// ProjectNumber returns the value of the "Project number" key, or a
// *MissingKeyError.
func (m *Metadata) ProjectNumber() (string, error) {
	if _, ok := m.values[ProjectNumberKey]; !ok {
		return "", &MissingKeyError{Key: ProjectNumberKey}
	}
	var r Report
	if err := m.Decode(&r); err != nil {
		return "", err
	}
	return r.ProjectNumber, nil
}

// MarshalJSON encodes the metadata as a flat JSON object, keys in order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object of strings, keeping key order.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = *NewMetadata()
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected a JSON object, found %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("metadata: key %q: %v", key, err)
		}
		m.Set(key, value)
	}
	_, err = dec.Token()
	return err
}

// ReadMetadata parses a Header table as written by Segment. Each row is a key
// and a value; the value loses its surrounding double quotes, and a row with
// only a key gets an empty value. A value that held commas was split over
// several columns by Segment; those columns are joined back with commas.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	m := NewMetadata()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineLen)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		var value string
		if len(fields) > 1 {
			value = strings.Trim(strings.Join(fields[1:], ","), `"`)
		}
		m.Set(fields[0], value)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.E(err, "read header table")
	}
	return m, nil
}

// ReadMetadataFile runs ReadMetadata on the Header table file at path.
func ReadMetadataFile(ctx context.Context, path string) (_ *Metadata, err error) {
	in, err := util.OpenInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return ReadMetadata(in)
}

// WriteMetadataJSON writes m as a JSON object to path.
func WriteMetadataJSON(ctx context.Context, path string, m *Metadata) (err error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if _, err = out.Writer(ctx).Write(data); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}

// ReadMetadataJSON reads a file written by WriteMetadataJSON.
func ReadMetadataJSON(ctx context.Context, path string) (_ *Metadata, err error) {
	in, err := util.OpenInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, errors.E(err, "read", path)
	}
	m := NewMetadata()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.E(err, "decode", path)
	}
	return m, nil
}
