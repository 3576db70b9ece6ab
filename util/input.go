// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/h2non/filetype.v1"
)

// sniffLen is the number of leading bytes handed to filetype. It is the
// header size filetype documents as sufficient for every matcher.
const sniffLen = 262

// Input is an open text input. Gzip-compressed content is decompressed
// transparently, whatever the file is named.
type Input struct {
	io.Reader
	path string
	f    file.File
	gz   *gzip.Reader
}

// OpenInput opens path (local or any scheme registered with
// grailbio/base/file) for reading.
func OpenInput(ctx context.Context, path string) (*Input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	in := &Input{path: path, f: f}
	br := bufio.NewReaderSize(f.Reader(ctx), 64<<10)
	// Peek returns what it has along with io.EOF for short files; that is
	// enough to match on.
	head, _ := br.Peek(sniffLen)
	if kind, err := filetype.Match(head); err == nil && kind.Extension == "gz" {
		if in.gz, err = gzip.NewReader(br); err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "gunzip", path)
		}
		in.Reader = in.gz
		return in, nil
	}
	in.Reader = br
	return in, nil
}

// Path returns the path the input was opened with.
func (in *Input) Path() string { return in.path }

// Close releases the input.
func (in *Input) Close(ctx context.Context) error {
	var err error
	if in.gz != nil {
		err = in.gz.Close()
	}
	if e := in.f.Close(ctx); e != nil && err == nil {
		err = errors.E(e, "close", in.path)
	}
	return err
}
