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

package lgc

import (
	"bufio"
	"context"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/genoconv/util"
)

// Preamble holds the lines every report must start with.
var Preamble = [...]string{
	"KBiosciences genotyping report",
	"LGC-Genomics",
}

const (
	utf8BOM    = "\ufeff"
	maxLineLen = 16 << 20
)

// Opts controls Segment.
type Opts struct {
	// Prefix is prepended to every output file name; see Table.FileName.
	Prefix string
}

// Split lists the files written by Segment.
type Split struct {
	tables []Table
	paths  map[Table]string
}

func newSplit() *Split {
	return &Split{paths: map[Table]string{}}
}

func (s *Split) add(t Table, path string) {
	s.tables = append(s.tables, t)
	s.paths[t] = path
}

// Tables returns the tables found in the report, in the order they appeared.
// Header is always first.
func (s *Split) Tables() []Table {
	return append([]Table(nil), s.tables...)
}

// Path returns the file table t was written to.
func (s *Split) Path(t Table) (string, bool) {
	p, ok := s.paths[t]
	return p, ok
}

type state int

const (
	// inHeader is the state before the first blank line.
	inHeader state = iota
	inTable
	betweenTables
)

// segmenter owns the single table file open at any time.
type segmenter struct {
	ctx          context.Context
	dir, prefix  string
	split        *Split
	state        state
	lastWasBlank bool

	out file.File
	w   *tsv.Writer
}

func (s *segmenter) open(t Table) error {
	p := file.Join(s.dir, t.FileName(s.prefix))
	f, err := file.Create(s.ctx, p)
	if err != nil {
		return errors.E(err, "create", p)
	}
	s.out = f
	s.w = tsv.NewWriter(f.Writer(s.ctx))
	s.split.add(t, p)
	log.Debug.Printf("lgc: writing table %v to %s", t, p)
	return nil
}

// close closes the open table file, if any.
func (s *segmenter) close() error {
	if s.out == nil {
		return nil
	}
	err := s.w.Flush()
	if e := s.out.Close(s.ctx); e != nil && err == nil {
		err = errors.E(e, "close", s.out.Name())
	}
	s.out, s.w = nil, nil
	return err
}

// line consumes one line past the preamble. n is 1-based.
func (s *segmenter) line(n int, text string) error {
	if strings.HasPrefix(text, "#") {
		return nil
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		s.lastWasBlank = true
		s.state = betweenTables
		return s.close()
	}
	if fields := strings.Split(trimmed, ","); len(fields) == 1 && s.state != inHeader {
		return s.startTable(n, fields[0])
	}
	if s.state == betweenTables {
		return &HeaderFormatError{Line: n, Reason: "row outside of any table; expected a table name after the blank line"}
	}
	s.lastWasBlank = false
	for _, field := range strings.Split(text, ",") {
		s.w.WriteString(field)
	}
	return s.w.EndLine()
}

func (s *segmenter) startTable(n int, name string) error {
	t, ok := ParseTable(name)
	if !ok {
		e := &UnknownTableError{Line: n, Name: name}
		if suggestion, ok := util.Closest(name, TableNames()); ok {
			e.Suggestion = suggestion
		}
		return e
	}
	if !s.lastWasBlank {
		return &HeaderFormatError{Line: n, Table: t.String(), Reason: "preceding line was not blank"}
	}
	if _, ok := s.split.paths[t]; ok {
		return &HeaderFormatError{Line: n, Table: t.String(), Reason: "it was already seen"}
	}
	s.lastWasBlank = false
	s.state = inTable
	return s.open(t)
}

// Segment splits the report read from r into one TSV file per table under
// outDir. Commas become tabs; everything else is copied verbatim. The
// preamble is validated and dropped.
//
// On error, files for the tables before the offending line have been written
// and closed.
func Segment(ctx context.Context, r io.Reader, outDir string, opts Opts) (_ *Split, err error) {
	s := &segmenter{
		ctx:    ctx,
		dir:    outDir,
		prefix: opts.Prefix,
		split:  newSplit(),
	}
	defer func() {
		if e := s.close(); e != nil && err == nil {
			err = e
		}
	}()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineLen)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if n <= len(Preamble) {
			if n == 1 {
				text = strings.TrimPrefix(text, utf8BOM)
			}
			if got := strings.TrimRightFunc(text, unicode.IsSpace); got != Preamble[n-1] {
				return nil, &FileFormatError{Line: n, Want: Preamble[n-1], Got: got}
			}
			if n == len(Preamble) {
				if err = s.open(Header); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err = s.line(n, text); err != nil {
			return nil, err
		}
	}
	if err = sc.Err(); err != nil {
		return nil, errors.E(err, "read report")
	}
	if n < len(Preamble) {
		return nil, &FileFormatError{Line: n + 1, Want: Preamble[n]}
	}
	return s.split, nil
}

// SegmentFile runs Segment on the report at inPath.
func SegmentFile(ctx context.Context, inPath, outDir string, opts Opts) (_ *Split, err error) {
	in, err := util.OpenInput(ctx, inPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return Segment(ctx, in, outDir, opts)
}

// Prefix derives the output file prefix from a report path: its base name
// without a ".csv" (or ".csv.gz") suffix.
func Prefix(inPath string) string {
	base := path.Base(inPath)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, ".csv")
}
