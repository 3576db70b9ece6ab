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

/*
Package lgc reads the long-format genotyping report produced by LGC Genomics
(formerly KBiosciences, sold through Intertek). The report is a series of
comma-separated tables catenated into one file, after a two-line preamble:

  KBiosciences genotyping report
  LGC-Genomics
  Project number,1234
  Customer,"Some lab"

  SNPs
  SNPID,SNPNum,...
  ...

  Scaling
  ...

The rows between the preamble and the first blank line form the implicit
Header table of key,value pairs. Every later table starts with a blank line
followed by a line holding only the table name.

Segment splits the report into one TSV file per table, and ReadMetadata turns
the Header table into a flat key/value map.
*/
package lgc
