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

/*Package genotype normalizes raw SNP genotype calls as exported by
  genotyping services into the two-letter form expected by loaders.

  A call names one or two alleles. Its first and last characters are taken as
  the two alleles, so "A/G", "AG" and "A" become "AG", "AG" and "AA". Missing
  alleles ('?', '0', or an empty call) become 'N'. Calls whose ends are not
  in {A,C,G,T,N,+,-,?,0} are unsupported; they are written as "NN" and
  reported, and too many of them abort the conversion.
*/
package genotype
