package lgc

import (
	"fmt"
	"strings"
)

// Table identifies one of the tables of a report.
type Table int

const (
	// Header is the implicit first table of key,value rows.
	Header Table = iota
	// SNPs lists the assayed markers.
	SNPs
	// Scaling maps markers onto daughter plates.
	Scaling
	// Data holds one genotype call per sample and marker.
	Data
	// Statistics summarizes calls per marker.
	Statistics
	// DNA describes the submitted samples.
	DNA

	numTables
)

var tableNames = [numTables]string{
	Header:     "Header",
	SNPs:       "SNPs",
	Scaling:    "Scaling",
	Data:       "Data",
	Statistics: "Statistics",
	DNA:        "DNA",
}

// Tables returns every table kind, in report order.
func Tables() []Table {
	t := make([]Table, numTables)
	for i := range t {
		t[i] = Table(i)
	}
	return t
}

// TableNames returns the names of all table kinds, in report order.
func TableNames() []string {
	return append([]string(nil), tableNames[:]...)
}

// ParseTable looks up a table by name, ignoring case.
func ParseTable(name string) (Table, bool) {
	for i, n := range tableNames {
		if strings.EqualFold(n, name) {
			return Table(i), true
		}
	}
	return -1, false
}

func (t Table) String() string {
	if t < 0 || t >= numTables {
		return fmt.Sprintf("Table(%d)", int(t))
	}
	return tableNames[t]
}

// FileName is the name of the TSV file t is written to: "<prefix>.<table>.tsv",
// or "<table>.tsv" if prefix is empty. Table names are lowercased.
func (t Table) FileName(prefix string) string {
	name := strings.ToLower(t.String()) + ".tsv"
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
