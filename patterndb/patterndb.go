//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package patterndb implements the read-only pattern database the
// three-input minimizer looks optimal realizations up in: a
// catalog of small (<=3-input, <=3-output) subcircuits indexed by
// their output truth tables.
package patterndb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/markkurossi/circsimplify/gate"
)

// Basis names the operator set a database was compiled for.
type Basis int

// Supported bases.
const (
	AIG Basis = iota
	Bench
)

func (b Basis) String() string {
	if b == AIG {
		return "AIG"
	}
	return "BENCH"
}

// GateRecord is one gate within a database Record, in the record's
// own internal gate numbering (positions [0, InputsCount) are the
// record's inputs).
type GateRecord struct {
	Type     gate.Type
	Operands []int
}

// Record is one cataloged subcircuit.
type Record struct {
	InputsCount  int
	OutputPatterns []byte // one 8-bit truth table per output, already sorted ascending
	OutputIDs    []int    // internal gate numbering of each output, aligned with OutputPatterns
	Gates        []GateRecord
	RealOperatorCount int // count of non-NOT gates -- the cost metric
}

// DB is an immutable, fully-loaded pattern database.
type DB struct {
	basis   Basis
	records []Record
	index   map[string]int // sorted-output-pattern key -> record index
}

// Basis returns the operator basis db was loaded for.
func (db *DB) Basis() Basis {
	return db.basis
}

// Record returns the record at idx.
func (db *DB) Record(idx int) *Record {
	return &db.records[idx]
}

func patternKey(patterns []byte) string {
	sorted := append([]byte(nil), patterns...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%02x", p)
	}
	return b.String()
}

// Lookup returns the record matching patterns (in any order) and its
// index, or ok=false if the database has no entry for that output
// set.
func (db *DB) Lookup(patterns []byte) (*Record, int, bool) {
	idx, ok := db.index[patternKey(patterns)]
	if !ok {
		return nil, 0, false
	}
	return &db.records[idx], idx, true
}

// Load reads a pattern database file in the text format documented
// in SPEC_FULL.md 5.11 (a direct port of circuits_db.hpp's
// read_aig/read_bench).
func Load(basis Basis, path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patterndb: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(basis, f)
}

// Parse reads a pattern database from r.
func Parse(basis Basis, r io.Reader) (*DB, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	db := &DB{basis: basis, index: make(map[string]int)}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("patterndb: malformed record header %q", line)
		}
		inputsCount, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("patterndb: bad inputs count %q: %w", fields[0], err)
		}
		outputsCount, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("patterndb: bad outputs count %q: %w", fields[1], err)
		}

		if !sc.Scan() {
			return nil, fmt.Errorf("patterndb: truncated record (missing output patterns)")
		}
		patternFields := strings.Fields(sc.Text())
		if len(patternFields) != outputsCount {
			return nil, fmt.Errorf("patterndb: expected %d output patterns, got %d", outputsCount, len(patternFields))
		}
		patterns := make([]byte, outputsCount)
		for i, f := range patternFields {
			v, err := strconv.ParseUint(f, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("patterndb: bad output pattern %q: %w", f, err)
			}
			patterns[i] = byte(v)
		}

		if !sc.Scan() {
			return nil, fmt.Errorf("patterndb: truncated record (missing output ids)")
		}
		idFields := strings.Fields(sc.Text())
		if len(idFields) != outputsCount {
			return nil, fmt.Errorf("patterndb: expected %d output ids, got %d", outputsCount, len(idFields))
		}
		outputIDs := make([]int, outputsCount)
		maxID := inputsCount - 1
		for i, f := range idFields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("patterndb: bad output id %q: %w", f, err)
			}
			outputIDs[i] = v
			if v > maxID {
				maxID = v
			}
		}

		// Gate records run from inputsCount through maxID,
		// generalized rather than hardcoded to a fixed start (the
		// resolved Open Question from SPEC_FULL.md 10).
		var gates []GateRecord
		realOps := 0
		for g := inputsCount; g <= maxID; g++ {
			if !sc.Scan() {
				return nil, fmt.Errorf("patterndb: truncated record (missing gate %d operator)", g)
			}
			op := strings.TrimSpace(sc.Text())
			t, ok := gate.ParseType(op)
			if !ok {
				return nil, fmt.Errorf("patterndb: unknown operator %q", op)
			}
			if !sc.Scan() {
				return nil, fmt.Errorf("patterndb: truncated record (missing gate %d operands)", g)
			}
			operandFields := strings.Fields(sc.Text())
			operands := make([]int, len(operandFields))
			for i, f := range operandFields {
				v, err := strconv.Atoi(f)
				if err != nil {
					return nil, fmt.Errorf("patterndb: bad operand %q: %w", f, err)
				}
				operands[i] = v
			}
			gates = append(gates, GateRecord{Type: t, Operands: operands})
			if t != gate.Not {
				realOps++
			}
		}

		rec := Record{
			InputsCount:       inputsCount,
			OutputPatterns:    patterns,
			OutputIDs:         outputIDs,
			Gates:             gates,
			RealOperatorCount: realOps,
		}
		idx := len(db.records)
		db.records = append(db.records, rec)
		db.index[patternKey(patterns)] = idx
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("patterndb: scanning: %w", err)
	}
	return db, nil
}
