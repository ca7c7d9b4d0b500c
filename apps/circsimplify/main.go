//
// main.go
//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/markkurossi/circsimplify/benchfmt"
	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/patterndb"
	"github.com/markkurossi/circsimplify/simplify"
	"github.com/markkurossi/circsimplify/stats"
	"github.com/markkurossi/text/superscript"
)

func main() {
	input := flag.String("i", "", "Input directory of .bench files")
	output := flag.String("o", "", "Output directory (stdout if omitted)")
	statsPath := flag.String("s", "", "CSV statistics output path")
	basisFlag := flag.String("b", "BENCH", "Operator basis: AIG or BENCH")
	dbDir := flag.String("d", "databases", "Pattern database directory")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	basis, err := parseBasis(*basisFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "circsimplify: missing -i input directory")
		flag.Usage()
		os.Exit(2)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("circsimplify: %v", r)
		}
	}()

	db, err := loadDatabase(basis, *dbDir)
	if err != nil {
		log.Fatalf("circsimplify: %v", err)
	}

	strategy := simplify.EndToEnd(basis, db)

	files, err := listBenchFiles(*input)
	if err != nil {
		log.Fatalf("circsimplify: %v", err)
	}

	if *output != "" {
		if err := os.MkdirAll(*output, 0o755); err != nil {
			log.Fatalf("circsimplify: creating output directory: %v", err)
		}
	}

	var csvFile *os.File
	if *statsPath != "" {
		csvFile, err = os.Create(*statsPath)
		if err != nil {
			log.Fatalf("circsimplify: creating stats file: %v", err)
		}
		defer csvFile.Close()
	}

	run := new(stats.Run)
	for i, path := range files {
		idx := superscript.Itoa(i + 1)
		if *debug {
			log.Printf("file%s: %s", idx, path)
		}

		run.Clear()
		if err := processFile(path, *output, strategy, run, *debug); err != nil {
			log.Printf("circsimplify: %s: %v (skipped)", path, err)
			continue
		}

		if csvFile != nil {
			if err := run.WriteCSV(csvFile, i == 0); err != nil {
				log.Printf("circsimplify: %s: writing stats: %v", path, err)
			}
		}
	}
}

func parseBasis(s string) (patterndb.Basis, error) {
	switch strings.ToUpper(s) {
	case "AIG":
		return patterndb.AIG, nil
	case "BENCH":
		return patterndb.Bench, nil
	default:
		return 0, fmt.Errorf("circsimplify: unknown basis %q (want AIG or BENCH)", s)
	}
}

func loadDatabase(basis patterndb.Basis, dir string) (*patterndb.DB, error) {
	name := "aig.db"
	if basis == patterndb.Bench {
		name = "bench.db"
	}
	return patterndb.Load(basis, filepath.Join(dir, name))
}

func listBenchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bench") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func processFile(path, outputDir string, strategy simplify.Transformer, run *stats.Run, debug bool) error {
	c, enc, err := benchfmt.ParseFile(path)
	if err != nil {
		return err
	}
	run.InitialGates = c.N()

	start := time.Now()
	simplified, simplifiedEnc := strategy.Apply(c, enc)
	run.AddStage(stats.StageSample{
		Label:    "simplify",
		Before:   c.Stats(),
		After:    simplified.Stats(),
		Duration: time.Since(start),
	})
	run.FinalGates = simplified.N()

	if debug {
		log.Printf("%s: %s", path, simplified.String())
	}

	if outputDir == "" {
		printCircuit(simplified, simplifiedEnc)
		return nil
	}
	outPath := filepath.Join(outputDir, filepath.Base(path))
	return benchfmt.WriteFile(outPath, simplified, simplifiedEnc)
}

// printCircuit writes a human-readable listing of c to stdout,
// annotating every gate with its "<id> => <name>" label -- the
// fallback presentation when no -o output directory was given.
func printCircuit(c *circuit.Circuit, enc *circuit.Encoder[string]) {
	for id := 0; id < c.N(); id++ {
		gid := circuit.GateID(id)
		fmt.Printf("%s\t%s\t%v\n", circuit.LabelForID(gid, enc), c.Type(gid), c.Operands(gid))
	}
	for _, out := range c.Outputs() {
		fmt.Printf("OUTPUT %s\n", circuit.LabelForID(out, enc))
	}
}
