// levelconv converts plain text maps into level YAML files for the hilo server.
//
// The input has one row per line, top row first, using the unit symbols of
// the game. Text past the map width on a row is kept as name bindings
// ("P=alice E=warden").
//
// Usage:
//
//	go run ./cmd/levelconv -width 73 demo-map-01.txt
//	go run ./cmd/levelconv -out levels -name map03 maps/*.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmamonov/hilo/internal/data"
)

func main() {
	outDir := flag.String("out", "levels", "output directory")
	width := flag.Int("width", 0, "map width (0 = length of the first row)")
	name := flag.String("name", "", "level name (single input only; default: file name)")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: levelconv [-out dir] [-width n] [-name level] map.txt...")
		os.Exit(2)
	}
	if *name != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "error: -name needs exactly one input")
		os.Exit(2)
	}

	failed := 0
	for _, in := range inputs {
		levelName := *name
		if levelName == "" {
			levelName = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		}
		if err := convert(in, *outDir, levelName, *width); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func convert(inputPath, outDir, name string, width int) error {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}
	level, err := data.ParseLevelText(name, width, text)
	if err != nil {
		return err
	}
	outputPath := filepath.Join(outDir, name+".yaml")
	header := fmt.Sprintf("Converted from %s", filepath.Base(inputPath))
	if err := data.WriteLevel(outputPath, level, header); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	fmt.Printf("Wrote %s (%dx%d) to %s\n", level.Name, level.Width, level.Height(), outputPath)
	return nil
}
