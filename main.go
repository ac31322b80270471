// go-uasset-converter
// Converts cooked UE4 DataTable packages (.uasset + .uexp) into JSON.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	fmt.Println("go-uasset-converter")
	fmt.Println("Converts UE4 DataTable packages into JSON")
	fmt.Println()

	lz4Flag := flag.Bool("lz4", false, "Compress JSON output with LZ4")
	lz4Short := flag.Bool("z", false, "Compress JSON output with LZ4 (short)")
	lz4hc := flag.Bool("lz4hc", false, "Use LZ4 high compression")
	lz4hcShort := flag.Bool("hc", false, "Use LZ4 high compression (short)")
	flag.Parse()

	useLZ4 := *lz4Flag || *lz4Short || *lz4hc || *lz4hcShort
	useHC := *lz4hc || *lz4hcShort

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: go-uasset-converter [options] <files/directories>")
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	startTime := time.Now()

	for _, path := range paths {
		if err := processPath(path, useLZ4, useHC); err != nil {
			log.Printf("Error processing %s: %v\n", path, err)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Took %d seconds\n", int(elapsed.Seconds()))
}

func processPath(path string, lz4 bool, hc bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return convertDir(path, lz4, hc)
	}

	return convertFile(path, lz4, hc)
}

func convertFile(filename string, lz4 bool, hc bool) error {
	if strings.ToLower(filepath.Ext(filename)) != ".uasset" {
		return nil
	}

	converter := NewConverter(filename, lz4, hc)
	fmt.Printf("%s -> %s\n", filename, converter.OutputFilename())
	return converter.Convert()
}
