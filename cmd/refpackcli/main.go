// Command refpackcli compresses and decompresses refpack (QFS) streams.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/andybalholm/refpack"
	"github.com/andybalholm/refpack/header"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = runCompress(os.Args[2:])
	case "decompress":
		err = runDecompress(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: refpackcli compress|decompress [flags] -i input -o output")
}

func headerMode(name string) (header.Mode, error) {
	switch name {
	case "reference":
		return header.Reference, nil
	case "maxis":
		return header.Maxis, nil
	case "maxis2":
		return header.Maxis2, nil
	case "simea":
		return header.SimEA, nil
	default:
		return nil, fmt.Errorf("unknown header format %q", name)
	}
}

func compressionMode(name string) (refpack.Mode, error) {
	switch name {
	case "fastest":
		return refpack.ModeFastest, nil
	case "fast":
		return refpack.ModeFast, nil
	case "deep":
		return refpack.ModeDeep, nil
	case "optimal":
		return refpack.ModeOptimal, nil
	default:
		return 0, fmt.Errorf("unknown compression mode %q", name)
	}
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	input := fs.String("i", "", "input file")
	output := fs.String("o", "", "output file")
	format := fs.String("format", "reference", "header format: reference, maxis, maxis2, simea")
	mode := fs.String("mode", "deep", "compression mode: fastest, fast, deep, optimal")
	chainDepth := fs.Uint("chain-depth", 16, "hash-chain search depth for deep/optimal mode")
	verbose := fs.Bool("v", false, "log per-file compression ratio and elapsed time")
	fs.Parse(args)

	if *input == "" || *output == "" {
		fs.Usage()
		return fmt.Errorf("both -i and -o are required")
	}

	hdr, err := headerMode(*format)
	if err != nil {
		return err
	}
	m, err := compressionMode(*mode)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(*input)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := refpack.CompressBytes(src, hdr, refpack.Options{
		Mode:       m,
		ChainDepth: uint16(*chainDepth),
	})
	if err != nil {
		return fmt.Errorf("compressing %s: %w", *input, err)
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(*output, out, 0o666); err != nil {
		return err
	}

	if *verbose {
		slog.Info("compressed",
			"input", *input,
			"output", *output,
			"in_bytes", len(src),
			"out_bytes", len(out),
			"ratio", float64(len(out))/float64(len(src)),
			"elapsed", elapsed,
		)
	}
	return nil
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	input := fs.String("i", "", "input file")
	output := fs.String("o", "", "output file")
	format := fs.String("format", "reference", "header format: reference, maxis, maxis2, simea")
	verbose := fs.Bool("v", false, "log elapsed time")
	fs.Parse(args)

	if *input == "" || *output == "" {
		fs.Usage()
		return fmt.Errorf("both -i and -o are required")
	}

	hdr, err := headerMode(*format)
	if err != nil {
		return err
	}

	fileIn, err := os.Open(*input)
	if err != nil {
		return err
	}
	defer fileIn.Close()

	var buf []byte
	start := time.Now()
	buf, err = decompressAll(fileIn, hdr)
	if err != nil {
		return fmt.Errorf("decompressing %s: %w", *input, err)
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(*output, buf, 0o666); err != nil {
		return err
	}

	if *verbose {
		slog.Info("decompressed",
			"input", *input,
			"output", *output,
			"out_bytes", len(buf),
			"elapsed", elapsed,
		)
	}
	return nil
}

func decompressAll(r io.Reader, hdr header.Mode) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return refpack.DecompressBytes(src, hdr)
}
