// Copyright (c) 2026 nrbf-go Authors

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/nrbf-go/nrbf-go"
	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	verbose bool

	forceZstdInput = false // force input to be zstd, irrespective of filename suffix
)

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(headerCmd)
	headerCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	rootCmd.AddCommand(flatCmd)
	flatCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	rootCmd.AddCommand(interleaveCmd)
	interleaveCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	rootCmd.AddCommand(roundTripCmd)
	roundTripCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "nrbf-go",
	Short: "nrbf-go inspects and converts .NET Remoting Binary Format streams",
	Long:  "nrbf-go inspects and converts .NET Remoting Binary Format (NRBF) streams",
}

///////////////////////////////////////////////////////////////////////////////

var headerCmd = &cobra.Command{
	Use:   "header file...",
	Short: `Prints the specified file's SerializationHeader and library registry as JSON`,
	Long:  `Prints the specified file's SerializationHeader and library registry as JSON`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := printHeader(sourceFile, forceZstdInput); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func printHeader(sourceFile string, forceZstd bool) error {
	src, closer, err := nrbf.MakeCompressedReader(sourceFile, forceZstd)
	if err != nil {
		return err
	}
	defer closer.Close()

	dec := nrbf.NewDecoder(src)
	rec, err := dec.DecodeNext()
	if err != nil {
		return fmt.Errorf("reading first record: %w", err)
	}
	header, ok := rec.(*nrbf.SerializationHeader)
	if !ok {
		return fmt.Errorf("first record is %T, not a SerializationHeader", rec)
	}

	// Keep reading so the library registry is fully populated, discarding
	// the remaining records.
	for {
		if _, err := dec.DecodeNext(); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
	}

	return nrbf.FlatEncode(os.Stdout, append([]nrbf.Record{header}, libraryRegistryRecords(dec.LibraryRegistry())...))
}

// libraryRegistryRecords wraps the decoder's library-id -> library-name map
// as a synthetic BinaryLibrary-shaped sequence for the header report; real
// streams may carry several BinaryLibrary records, one per id.
func libraryRegistryRecords(registry map[int32]string) []nrbf.Record {
	records := make([]nrbf.Record, 0, len(registry))
	for id, name := range registry {
		records = append(records, &nrbf.BinaryLibrary{LibraryId: id, LibraryName: name})
	}
	return records
}

///////////////////////////////////////////////////////////////////////////////

var flatCmd = &cobra.Command{
	Use:   "flat file...",
	Short: `Prints the specified file's records as Flat JSON`,
	Long:  `Prints the specified file's records as Flat JSON (one tagged object per record)`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := writeFlat(sourceFile, forceZstdInput, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "error: converting %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func writeFlat(sourceFile string, forceZstd bool, w io.Writer) error {
	src, closer, err := nrbf.MakeCompressedReader(sourceFile, forceZstd)
	if err != nil {
		return err
	}
	defer closer.Close()

	dec := nrbf.NewDecoder(src)
	records, err := dec.All()
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	return nrbf.FlatEncode(w, records)
}

///////////////////////////////////////////////////////////////////////////////

var interleaveCmd = &cobra.Command{
	Use:   "interleave file...",
	Short: `Prints the specified file's records as Interleaved JSON`,
	Long:  `Prints the specified file's records as Interleaved JSON (class members inlined as object keys)`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := writeInterleaved(sourceFile, forceZstdInput, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "error: converting %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func writeInterleaved(sourceFile string, forceZstd bool, w io.Writer) error {
	src, closer, err := nrbf.MakeCompressedReader(sourceFile, forceZstd)
	if err != nil {
		return err
	}
	defer closer.Close()

	dec := nrbf.NewDecoder(src)
	records, err := dec.All()
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	return nrbf.WriteInterleaved(w, records)
}

///////////////////////////////////////////////////////////////////////////////

var roundTripCmd = &cobra.Command{
	Use:   "round-trip file...",
	Short: `Decodes then re-encodes the specified file, verifying a byte-exact match`,
	Long:  `Decodes then re-encodes the specified file, verifying a byte-exact match (spec property P1)`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, sourceFile := range args {
			report, err := checkRoundTrip(sourceFile, forceZstdInput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %s\n", sourceFile, err.Error())
				failed = true
			} else if verbose {
				fmt.Printf("%s: ok (%s, %s records)\n", sourceFile,
					humanize.Bytes(uint64(report.bytes)), humanize.Comma(int64(report.records)))
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

type roundTripReport struct {
	bytes   int
	records int
}

// checkRoundTrip reproduces examples/round_trip.rs: decode, re-encode and
// byte-compare the direct path (P1), then also bounce the record sequence
// through the Flat JSON projection and through the interleaved JSON
// projection and byte-compare each (P3), reporting the first differing
// offset on any mismatch.
func checkRoundTrip(sourceFile string, forceZstd bool) (roundTripReport, error) {
	src, closer, err := nrbf.MakeCompressedReader(sourceFile, forceZstd)
	if err != nil {
		return roundTripReport{}, err
	}
	defer closer.Close()

	original, err := io.ReadAll(src)
	if err != nil {
		return roundTripReport{}, err
	}

	dec := nrbf.NewDecoder(bytes.NewReader(original))
	records, err := dec.All()
	if err != nil {
		return roundTripReport{}, fmt.Errorf("decoding: %w", err)
	}

	if err := reencodeAndCompare(records, original, "direct"); err != nil {
		return roundTripReport{}, err
	}

	var flatBuf bytes.Buffer
	if err := nrbf.FlatEncode(&flatBuf, records); err != nil {
		return roundTripReport{}, fmt.Errorf("flattening: %w", err)
	}
	flatRecords, err := nrbf.FlatDecode(&flatBuf)
	if err != nil {
		return roundTripReport{}, fmt.Errorf("parsing flat json: %w", err)
	}
	if err := reencodeAndCompare(flatRecords, original, "flat"); err != nil {
		return roundTripReport{}, err
	}

	interleavedJSON, err := func() ([]byte, error) {
		var buf bytes.Buffer
		if err := nrbf.WriteInterleaved(&buf, records); err != nil {
			return nil, fmt.Errorf("interleaving: %w", err)
		}
		return buf.Bytes(), nil
	}()
	if err != nil {
		return roundTripReport{}, err
	}
	roundTripRecords, err := nrbf.ParseInterleaved(interleavedJSON)
	if err != nil {
		return roundTripReport{}, fmt.Errorf("parsing interleaved json: %w", err)
	}
	if err := reencodeAndCompare(roundTripRecords, original, "interleaved"); err != nil {
		return roundTripReport{}, err
	}

	return roundTripReport{bytes: len(original), records: len(records)}, nil
}

func reencodeAndCompare(records []nrbf.Record, original []byte, label string) error {
	var buf bytes.Buffer
	enc := nrbf.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("%s: re-encoding: %w", label, err)
		}
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	if !bytes.Equal(original, buf.Bytes()) {
		offset := firstDifferingOffset(original, buf.Bytes())
		return fmt.Errorf("%s: round-trip mismatch at byte offset %s (%s bytes in, %s bytes out)",
			label, humanize.Comma(int64(offset)), humanize.Comma(int64(len(original))), humanize.Comma(int64(buf.Len())))
	}
	return nil
}

func firstDifferingOffset(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
