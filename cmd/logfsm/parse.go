package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/logfsm"
	"github.com/db47h/logfsm/jsonl"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file ...]",
	Short: "Parse log files",
	Long: "Parse log files (standard input if none or -) and write records as JSON Lines or text.\n" +
		"Files with a .zst suffix are decompressed. Parse errors are reported on standard error.",
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "json", "Output format: json or text")
	parseCmd.Flags().Bool("ids", false, "Add a deterministic id to every JSON record")
	parseCmd.Flags().StringP("output", "o", "", "Output file (default: standard output); a .zst suffix compresses it")
	parseCmd.Flags().Bool("zstd", false, "Decompress all inputs with zstd")
	parseCmd.Flags().Bool("strict", false, "Stop at the first parse error")

	_ = viper.BindPFlag("format", parseCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("ids", parseCmd.Flags().Lookup("ids"))
	_ = viper.BindPFlag("output", parseCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("zstd", parseCmd.Flags().Lookup("zstd"))
	_ = viper.BindPFlag("strict", parseCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(parseCmd)
}

var errStrict = errors.New("parse error in strict mode")

func runParse(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())
	strict := viper.GetBool("strict")

	out, closeOut, err := openOutput(viper.GetString("output"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	write, err := recordWriter(viper.GetString("format"), out, viper.GetBool("ids"))
	if err != nil {
		_ = closeOut()
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		src, err := readInput(name, cmd.InOrStdin(), viper.GetBool("zstd"))
		if err != nil {
			_ = closeOut()
			return err
		}
		if err = parseSource(name, src, write, cmd.ErrOrStderr(), log, strict); err != nil {
			_ = closeOut()
			return err
		}
	}
	return closeOut()
}

// parseSource parses all records in src and writes them with write. Parse
// errors are reported to errw.
func parseSource(name string, src []byte, write func(*logfsm.Record) error, errw io.Writer, log *slog.Logger, strict bool) error {
	s := logfsm.NewScanner(bytes.NewReader(src), logfsm.Name(name), logfsm.WithLogger(log))
	var nrec, nerr int
	for {
		rec, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var e *logfsm.Error
			if !errors.As(err, &e) || logfsm.IsFatal(err) {
				return err
			}
			nerr++
			reportError(errw, src, e)
			if strict {
				return fmt.Errorf("%s: %w", name, errStrict)
			}
			continue
		}
		if err = write(rec); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		nrec++
	}
	log.Info("parsed input", "input", name, "records", nrec, "errors", nerr)
	return nil
}

// recordWriter returns a function that writes records to w in the given
// format.
func recordWriter(format string, w io.Writer, ids bool) (func(*logfsm.Record) error, error) {
	switch format {
	case "json":
		var opts []jsonl.EncoderOption
		if ids {
			opts = append(opts, jsonl.WithIDs())
		}
		return jsonl.NewEncoder(w, opts...).Encode, nil
	case "text":
		return func(r *logfsm.Record) error {
			_, err := fmt.Fprintln(w, r.String())
			return err
		}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// readInput reads the named input in memory, "-" being stdin. Inputs with a
// .zst suffix, or all inputs if forceZstd is set, are decompressed.
func readInput(name string, stdin io.Reader, forceZstd bool) ([]byte, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if forceZstd || strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defer dec.Close()
		r = dec
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return src, nil
}

// openOutput opens the output file. An empty name or "-" selects stdout. The
// returned function flushes and closes the output.
func openOutput(name string, stdout io.Writer) (io.Writer, func() error, error) {
	if name == "" || name == "-" {
		bw := bufio.NewWriter(stdout)
		return bw, bw.Flush, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(name, ".zst") {
		if enc, err = zstd.NewWriter(f); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		w = enc
	}
	bw := bufio.NewWriter(w)
	return bw, func() error {
		err := bw.Flush()
		if enc != nil {
			err = errors.Join(err, enc.Close())
		}
		return errors.Join(err, f.Close())
	}, nil
}
