package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blockberries/replaybits/internal/config"
	"github.com/blockberries/replaybits/internal/payload"
	"github.com/blockberries/replaybits/pkg/bitstream"
	"github.com/blockberries/replaybits/pkg/fields"
)

var errUsage = errors.New("usage error")

func cmdDecode(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)

	recipePath := fs.String("recipe", "", "Recipe file (required)")
	snappy := fs.Bool("snappy", false, "Snappy-decode input first (overrides the recipe)")
	field := fs.Int("field", 0, "Protobuf bytes field holding the payload (overrides the recipe)")
	workers := fs.Int("workers", 0, "Files decoded in parallel (overrides the recipe)")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), `Usage: bitdump decode -recipe <recipe.toml> [options] <file>...

Decode payloads with the field layout described by a recipe.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recipePath == "" || fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: need -recipe and at least one file", errUsage)
	}

	recipe, err := config.LoadRecipe(*recipePath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "snappy":
			recipe.Snappy = *snappy
		case "field":
			recipe.Field = *field
		case "workers":
			recipe.Workers = *workers
		}
	})
	if err := config.Validate(recipe); err != nil {
		return err
	}

	dec, err := recipe.Decoder(nil)
	if err != nil {
		return err
	}

	files := fs.Args()
	opts := payload.Options{Snappy: recipe.Snappy, Field: recipe.Field}
	payloads := make([][]byte, len(files))
	for i, path := range files {
		p, err := payload.Load(path, opts)
		if err != nil {
			return err
		}
		payloads[i] = p
	}

	log.Debug().
		Str("recipe", recipe.Name).
		Int("files", len(files)).
		Int("workers", recipe.Workers).
		Msg("decoding")

	results, err := fields.DecodeBatch(context.Background(), dec, payloads, recipe.Workers)
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			log.Error().Err(res.Err).Str("file", files[i]).Msg("decode failed")
			continue
		}
		writeValues(w, files[i], res)
		log.Info().
			Str("file", files[i]).
			Int("fields", len(res.Values)).
			Int("remaining", res.Remaining).
			Msg("decoded")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(files))
	}
	return nil
}

func writeValues(w io.Writer, file string, res fields.Result) {
	fmt.Fprintf(w, "%s:\n", file)
	width := 0
	for _, v := range res.Values {
		width = max(width, len(v.Name))
	}
	for _, v := range res.Values {
		fmt.Fprintf(w, "  %-*s  @%-6d %3d bits  %v\n", width, v.Name, v.Offset, v.Bits, v.Value)
	}
	if res.Remaining > 0 {
		fmt.Fprintf(w, "  %s  %d bits unread\n", strings.Repeat(" ", width), res.Remaining)
	}
}

func cmdBits(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("bits", flag.ContinueOnError)

	from := fs.Int("from", 0, "First bit to print")
	to := fs.Int("to", -1, "Bit to stop at (default: end of payload)")
	snappy := fs.Bool("snappy", false, "Snappy-decode input first")
	field := fs.Int("field", 0, "Protobuf bytes field holding the payload")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), `Usage: bitdump bits [options] <file>

Print a payload as 0/1 characters in read order, 64 bits per line.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: need exactly one file", errUsage)
	}

	data, err := payload.Load(fs.Arg(0), payload.Options{Snappy: *snappy, Field: *field})
	if err != nil {
		return err
	}
	writeBits(w, data, *from, *to)
	return nil
}

const bitsPerLine = 64

func writeBits(w io.Writer, data []byte, from, to int) {
	r := bitstream.GetReader(data)
	defer bitstream.PutReader(r)

	if to < 0 || to > r.Len() {
		to = r.Len()
	}
	for start := max(from, 0); start < to; start += bitsPerLine {
		fmt.Fprintf(w, "%8d  %s\n", start, r.BitString(start, min(start+bitsPerLine, to)))
	}
}

func cmdEncoders(w io.Writer) {
	title := cases.Title(language.English)
	for _, name := range fields.DefaultRegistry.Names() {
		fmt.Fprintf(w, "%-16s %s\n", name, title.String(strings.ReplaceAll(name, "_", " ")))
	}
}
