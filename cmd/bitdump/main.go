// Command bitdump decodes bit-packed replay payloads.
//
// Usage:
//
//	bitdump decode -recipe <recipe.toml> [options] <file>...
//	bitdump bits [options] <file>
//	bitdump encoders
//	bitdump version
//
// Decode Command:
//
//	Decode each file with the field layout of a TOML recipe.
//
//	Options:
//	  -recipe string    Recipe file (required)
//	  -snappy           Snappy-decode input first (overrides the recipe)
//	  -field int        Protobuf bytes field holding the payload (overrides the recipe)
//	  -workers int      Files decoded in parallel (overrides the recipe)
//
// Bits Command:
//
//	Print a payload as 0/1 characters, 64 bits per line.
//
//	Options:
//	  -from int         First bit to print (default 0)
//	  -to int           Bit to stop at (default: end of payload)
//	  -snappy           Snappy-decode input first
//	  -field int        Protobuf bytes field holding the payload
//
// Encoders Command:
//
//	List the field encoders a recipe may name.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/blockberries/replaybits/internal/logging"
	"github.com/blockberries/replaybits/pkg/bitstream"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logging.ConfigureRuntime()

	var err error
	switch os.Args[1] {
	case "decode", "d":
		err = cmdDecode(os.Stdout, os.Args[2:])
	case "bits", "b":
		err = cmdBits(os.Stdout, os.Args[2:])
	case "encoders", "enc":
		cmdEncoders(os.Stdout)
	case "version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Bit-packed payload decoder

Usage:
  bitdump <command> [options] <files>...

Commands:
  decode      Decode payloads with a field recipe
  bits        Print the raw bits of a payload
  encoders    List available field encoders
  version     Print version information
  help        Print this help message

Run 'bitdump <command> -h' for command-specific help.`)
}

func cmdVersion() {
	fmt.Printf("bitdump version %s\n", bitstream.VersionInfo())
}
