// mirrorcrypt encrypts and decrypts byte streams with a mirror-field key.
//
// The cipher is symmetric: running the ciphertext through the same key in
// decrypt mode restores the plaintext. By default input is base64 framed
// so that every symbol fed to the cipher lies in a 64-slot perimeter:
// encryption base64-encodes stdin before the cipher runs, decryption
// base64-decodes after it. --raw feeds stdin straight through.
//
//	mirrorcrypt --keygen > key.mf
//	mirrorcrypt -k key.mf < message > message.enc
//	mirrorcrypt -k key.mf -d < message.enc
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "mirrorcrypt: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	decrypt     bool
	raw         bool
	keygen      bool
	fingerprint bool
	keyPath     string
	configPath  string
	statePath   string
	resumePath  string
	size        int
	fields      int
	debugMS     int
	seed        int64
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var o options
	var encrypt bool
	fs := pflag.NewFlagSet("mirrorcrypt", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&encrypt, "encrypt", "e", false, "encrypt stdin (default)")
	fs.BoolVarP(&o.decrypt, "decrypt", "d", false, "decrypt stdin")
	fs.BoolVar(&o.raw, "raw", false, "disable base64 framing")
	fs.BoolVar(&o.keygen, "keygen", false, "write a random key definition to stdout")
	fs.BoolVar(&o.fingerprint, "fingerprint", false, "print the key fingerprint and exit")
	fs.StringVarP(&o.keyPath, "key", "k", "", "key definition file")
	fs.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	fs.StringVar(&o.statePath, "state", "", "write the final cipher state (CBOR) to this file")
	fs.StringVar(&o.resumePath, "resume", "", "continue a stream from a saved state instead of a key")
	fs.IntVar(&o.size, "size", 0, "grid size N (overrides config)")
	fs.IntVar(&o.fields, "fields", 0, "field count K (overrides config)")
	fs.IntVar(&o.debugMS, "debug", 0, "draw every traversal step, pausing this many milliseconds")
	fs.Int64Var(&o.seed, "seed", 0, "deterministic seed for --keygen")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")

	if err := fs.Parse(args); err != nil {
		return o, fs, err
	}
	if encrypt && o.decrypt {
		return o, fs, fmt.Errorf("--encrypt and --decrypt are mutually exclusive")
	}
	if o.debugMS < 0 {
		return o, fs, fmt.Errorf("--debug must not be negative")
	}
	return o, fs, nil
}
