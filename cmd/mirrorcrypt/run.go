package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mirrorfield/bank"
	"github.com/katalvlaran/mirrorfield/cipher"
	"github.com/katalvlaran/mirrorfield/internal/config"
	"github.com/katalvlaran/mirrorfield/internal/logging"
	"github.com/katalvlaran/mirrorfield/keygen"
	"github.com/katalvlaran/mirrorfield/visual"
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if fs.Changed("size") {
		cfg.GridSize = o.size
	}
	if fs.Changed("fields") {
		cfg.FieldCount = o.fields
	}
	if fs.Changed("key") {
		cfg.KeyFile = o.keyPath
	}
	if fs.Changed("debug") {
		cfg.DebugDelay = time.Duration(o.debugMS) * time.Millisecond
	}
	if fs.Changed("raw") {
		cfg.Base64 = !o.raw
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg, stderr)

	if o.keygen {
		return writeKey(cfg, o.seed, stdout, logger)
	}

	sess, err := openSession(cfg, o.resumePath, logger)
	if err != nil {
		return err
	}
	b := sess.Bank()
	if o.fingerprint {
		_, err := fmt.Fprintln(stdout, b.Fingerprint())
		return err
	}
	if cfg.Base64 {
		if err := requireAlphabet(b, []byte(keygen.Base64Alphabet)); err != nil {
			return err
		}
	}

	if cfg.DebugDelay > 0 {
		r, err := visual.NewTerminal(cfg.DebugDelay)
		if err != nil {
			return err
		}
		defer r.Close()
		if sess, err = withObserver(sess, r, logger); err != nil {
			return err
		}
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	output, err := transform(sess, input, o.decrypt, cfg.Base64)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug().
		Uint64("bytes", sess.Processed()).
		Bool("decrypt", o.decrypt).
		Msg("stream processed")

	if o.statePath != "" {
		return writeState(sess, o.statePath, logger)
	}
	return nil
}

func newLogger(cfg config.Config, stderr io.Writer) zerolog.Logger {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	lc.Output = stderr
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		lc.Level = lvl
	}
	logging.ApplyEnvOverrides(&lc)
	return logging.New(lc)
}

func writeKey(cfg config.Config, seed int64, stdout io.Writer, logger zerolog.Logger) error {
	opts := []keygen.Option{keygen.WithSeed(seed)}
	if cfg.Base64 {
		opts = append(opts, keygen.WithRequired([]byte(keygen.Base64Alphabet)))
	}
	g, err := keygen.New(cfg.GridSize, cfg.FieldCount, opts...)
	if err != nil {
		return err
	}
	def, err := g.Definition()
	if err != nil {
		return err
	}
	b, err := bank.Parse(def, cfg.GridSize, cfg.FieldCount)
	if err != nil {
		return err
	}
	logger.Info().
		Int("grid_size", cfg.GridSize).
		Int("field_count", cfg.FieldCount).
		Str("fingerprint", b.Fingerprint().Short()).
		Msg("key generated")
	_, err = stdout.Write(def)
	return err
}

// openSession starts a fresh stream from the key file, or resumes one
// from a saved state.
func openSession(cfg config.Config, resumePath string, logger zerolog.Logger) (*cipher.Session, error) {
	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			return nil, fmt.Errorf("read state: %w", err)
		}
		var st cipher.State
		if err := st.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		sess, err := cipher.Restore(st, cipher.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("state", resumePath).
			Uint64("processed", st.Processed).
			Str("fingerprint", sess.Bank().Fingerprint().Short()).
			Msg("stream resumed")
		return sess, nil
	}

	if cfg.KeyFile == "" {
		return nil, fmt.Errorf("no key: pass --key or set key_file in the config")
	}
	f, err := os.Open(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("open key: %w", err)
	}
	defer f.Close()

	b, err := bank.Load(f, cfg.GridSize, cfg.FieldCount)
	if err != nil {
		return nil, fmt.Errorf("load key %s: %w", cfg.KeyFile, err)
	}
	logger.Info().
		Str("key", cfg.KeyFile).
		Int("grid_size", b.Size()).
		Int("field_count", b.Count()).
		Str("fingerprint", b.Fingerprint().Short()).
		Msg("key loaded")

	return cipher.NewSession(b, cipher.WithLogger(logger))
}

// withObserver rebuilds sess with the renderer attached, keeping its state.
func withObserver(sess *cipher.Session, r *visual.Renderer, logger zerolog.Logger) (*cipher.Session, error) {
	return cipher.Restore(sess.Snapshot(),
		cipher.WithLogger(logger),
		cipher.WithStepObserver(r.Observe))
}

// requireAlphabet checks that every field can encode every symbol of a.
func requireAlphabet(b *bank.Bank, a []byte) error {
	for i := 0; i < b.Count(); i++ {
		f := b.Field(i)
		for _, ch := range a {
			if _, ok := f.Find(ch); !ok {
				return fmt.Errorf("%w: key field %d lacks base64 symbol %q (use --raw or a base64 key)",
					cipher.ErrCharacterNotFound, i, ch)
			}
		}
	}
	return nil
}

// transform runs the cipher over input with optional base64 framing.
func transform(sess *cipher.Session, input []byte, decrypt, framed bool) ([]byte, error) {
	if !framed {
		return sess.ProcessBytes(input)
	}
	if !decrypt {
		text := make([]byte, base64.RawStdEncoding.EncodedLen(len(input)))
		base64.RawStdEncoding.Encode(text, input)
		out, err := sess.ProcessBytes(text)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}

	// Only the newline encrypt appends is framing. Perimeters wider than
	// 64 slots hold arbitrary bytes, whitespace included.
	text, err := sess.ProcessBytes(bytes.TrimSuffix(input, []byte("\n")))
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(text)))
	n, err := base64.RawStdEncoding.Decode(out, text)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return out[:n], nil
}

func writeState(sess *cipher.Session, path string, logger zerolog.Logger) error {
	data, err := sess.Snapshot().MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	logger.Debug().Str("state", path).Int("bytes", len(data)).Msg("state saved")
	return nil
}
