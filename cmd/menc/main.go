package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/stevekrenzel/modeled-encryption/internal/cliops"
	"github.com/stevekrenzel/modeled-encryption/internal/config"
	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/modelscan"
	"github.com/stevekrenzel/modeled-encryption/internal/preader"
	"github.com/stevekrenzel/modeled-encryption/internal/transform"
	"github.com/stevekrenzel/modeled-encryption/internal/wireenc"
)

func main() {
	app := cli.NewApp()
	app.Name = "menc"
	app.Version = "master"
	app.Usage = "model-based steganographic encryption"

	var configPath string
	var keyArg string
	var inputArg string
	var dataArg string
	var sizeArg int
	var base85Arg bool

	configFlag := cli.StringFlag{
		Name:        "config, c",
		Usage:       "path to the model's JSON configuration file",
		Required:    true,
		Destination: &configPath,
	}
	keyFlag := cli.StringFlag{
		Name:        "key, k",
		Usage:       "passphrase (if omitted, prompted for interactively)",
		Destination: &keyArg,
	}
	inputFlag := cli.StringFlag{
		Name:        "file, f",
		Usage:       "path to the input file (omitted or \"-\" means stdin)",
		Destination: &inputArg,
	}

	app.Commands = []cli.Command{
		{
			Name:  "encrypt",
			Usage: "encrypt stdin (or -f FILE) into armored ciphertext on stdout",
			Flags: []cli.Flag{
				configFlag,
				keyFlag,
				inputFlag,
				cli.BoolFlag{
					Name:        "base85",
					Usage:       "armor the output with base85 instead of base64",
					Destination: &base85Arg,
				},
			},
			Action: func(c *cli.Context) error {
				_, model, err := loadModelFromConfig(configPath)
				if err != nil {
					return err
				}

				in, closeIn, err := openInput(inputArg)
				if err != nil {
					return err
				}
				defer closeIn()

				enc := wireenc.Base64
				if base85Arg {
					enc = wireenc.Base85
				}

				pr := encryptPassphraseReader(keyArg)

				err = cliops.Encrypt(model, in, os.Stdout, pr, enc)
				if errors.Is(err, preader.ErrPassphraseMismatch) {
					fmt.Fprintln(os.Stderr, "passphrases did not match")
					os.Exit(2)
				}
				return err
			},
		},
		{
			Name:  "decrypt",
			Usage: "decrypt stdin (or -f FILE) to stdout (a wrong passphrase yields a decoy, not an error)",
			Flags: []cli.Flag{
				configFlag,
				keyFlag,
				inputFlag,
			},
			Action: func(c *cli.Context) error {
				_, model, err := loadModelFromConfig(configPath)
				if err != nil {
					return err
				}

				in, closeIn, err := openInput(inputArg)
				if err != nil {
					return err
				}
				defer closeIn()

				pr := decryptPassphraseReader(keyArg)

				return cliops.Decrypt(model, in, os.Stdout, pr)
			},
		},
		{
			Name:  "train",
			Usage: "train the model's weights file on a corpus of text",
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{
					Name:        "data, d",
					Usage:       "path to the training corpus",
					Required:    true,
					Destination: &dataArg,
				},
			},
			Action: func(c *cli.Context) error {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}

				model, err := newTrainableModel(cfg)
				if err != nil {
					return err
				}

				corpus, err := os.ReadFile(dataArg)
				if err != nil {
					return fmt.Errorf("failed to read training corpus %s: %w", dataArg, err)
				}

				pipeline, err := transform.New(cfg.Transformations)
				if err != nil {
					return err
				}

				if err := model.Train(pipeline.Apply(string(corpus))); err != nil {
					return fmt.Errorf("training failed: %w", err)
				}

				return saveModel(cfg, model)
			},
		},
		{
			Name:  "sample",
			Usage: "sample SIZE characters from the trained model, for inspecting its output distribution",
			Flags: []cli.Flag{
				configFlag,
				cli.IntFlag{
					Name:        "size, s",
					Usage:       "number of characters to sample",
					Value:       100,
					Destination: &sizeArg,
				},
			},
			Action: func(c *cli.Context) error {
				_, model, err := loadModelFromConfig(configPath)
				if err != nil {
					return err
				}

				start := make([]rune, model.SequenceLength())
				for i := range start {
					start[i] = model.Boundary()
				}

				stream, err := modelscan.NewTokenStream(model, start, model.Novelty())
				if err != nil {
					return err
				}

				out := make([]rune, 0, sizeArg)
				for i := 0; i < sizeArg; i++ {
					ch, err := stream.Next()
					if err != nil {
						return err
					}
					out = append(out, ch)
				}

				fmt.Println(string(out))
				return nil
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		os.Exit(1)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openInput resolves the -f/--file flag per spec.md §6: an omitted or "-"
// path means stdin, anything else is opened as a regular file. The returned
// closer is always safe to call, even for stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// encryptPassphraseReader resolves the -k/--key flag: a supplied key is
// used directly and prompts are skipped entirely; otherwise the passphrase
// is read from the terminal twice and the reads must agree (spec.md §6).
func encryptPassphraseReader(key string) preader.PassphraseReader {
	if key != "" {
		return preader.NewConstant(key)
	}
	return preader.NewConfirming(func() preader.PassphraseReader {
		return &preader.StdinPassphraseReader{}
	})
}

// decryptPassphraseReader resolves the -k/--key flag for decrypt, which
// only ever prompts once (there is nothing to confirm against).
func decryptPassphraseReader(key string) preader.PassphraseReader {
	if key != "" {
		return preader.NewConstant(key)
	}
	return &preader.StdinPassphraseReader{}
}

func loadModelFromConfig(path string) (*config.Config, *lm.NgramModel, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	model, err := loadModel(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, model, nil
}

func newTrainableModel(cfg *config.Config) (*lm.NgramModel, error) {
	return lm.NewNgramModel(cfg.NgramConfig())
}
