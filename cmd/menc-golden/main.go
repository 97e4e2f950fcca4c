// Command menc-golden maintains a corpus of round-trip regression cases
// against a fixed deterministic-shape mock model.
//
// Unlike saltybox's golden vectors, a menc ciphertext is never byte-for-byte
// reproducible: normalizing/priming weights, the padding token, and the IV
// are all freshly drawn from the process RNG on every call (spec.md §5, §7
// P7-P9). So rather than pinning an exact ciphertext, this harness pins a
// corpus of (passphrase, plaintext) pairs and validates the invariants that
// must hold across any run: the correct passphrase recovers the plaintext
// exactly, terminated by the model's boundary character, and a wrong
// passphrase recovers some well-formed decoy without error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/stevekrenzel/modeled-encryption/internal/cipherglue"
	"github.com/stevekrenzel/modeled-encryption/internal/lmmock"
)

const vectorsPath = "testdata/golden-vectors.json"

type goldenVector struct {
	Plaintext  string `json:"plaintext"`
	Passphrase string `json:"passphrase"`
	Comment    string `json:"comment"`
}

func main() {
	rootCmd := &cli.Command{
		Name:        "menc-golden",
		Version:     "unknown (master)",
		Usage:       "a tool to exercise round-trip and deniability invariants against a corpus of cases",
		HideVersion: true,
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate the golden corpus",
				Action: func(_ context.Context, _ *cli.Command) error {
					return generateGolden()
				},
			},
			{
				Name:  "validate",
				Usage: "validate the golden corpus",
				Action: func(_ context.Context, _ *cli.Command) error {
					return validateGolden()
				},
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return fmt.Errorf("command is required; use help to see list of commands")
		},
	}

	if err := rootCmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func testModel() *lmmock.UniformModel {
	return lmmock.New("012", '0')
}

func generateGolden() error {
	vectors := []goldenVector{
		{Plaintext: "", Passphrase: "testpass", Comment: "empty plaintext"},
		{Plaintext: "1", Passphrase: "testpass", Comment: "single character plaintext"},
		{Plaintext: "0", Passphrase: "testpass", Comment: "plaintext is exactly the boundary character"},
		{Plaintext: "121212121212", Passphrase: "testpass", Comment: "repeating pattern"},
		{Plaintext: "1221100221", Passphrase: "testpass", Comment: "embedded boundary characters"},
		{Plaintext: "2", Passphrase: "", Comment: "empty passphrase"},
		{Plaintext: "12", Passphrase: strings.Repeat("x", 1000), Comment: "very long passphrase"},
		{Plaintext: strings.Repeat("12", 500), Passphrase: "testpass", Comment: "large plaintext"},
		{Plaintext: "1", Passphrase: "p@ss w0rd!", Comment: "passphrase with special characters"},
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		return err
	}

	f, err := os.Create(vectorsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(vectors)
}

func validateGolden() error {
	data, err := os.ReadFile(vectorsPath)
	if err != nil {
		return fmt.Errorf("failed to read golden vectors: %w", err)
	}

	var vectors []goldenVector
	if err := json.Unmarshal(data, &vectors); err != nil {
		return fmt.Errorf("failed to parse golden vectors: %w", err)
	}

	fmt.Printf("Validating %d golden vectors...\n", len(vectors))

	model := testModel()
	failCount := 0
	for i, v := range vectors {
		if err := validateVector(model, v); err != nil {
			fmt.Printf("FAIL [%d] %s: %v\n", i, v.Comment, err)
			failCount++
			continue
		}
		fmt.Printf("PASS [%d] %s\n", i, v.Comment)
	}

	if failCount > 0 {
		return fmt.Errorf("%d of %d tests failed", failCount, len(vectors))
	}

	fmt.Printf("\nAll %d tests passed!\n", len(vectors))
	return nil
}

func validateVector(model *lmmock.UniformModel, v goldenVector) error {
	ciphertext, err := cipherglue.Encrypt(model, v.Passphrase, v.Plaintext)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	recovered, err := cipherglue.Decrypt(model, v.Passphrase, ciphertext)
	if err != nil {
		return fmt.Errorf("decryption with correct passphrase failed: %w", err)
	}
	expected := v.Plaintext
	if !strings.HasSuffix(expected, string(model.Boundary())) {
		expected += string(model.Boundary())
	}
	if recovered != expected {
		return fmt.Errorf("round trip mismatch: expected %q, got %q", expected, recovered)
	}

	decoy, err := cipherglue.Decrypt(model, "wrong-"+v.Passphrase, ciphertext)
	if err != nil {
		return fmt.Errorf("decryption with wrong passphrase returned an error (should decode to a decoy instead): %w", err)
	}
	for _, c := range decoy {
		found := false
		for _, a := range model.Alphabet() {
			if a == c {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("decoy contains character %q outside the model's alphabet", c)
		}
	}

	return nil
}
