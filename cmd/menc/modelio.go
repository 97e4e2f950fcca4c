package main

import (
	"fmt"
	"os"

	"github.com/stevekrenzel/modeled-encryption/internal/config"
	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/weightcrypto"
)

// loadModel reads cfg's weights file (decrypting it first if
// weights_passphrase is set) and reconstructs the trained NgramModel.
func loadModel(cfg *config.Config) (*lm.NgramModel, error) {
	raw, err := os.ReadFile(cfg.Model.WeightsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file %s: %w", cfg.Model.WeightsFile, err)
	}

	if cfg.Model.WeightsPassphrase != "" {
		raw, err = weightcrypto.Decrypt(cfg.Model.WeightsPassphrase, raw)
		if err != nil {
			return nil, err
		}
	}

	return lm.UnmarshalNgramModel(raw)
}

// saveModel persists model's trained weights to cfg's weights file,
// encrypting them first if weights_passphrase is set.
func saveModel(cfg *config.Config, model *lm.NgramModel) error {
	raw, err := model.MarshalWeights()
	if err != nil {
		return fmt.Errorf("failed to serialize weights: %w", err)
	}

	if cfg.Model.WeightsPassphrase != "" {
		raw, err = weightcrypto.Encrypt(cfg.Model.WeightsPassphrase, raw)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(cfg.Model.WeightsFile, raw, 0600); err != nil {
		return fmt.Errorf("failed to write weights file %s: %w", cfg.Model.WeightsFile, err)
	}

	return nil
}
