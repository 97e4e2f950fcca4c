package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVectorRoundTrips(t *testing.T) {
	model := testModel()

	err := validateVector(model, goldenVector{
		Plaintext:  "1221",
		Passphrase: "testpass",
		Comment:    "basic case",
	})
	assert.NoError(t, err)
}

func TestValidateVectorEmptyPlaintext(t *testing.T) {
	model := testModel()

	err := validateVector(model, goldenVector{
		Plaintext:  "",
		Passphrase: "testpass",
		Comment:    "empty plaintext",
	})
	assert.NoError(t, err)
}

func TestValidateVectorEmptyPassphrase(t *testing.T) {
	model := testModel()

	err := validateVector(model, goldenVector{
		Plaintext:  "12",
		Passphrase: "",
		Comment:    "empty passphrase",
	})
	assert.NoError(t, err)
}
