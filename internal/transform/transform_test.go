package transform

import (
	"testing"

	"github.com/stevekrenzel/modeled-encryption/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNilConfigIsIdentity(t *testing.T) {
	p, err := New(nil)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", p.Apply("hello world"))
}

func TestTranslateAppliesCharacterMapping(t *testing.T) {
	p, err := New(&config.TransformationsConfig{
		Translate: &[2]string{"ab", "xy"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "xyxy", p.Apply("abab"))
}

func TestSubstitutionsRunInOrder(t *testing.T) {
	p, err := New(&config.TransformationsConfig{
		Substitutions: [][2]string{
			{`\d+`, "#"},
			{`#+`, "N"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "xN", p.Apply("x123"))
}

func TestTranslateRunsBeforeSubstitutions(t *testing.T) {
	p, err := New(&config.TransformationsConfig{
		Translate:     &[2]string{"a", "1"},
		Substitutions: [][2]string{{`\d`, "digit"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "digit", p.Apply("a"))
}
