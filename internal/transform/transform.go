// Package transform applies the optional input normalization described by a
// config's TransformationsConfig: a character translation pass, followed by
// an ordered list of regular-expression substitutions. It is consumed by the
// CLI layer only; the core codec packages never import it, since the model
// always operates on whatever text it is actually given.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stevekrenzel/modeled-encryption/internal/config"
)

// Pipeline is a compiled, ready-to-apply transformation chain.
type Pipeline struct {
	translator   *strings.Replacer
	substitutions []compiledSubstitution
}

type compiledSubstitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// New compiles a config.TransformationsConfig into a Pipeline. A nil cfg
// yields a Pipeline whose Apply is the identity function.
func New(cfg *config.TransformationsConfig) (*Pipeline, error) {
	p := &Pipeline{}
	if cfg == nil {
		return p, nil
	}

	if cfg.Translate != nil {
		from, to := []rune(cfg.Translate[0]), []rune(cfg.Translate[1])
		pairs := make([]string, 0, len(from)*2)
		for i, c := range from {
			pairs = append(pairs, string(c), string(to[i]))
		}
		p.translator = strings.NewReplacer(pairs...)
	}

	for _, sub := range cfg.Substitutions {
		re, err := regexp.Compile(sub[0])
		if err != nil {
			return nil, fmt.Errorf("transform: invalid substitution pattern %q: %w", sub[0], err)
		}
		p.substitutions = append(p.substitutions, compiledSubstitution{pattern: re, replacement: sub[1]})
	}

	return p, nil
}

// Apply runs the translation pass (if configured) followed by every
// substitution, in declaration order, matching original_source/src/model.py's
// "translate before substitute" contract.
func (p *Pipeline) Apply(text string) string {
	if p.translator != nil {
		text = p.translator.Replace(text)
	}
	for _, sub := range p.substitutions {
		text = sub.pattern.ReplaceAllString(text, sub.replacement)
	}
	return text
}
