// Package pipeline runs the cascade normalization stages over files.
//
// The stages run in a fixed order, each reading the artifact written by the
// one before:
//
//	raw export -> Unwrap -> Coerce -> Remap -> (stages, features) -> Assemble -> cascade
//
// Every stage is also available on its own, operating on explicit paths. A
// stage reads and validates all of its input before it writes anything, and
// outputs are replaced atomically.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/haarprep/cascade"
	"github.com/signadot/haarprep/coerce"
	"github.com/signadot/haarprep/debug"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/unwrap"
)

// Base names of the intermediate artifacts Run keeps. The configured
// format's suffix is appended.
const (
	UnwrappedName = "unwrapped"
	CoercedName   = "coerced"
)

type Pipeline struct {
	Config Config

	// Warn, if set, is called for every partially numeric string the coerce
	// stage leaves unchanged.
	Warn func(path, s string)

	// Colors is used for output written to Stdout.
	Colors *encode.Colors

	Stdin  io.Reader
	Stdout io.Writer
}

func New(cfg Config) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Unwrap removes bridge array wrappers from a document.
func (p *Pipeline) Unwrap(node *ir.Node) *ir.Node {
	return unwrap.Unwrap(node, unwrap.Sentinel(p.Config.Sentinel))
}

// Coerce turns numeric strings into numbers.
func (p *Pipeline) Coerce(node *ir.Node) (*ir.Node, error) {
	opts := []coerce.Option{coerce.Strict(p.Config.Strict)}
	if p.Warn != nil {
		opts = append(opts, coerce.OnPartial(p.Warn))
	}
	return coerce.CoerceChecked(node, opts...)
}

// Result holds the output of every stage of Build.
type Result struct {
	Unwrapped *ir.Node
	Coerced   *ir.Node
	Remapped  *cascade.Remapped
	Cascade   cascade.Cascade
}

// Build runs all four stages in memory. Errors are wrapped with the stage
// that failed.
func (p *Pipeline) Build(raw *ir.Node) (*Result, error) {
	res := &Result{Unwrapped: p.Unwrap(raw)}
	coerced, err := p.Coerce(res.Unwrapped)
	if err != nil {
		return nil, fmt.Errorf("error coercing: %w", err)
	}
	res.Coerced = coerced
	r, err := cascade.Remap(coerced)
	if err != nil {
		return nil, fmt.Errorf("error remapping: %w", err)
	}
	res.Remapped = r
	c, err := cascade.Assemble(r.Stages, r.Features)
	if err != nil {
		return nil, fmt.Errorf("error assembling: %w", err)
	}
	res.Cascade = c
	return res, nil
}

func (p *Pipeline) UnwrapFile(in, out string) error {
	node, err := p.read(in)
	if err != nil {
		return err
	}
	if debug.Pipeline() {
		debug.Logf("unwrap %s -> %s\n", in, out)
	}
	return p.write(output{path: out, node: p.Unwrap(node)})
}

func (p *Pipeline) CoerceFile(in, out string) error {
	node, err := p.read(in)
	if err != nil {
		return err
	}
	if debug.Pipeline() {
		debug.Logf("coerce %s -> %s\n", in, out)
	}
	res, err := p.Coerce(node)
	if err != nil {
		return fmt.Errorf("error coercing %q: %w", in, err)
	}
	return p.write(output{path: out, node: res})
}

// RemapFile splits a normalized export into the stages and features
// artifacts. Empty paths select the configured well-known names.
func (p *Pipeline) RemapFile(in, stagesOut, featuresOut string) error {
	stagesOut = or(stagesOut, p.Config.StagesFile)
	featuresOut = or(featuresOut, p.Config.FeaturesFile)
	node, err := p.read(in)
	if err != nil {
		return err
	}
	if debug.Pipeline() {
		debug.Logf("remap %s -> %s, %s\n", in, stagesOut, featuresOut)
	}
	r, err := cascade.Remap(node)
	if err != nil {
		return fmt.Errorf("error remapping %q: %w", in, err)
	}
	return p.write(
		output{path: stagesOut, node: cascade.StagesToIR(r.Stages)},
		output{path: featuresOut, node: cascade.FeaturesToIR(r.Features)})
}

// AssembleFile joins the stages and features artifacts into the combined
// cascade. Empty paths select the configured well-known names.
func (p *Pipeline) AssembleFile(stagesIn, featuresIn, out string) error {
	stagesIn = or(stagesIn, p.Config.StagesFile)
	featuresIn = or(featuresIn, p.Config.FeaturesFile)
	out = or(out, p.Config.CombinedFile)
	stagesNode, err := p.read(stagesIn)
	if err != nil {
		return err
	}
	stages, err := cascade.StagesFromIR(stagesNode)
	if err != nil {
		return fmt.Errorf("error reading stages %q: %w", stagesIn, err)
	}
	featuresNode, err := p.read(featuresIn)
	if err != nil {
		return err
	}
	features, err := cascade.FeaturesFromIR(featuresNode)
	if err != nil {
		return fmt.Errorf("error reading features %q: %w", featuresIn, err)
	}
	if debug.Pipeline() {
		debug.Logf("assemble %s + %s -> %s\n", stagesIn, featuresIn, out)
	}
	c, err := cascade.Assemble(stages, features)
	if err != nil {
		return fmt.Errorf("error assembling %q with %q: %w", stagesIn, featuresIn, err)
	}
	return p.write(output{path: out, node: c.ToIR()})
}

// Run takes a raw export through all stages. If keepDir is not empty the
// intermediate artifacts are written there too, under the names the
// individual stages use.
func (p *Pipeline) Run(in, out, keepDir string) error {
	out = or(out, p.Config.CombinedFile)
	raw, err := p.read(in)
	if err != nil {
		return err
	}
	res, err := p.Build(raw)
	if err != nil {
		return fmt.Errorf("error running %q: %w", in, err)
	}
	c := res.Cascade
	if debug.Pipeline() {
		debug.Logf("run %s -> %s: %s\n", in, out, debug.JSON{V: cascade.Summarize(c)})
	}
	outs := []output{{path: out, node: c.ToIR()}}
	if keepDir != "" {
		suffix := p.Config.Format.Suffix()
		outs = append(outs,
			output{path: filepath.Join(keepDir, UnwrappedName+suffix), node: res.Unwrapped},
			output{path: filepath.Join(keepDir, CoercedName+suffix), node: res.Coerced},
			output{path: filepath.Join(keepDir, filepath.Base(p.Config.StagesFile)), node: cascade.StagesToIR(res.Remapped.Stages)},
			output{path: filepath.Join(keepDir, filepath.Base(p.Config.FeaturesFile)), node: cascade.FeaturesToIR(res.Remapped.Features)})
	}
	return p.write(outs...)
}

// ReadCascade reads a combined cascade artifact.
func (p *Pipeline) ReadCascade(path string) (cascade.Cascade, error) {
	node, err := p.read(path)
	if err != nil {
		return nil, err
	}
	c, err := cascade.CascadeFromIR(node)
	if err != nil {
		return nil, fmt.Errorf("error reading cascade %q: %w", path, err)
	}
	return c, nil
}

// ReadDocument reads any JSON or YAML document.
func (p *Pipeline) ReadDocument(path string) (*ir.Node, error) {
	return p.read(path)
}

func or(v, dflt string) string {
	if v == "" {
		return dflt
	}
	return v
}
