package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/format"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/parse"
)

// Stdio names standard input or output in place of a file path.
const Stdio = "-"

var ErrNoPath = errors.New("no path given")

func (p *Pipeline) read(path string) (*ir.Node, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	var (
		d   []byte
		err error
	)
	if path == Stdio {
		d, err = io.ReadAll(p.Stdin)
	} else {
		d, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	node, err := parse.Parse(d,
		parse.ParseFormat(p.readFormat(path)),
		parse.MaxDepth(p.Config.MaxDepth))
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return node, nil
}

type output struct {
	path string
	node *ir.Node
}

// write encodes every output before any file is touched, then replaces each
// target through a temporary file in the same directory so that a reader
// never sees a partially written artifact.
func (p *Pipeline) write(outs ...output) error {
	encoded := make([][]byte, len(outs))
	for i, o := range outs {
		if o.path == "" {
			return ErrNoPath
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(o.node, buf, p.encOpts(o.path)...); err != nil {
			return fmt.Errorf("could not encode %q: %w", o.path, err)
		}
		encoded[i] = buf.Bytes()
	}
	for i, o := range outs {
		if err := p.writeFile(o.path, encoded[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) writeFile(path string, d []byte) error {
	if path == Stdio {
		_, err := p.Stdout.Write(d)
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(d); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}

// readFormat picks the parser for path. Standard input is read as JSON, the
// format of raw exports.
func (p *Pipeline) readFormat(path string) format.Format {
	if path == Stdio {
		return format.JSONFormat
	}
	return p.Config.PathFormat(path)
}

// encOpts colors only what goes to standard output.
func (p *Pipeline) encOpts(path string) []encode.EncodeOption {
	if path == Stdio {
		return p.Config.EncodeOptions(path, p.Colors)
	}
	return p.Config.EncodeOptions(path, nil)
}
