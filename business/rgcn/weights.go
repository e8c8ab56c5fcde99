package rgcn

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	"gonum.org/v1/gonum/mat"
)

// FormatVersion is bumped whenever the weight document layout changes.
const FormatVersion = 1

type weightFile struct {
	FormatVersion int         `json:"format_version"`
	Dims          Dims        `json:"dims"`
	Layers        []layerFile `json:"layers"`
	Checksum      string      `json:"checksum"`
}

// layerFile stores matrices row-major.
type layerFile struct {
	In   int         `json:"in"`
	Out  int         `json:"out"`
	Root []float64   `json:"root"`
	Rel  [][]float64 `json:"rel"`
	Bias []float64   `json:"bias"`
}

// DeserializationError means a weight document is corrupt or was written for
// a different model layout.
type DeserializationError struct {
	Reason string
	Err    error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load weights: %s: %v", e.Reason, e.Err)
	}
	return "load weights: " + e.Reason
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

func checksum(layers []layerFile) (string, error) {
	payload, err := json.Marshal(layers)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Save writes the model as a versioned, checksummed JSON document.
func (m *Model) Save(w io.Writer) error {
	if !m.Ready() {
		return ErrModelNotReady
	}

	doc := weightFile{FormatVersion: FormatVersion, Dims: m.dims, Layers: m.layerFiles()}
	sum, err := checksum(doc.Layers)
	if err != nil {
		return fmt.Errorf("checksum weights: %w", err)
	}
	doc.Checksum = sum

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	return nil
}

// Checksum is the digest Save would embed for the current weights.
func (m *Model) Checksum() (string, error) {
	if !m.Ready() {
		return "", ErrModelNotReady
	}
	return checksum(m.layerFiles())
}

func (m *Model) layerFiles() []layerFile {
	var out []layerFile
	for _, l := range m.layers {
		lf := layerFile{
			In:   l.In,
			Out:  l.Out,
			Root: append([]float64(nil), l.Root.RawMatrix().Data...),
			Bias: append([]float64(nil), l.Bias...),
		}
		for _, r := range l.Rel {
			lf.Rel = append(lf.Rel, append([]float64(nil), r.RawMatrix().Data...))
		}
		out = append(out, lf)
	}
	return out
}

func (m *Model) SaveFile(path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create weight file: %w", err)
	}
	tmp := f.Name()

	// path is only replaced once the whole document is on disk
	if err := m.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync weight file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close weight file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace weight file: %w", err)
	}
	return nil
}

// Load decodes a weight document into a ready model. Every failure is a
// *DeserializationError.
func Load(r io.Reader) (*Model, error) {
	var doc weightFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &DeserializationError{Reason: "decode", Err: err}
	}

	if doc.FormatVersion != FormatVersion {
		return nil, &DeserializationError{Reason: fmt.Sprintf("unsupported format version %d", doc.FormatVersion)}
	}
	if !doc.Dims.valid() {
		return nil, &DeserializationError{Reason: "non-positive dimensions"}
	}
	if len(doc.Layers) != 2 {
		return nil, &DeserializationError{Reason: fmt.Sprintf("expected 2 layers, found %d", len(doc.Layers))}
	}

	sum, err := checksum(doc.Layers)
	if err != nil {
		return nil, &DeserializationError{Reason: "checksum", Err: err}
	}
	if sum != doc.Checksum {
		return nil, &DeserializationError{Reason: "checksum mismatch"}
	}

	shapes := [2][2]int{
		{doc.Dims.InFeatures, doc.Dims.Hidden},
		{doc.Dims.Hidden, doc.Dims.Classes},
	}

	m := &Model{dims: doc.Dims}
	for i, lf := range doc.Layers {
		in, out := shapes[i][0], shapes[i][1]
		l, err := decodeLayer(lf, in, out, doc.Dims.Relations)
		if err != nil {
			return nil, &DeserializationError{Reason: fmt.Sprintf("layer %d", i+1), Err: err}
		}
		m.layers[i] = l
	}

	return m, nil
}

func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DeserializationError{Reason: "open " + path, Err: err}
	}
	defer f.Close()
	return Load(f)
}

func decodeLayer(lf layerFile, in, out, relations int) (*Layer, error) {
	if lf.In != in || lf.Out != out {
		return nil, fmt.Errorf("shape %dx%d, want %dx%d", lf.In, lf.Out, in, out)
	}
	if len(lf.Root) != in*out {
		return nil, fmt.Errorf("root has %d values, want %d", len(lf.Root), in*out)
	}
	if len(lf.Rel) != relations {
		return nil, fmt.Errorf("%d relation matrices, want %d", len(lf.Rel), relations)
	}
	if len(lf.Bias) != out {
		return nil, fmt.Errorf("bias has %d values, want %d", len(lf.Bias), out)
	}

	l := &Layer{
		In:   in,
		Out:  out,
		Root: mat.NewDense(in, out, lf.Root),
		Rel:  make([]*mat.Dense, relations),
		Bias: lf.Bias,
	}
	for r, data := range lf.Rel {
		if len(data) != in*out {
			return nil, fmt.Errorf("relation %d has %d values, want %d", r, len(data), in*out)
		}
		l.Rel[r] = mat.NewDense(in, out, data)
	}
	return l, nil
}
