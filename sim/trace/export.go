package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the trace encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// IsValidFormat returns true if the given string names a supported format.
func IsValidFormat(format string) bool {
	switch Format(format) {
	case FormatJSON, FormatYAML, FormatCBOR:
		return true
	}
	return false
}

// cborMode uses Core Deterministic Encoding (RFC 8949 §4.2) so that two
// identical runs produce identical bytes.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("trace: CBOR encoder initialization failed: " + err.Error())
	}
}

// Write encodes st to w. Records are sorted first.
func Write(w io.Writer, st *SimulationTrace, format Format) error {
	st.Sort()
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return cborMode.NewEncoder(w).Encode(st)
	default:
		return fmt.Errorf("unknown trace format %q", format)
	}
}

// Read decodes a trace written by Write in the given format.
func Read(r io.Reader, format Format) (*SimulationTrace, error) {
	st := &SimulationTrace{}
	var err error
	switch format {
	case FormatJSON, "":
		err = json.NewDecoder(r).Decode(st)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(st)
	case FormatCBOR:
		err = cbor.NewDecoder(r).Decode(st)
	default:
		return nil, fmt.Errorf("unknown trace format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s trace: %w", format, err)
	}
	return st, nil
}
