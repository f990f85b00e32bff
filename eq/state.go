package eq

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
)

// StateVersion is written into every state blob; other versions are
// rejected.
const StateVersion = 1

type stateFile struct {
	Version    int                `toml:"version"`
	Parameters map[string]float64 `toml:"parameters"`
}

// EncodeState serialises every parameter of s as TOML keyed by parameter
// name.
func EncodeState(s *Store) ([]byte, error) {
	st := stateFile{
		Version:    StateVersion,
		Parameters: make(map[string]float64, numParams),
	}
	for i := range layout {
		st.Parameters[layout[i].Name] = s.Value(ParamID(i))
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return nil, fmt.Errorf("eq: encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeState parses a blob written by EncodeState and applies it to s.
// The blob is validated as a whole first: a wrong version, an unknown,
// missing, non-finite or out-of-range parameter leaves s untouched.
func DecodeState(data []byte, s *Store) error {
	var st stateFile
	md, err := toml.Decode(string(data), &st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unexpected keys %s", ErrInvalidState, strings.Join(keys, ", "))
	}
	if st.Version != StateVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrInvalidState, st.Version, StateVersion)
	}

	var values [numParams]float64
	for name, v := range st.Parameters {
		id, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %w %q", ErrInvalidState, ErrUnknownParameter, name)
		}
		r := layout[id].Range
		if math.IsNaN(v) || math.IsInf(v, 0) || v < r.Start || v > r.End {
			return fmt.Errorf("%w: %s = %v outside [%v, %v]", ErrInvalidState, name, v, r.Start, r.End)
		}
		values[id] = v
	}
	for i := range layout {
		if _, ok := st.Parameters[layout[i].Name]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidState, layout[i].Name)
		}
	}

	for i, v := range values {
		s.Set(ParamID(i), v)
	}
	return nil
}

// State returns the persisted form of every parameter.
func (p *Processor) State() ([]byte, error) {
	return EncodeState(p.store)
}

// SetState restores parameters from a State blob and redesigns the
// filters. A rejected blob leaves every parameter unchanged.
func (p *Processor) SetState(data []byte) error {
	if err := DecodeState(data, p.store); err != nil {
		p.logger.Warn("state rejected", "error", err)
		return err
	}
	p.UpdateFilters()
	p.logger.Info("state restored", "bytes", len(data))
	return nil
}
