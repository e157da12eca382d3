package hyperloglog

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
)

const binaryVersion = 1

// FromRegisters rebuilds a HyperLogLog from a persisted precision and
// register array. regs must hold exactly 2^precision values, each no larger
// than the maximum rank for that precision. regs is copied.
func FromRegisters(precision uint8, regs []byte) (*HyperLogLog, error) {
	h, err := New(precision)
	if err != nil {
		return nil, err
	}
	if err := h.setRegisters(regs); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HyperLogLog) setRegisters(regs []byte) error {
	if len(regs) != int(h.m) {
		return fmt.Errorf("%w: got %d registers, want %d", ErrInvalidParameter, len(regs), h.m)
	}
	limit := maxRank(h.p)
	for i, v := range regs {
		if v > limit {
			return fmt.Errorf("%w: register %d holds %d, max is %d", ErrInvalidParameter, i, v, limit)
		}
	}
	copy(h.reg, regs)
	return nil
}

// MarshalBinary encodes HyperLogLog h as a version byte, a precision byte
// and the raw register bytes.
func (h *HyperLogLog) MarshalBinary() ([]byte, error) {
	out := make([]byte, 2+len(h.reg))
	out[0] = binaryVersion
	out[1] = h.p
	copy(out[2:], h.reg)
	return out, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into h.
func (h *HyperLogLog) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: state is %d bytes", ErrInvalidParameter, len(data))
	}
	if data[0] != binaryVersion {
		return fmt.Errorf("%w: unknown state version %d", ErrInvalidParameter, data[0])
	}
	dec, err := FromRegisters(data[1], data[2:])
	if err != nil {
		return err
	}
	*h = *dec
	return nil
}

// GobEncode encodes HyperLogLog into a gob.
func (h *HyperLogLog) GobEncode() ([]byte, error) {
	buf := bytes.Buffer{}
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(h.reg); err != nil {
		return nil, err
	}
	if err := enc.Encode(h.m); err != nil {
		return nil, err
	}
	if err := enc.Encode(h.p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode decodes gob into a HyperLogLog structure.
func (h *HyperLogLog) GobDecode(b []byte) error {
	var (
		reg []uint8
		m   uint32
		p   uint8
	)
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(&reg); err != nil {
		return err
	}
	if err := dec.Decode(&m); err != nil {
		return err
	}
	if err := dec.Decode(&p); err != nil {
		return err
	}

	decoded, err := FromRegisters(p, reg)
	if err != nil {
		return err
	}
	if decoded.m != m {
		return fmt.Errorf("%w: register count %d does not match precision %d", ErrInvalidParameter, m, p)
	}
	*h = *decoded
	return nil
}

type jsonHyperLogLog struct {
	P   uint8  `json:"p"`
	Reg []byte `json:"reg"`
}

// MarshalJSON encodes the precision and the base64 register array.
func (h *HyperLogLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonHyperLogLog{P: h.p, Reg: h.reg})
}

// UnmarshalJSON decodes JSON produced by MarshalJSON into h.
func (h *HyperLogLog) UnmarshalJSON(buf []byte) error {
	j := jsonHyperLogLog{}
	if err := json.Unmarshal(buf, &j); err != nil {
		return err
	}

	decoded, err := FromRegisters(j.P, j.Reg)
	if err != nil {
		return err
	}
	*h = *decoded
	return nil
}
