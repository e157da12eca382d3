package commands

import (
	"fmt"
	"os"

	"github.com/clarkduvall/hyperloglog"
)

const stateFileMode = 0o644

func readState(path string) (*hyperloglog.HyperLogLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	h := &hyperloglog.HyperLogLog{}
	if err := h.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return h, nil
}

func writeState(path string, h *hyperloglog.HyperLogLog) error {
	data, err := h.MarshalBinary()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, stateFileMode); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	return nil
}
