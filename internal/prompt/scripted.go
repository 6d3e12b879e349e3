package prompt

import (
	"context"
	"fmt"
)

// Scripted replays fixed answers in order. Each Select consumes one entry of
// Selects, each MultiSelect one entry of MultiSelects, each Input one entry
// of Inputs. Running out of answers is an error.
type Scripted struct {
	Inputs       []string
	Selects      []int
	MultiSelects [][]int

	// Asked records every prompt message in order.
	Asked []string
}

func (s *Scripted) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Inputs) == 0 {
		return "", fmt.Errorf("no scripted answer for %q", cfg.Message)
	}
	ans := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if ans == "" {
		ans = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(ans); err != nil {
			return "", err
		}
	}
	return ans, nil
}

func (s *Scripted) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Selects) == 0 {
		return 0, fmt.Errorf("no scripted answer for %q", cfg.Message)
	}
	idx := s.Selects[0]
	s.Selects = s.Selects[1:]
	if idx < 0 || idx >= len(cfg.Options) {
		return 0, fmt.Errorf("scripted answer %d out of range for %q", idx, cfg.Message)
	}
	return idx, nil
}

func (s *Scripted) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.MultiSelects) == 0 {
		return nil, fmt.Errorf("no scripted answer for %q", cfg.Message)
	}
	picks := s.MultiSelects[0]
	s.MultiSelects = s.MultiSelects[1:]
	for _, idx := range picks {
		if idx < 0 || idx >= len(cfg.Options) {
			return nil, fmt.Errorf("scripted answer %d out of range for %q", idx, cfg.Message)
		}
	}
	if cfg.Required && len(picks) == 0 {
		return nil, fmt.Errorf("%q requires at least one choice", cfg.Message)
	}
	return picks, nil
}
