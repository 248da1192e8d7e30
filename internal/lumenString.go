package internal

import (
	"fmt"
)

func (s lumenString) runes() []rune {
	return []rune(string(s))
}

func (s lumenString) length() int {
	return len(s.runes())
}

func (s lumenString) get(index Value, tk *token) (Value, error) {
	i, err := toIndex(index, tk)
	if err != nil {
		return nil, err
	}
	runes := s.runes()
	if i >= len(runes) {
		return nil, newRuntimeError(tk, fmt.Errorf("%w: %d", errIndexOutOfRange, i))
	}
	return lumenString(runes[i]), nil
}

func (s lumenString) slice(first, second Value, tk *token) (Value, error) {
	runes := s.runes()
	start, end, err := sliceBounds(first, second, len(runes), tk)
	if err != nil {
		return nil, err
	}
	return lumenString(runes[start:end]), nil
}
