package parser

import "github.com/ava12/parselet/symbol"

type frame struct {
	parselet symbol.ParseletID
	pos      int
}

// frameStack keeps parselets being expanded, used to describe syntax errors.
type frameStack struct {
	frames []frame
}

func (s *frameStack) IsEmpty() bool {
	return len(s.frames) == 0
}

func (s *frameStack) Len() int {
	return len(s.frames)
}

func (s *frameStack) Push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) Drop() {
	if len(s.frames) != 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *frameStack) Top() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	return &s.frames[len(s.frames)-1]
}

// Names returns parselet names, outermost first.
func (s *frameStack) Names() []string {
	res := make([]string, len(s.frames))
	for i, f := range s.frames {
		res[i] = f.parselet.Name()
	}
	return res
}
