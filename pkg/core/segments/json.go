package segments

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the segment untagged: whichever variant is set is
// emitted directly, so lines serialize as {x,x1,y,y1} and arcs as
// {r,t1,t2,x,y}.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.Arc != nil {
		return json.Marshal(s.Arc)
	}
	return json.Marshal(s.Line)
}

// UnmarshalJSON distinguishes the variants by the radius key only arcs
// carry.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if _, isArc := probe["r"]; isArc {
		s.Line = nil
		s.Arc = new(Arc)
		return json.Unmarshal(data, s.Arc)
	}
	s.Arc = nil
	s.Line = new(Line)
	return json.Unmarshal(data, s.Line)
}

// MarshalJSON encodes the pair as a two-element [incoming, outgoing]
// array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Segment{p.In, p.Out})
}

// UnmarshalJSON decodes a two-element [incoming, outgoing] array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var arr []Segment
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("segment pair: got %d segments, want 2", len(arr))
	}
	p.In, p.Out = arr[0], arr[1]
	return nil
}
