package query

import (
	"encoding/json"
	"fmt"
	"io"
)

// Stream is a decoded query file: opaque meta plus ordered events.
type Stream struct {
	Meta   json.RawMessage
	Events []Event
}

type wireStream struct {
	Meta   json.RawMessage   `json:"meta,omitempty"`
	Events []json.RawMessage `json:"events"`
}

// DecodeStream reads a query file.
func DecodeStream(r io.Reader) (Stream, error) {
	var w wireStream
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Stream{}, fmt.Errorf("%w: query stream: %v", ErrDecode, err)
	}
	s := Stream{Meta: w.Meta, Events: make([]Event, 0, len(w.Events))}
	for i, raw := range w.Events {
		ev, err := DecodeEvent(raw)
		if err != nil {
			return Stream{}, fmt.Errorf("event %d: %w", i, err)
		}
		s.Events = append(s.Events, ev)
	}

	return s, nil
}

// EncodeStream writes s as a query file.
func EncodeStream(w io.Writer, s Stream) error {
	ws := wireStream{Meta: s.Meta, Events: make([]json.RawMessage, 0, len(s.Events))}
	for _, ev := range s.Events {
		data, err := MarshalEvent(ev)
		if err != nil {
			return err
		}
		ws.Events = append(ws.Events, data)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(ws)
}

// AnswerStream is a decoded answer file: meta copied from the queries plus
// ordered results.
type AnswerStream struct {
	Meta    json.RawMessage `json:"meta,omitempty"`
	Results []Answer        `json:"results"`
}

// DecodeAnswers reads an answer file. A missing results array is an error.
func DecodeAnswers(r io.Reader) (AnswerStream, error) {
	var w struct {
		Meta    json.RawMessage `json:"meta"`
		Results *[]Answer       `json:"results"`
	}
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return AnswerStream{}, fmt.Errorf("%w: answer stream: %v", ErrDecode, err)
	}
	if w.Results == nil {
		return AnswerStream{}, fmt.Errorf("%w: answer stream has no results", ErrDecode)
	}

	return AnswerStream{Meta: w.Meta, Results: *w.Results}, nil
}

// EncodeAnswers writes s as an answer file.
func EncodeAnswers(w io.Writer, s AnswerStream) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}
