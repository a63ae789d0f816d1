package application

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/openkraft/typeguard/internal/domain"
)

const maxLineBytes = 4 << 20

// ReadCalls parses a JSON Lines recording. Each line is an object with a
// "tool" string, an "arguments" object and an optional "response". Blank
// lines are ignored.
func ReadCalls(r io.Reader) ([]Call, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var calls []Call
	for line := 1; sc.Scan(); line++ {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		call, err := parseCall(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		calls = append(calls, call)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading calls")
	}
	return calls, nil
}

func parseCall(raw []byte) (Call, error) {
	obj, err := domain.ParseJSONObject(raw)
	if err != nil {
		return Call{}, err
	}

	tool, _ := obj.Get("tool")
	name, ok := tool.(domain.String)
	if !ok || name == "" {
		return Call{}, errors.WithHint(errors.New(`missing "tool"`),
			`each line needs {"tool": "...", "arguments": {...}}`)
	}

	call := Call{Tool: string(name), Arguments: domain.NewObject()}
	if args, ok := obj.Get("arguments"); ok {
		argsObj, isObj := args.(*domain.Object)
		if !isObj {
			return Call{}, errors.Newf(`"arguments" must be an object, got %s`, domain.TagOf(args))
		}
		call.Arguments = argsObj
	}
	if resp, ok := obj.Get("response"); ok {
		call.Response = resp
	}
	return call, nil
}

// Replay tracks every call in order and returns the per-call results.
func (s *SessionService) Replay(calls []Call) ([]CallResult, error) {
	results := make([]CallResult, 0, len(calls))
	for i, c := range calls {
		res, err := s.Track(c)
		if err != nil {
			return results, errors.Wrapf(err, "call %d (%s)", i+1, c.Tool)
		}
		results = append(results, res)
	}
	return results, nil
}
