package api

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/qri-io/jsonschema"
)

const maxBodySize = 1 << 20

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	searchSchema     = mustSchema("schemas/search.json")
	quizSchema       = mustSchema("schemas/quiz.json")
	generationSchema = mustSchema("schemas/generation.json")
)

var errNotObject = errors.New("body is not a JSON object")

func mustSchema(name string) *jsonschema.Schema {
	b, err := schemaFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic(fmt.Sprintf("parse schema %s: %v", name, err))
	}
	return rs
}

// readBody reads the request body, capped at maxBodySize.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, errors.New("body too large")
	}
	return body, nil
}

// validate checks body against rs and reports every violation as one error.
func validate(ctx context.Context, rs *jsonschema.Schema, body []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return err
	}
	if len(keyErrs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		msgs = append(msgs, ke.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}

// objectKeys returns the keys of the top-level JSON object in body in the
// order they appear. A repeated key keeps its first position.
func objectKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var keys []string
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errNotObject
	}

	return keys, nil
}

// decodeObject decodes a JSON object keeping numbers as json.Number.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNotObject
	}
	return out, nil
}

// parseID accepts an identifier sent as a JSON integer or a numeric string.
func parseID(v any) (int64, error) {
	switch id := v.(type) {
	case json.Number:
		return id.Int64()
	case string:
		return strconv.ParseInt(id, 10, 64)
	case float64:
		if id != float64(int64(id)) {
			return 0, fmt.Errorf("id %v is not an integer", id)
		}
		return int64(id), nil
	default:
		return 0, fmt.Errorf("unsupported id %v", v)
	}
}
