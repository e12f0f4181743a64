package taskstore

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sandeepkv93/tasklist/internal/model"
)

//go:embed tasks.schema.json
var collectionSchemaJSON string

const collectionSchemaURL = "tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func collectionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(collectionSchemaURL, strings.NewReader(collectionSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(collectionSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode serializes the collection as a JSON array of task objects. A nil
// collection encodes as [] so the stored value is always an array.
func Encode(c model.Collection) (string, error) {
	if c == nil {
		c = model.Collection{}
	}
	return sonic.ConfigStd.MarshalToString(c)
}

// Decode parses a stored payload. Blank and null payloads decode to an empty
// collection; anything that is not an array of task objects is rejected with
// ErrMalformedPayload.
func Decode(raw string) (model.Collection, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return model.Collection{}, nil
	}

	var doc any
	if err := sonic.ConfigStd.UnmarshalFromString(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	schema, err := collectionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, schemaProblems(err))
	}

	out := make(model.Collection, 0)
	if err := sonic.ConfigStd.UnmarshalFromString(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return out, nil
}

func schemaProblems(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var problems []string
	collectSchemaProblems(ve, &problems)
	if len(problems) == 0 {
		return ve.Error()
	}
	return strings.Join(problems, "; ")
}

func collectSchemaProblems(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(cause, out)
	}
}
