package froid

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

const representationsVariable = "representations"

type variable struct {
	raw      []byte
	dataType jsonparser.ValueType
}

// lookupVariable reads a top level variable straight from the raw JSON.
func lookupVariable(variables json.RawMessage, name string) (variable, bool) {
	if len(variables) == 0 {
		return variable{}, false
	}
	raw, dataType, _, err := jsonparser.Get(variables, name)
	if err != nil || dataType == jsonparser.NotExist {
		return variable{}, false
	}
	return variable{raw: raw, dataType: dataType}, true
}

// variableText resolves a variable the way it is used as a global ID:
// strings are unescaped, other values are taken literally, null counts as
// undefined.
func variableText(variables json.RawMessage, name string) (string, error) {
	value, ok := lookupVariable(variables, name)
	if !ok || value.dataType == jsonparser.Null {
		return "", fmt.Errorf("%w: $%s", ErrMissingVariable, name)
	}

	if value.dataType == jsonparser.String {
		text, err := jsonparser.ParseString(value.raw)
		if err != nil {
			return "", fmt.Errorf("variable $%s: %w", name, err)
		}
		return text, nil
	}

	return string(value.raw), nil
}
