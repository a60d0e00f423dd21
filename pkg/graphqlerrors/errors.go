// Package graphqlerrors holds the error records written into GraphQL responses.
package graphqlerrors

import (
	"encoding/json"
	"fmt"
	"io"
)

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type RequestErrors []RequestError

func RequestErrorsFromError(err error) RequestErrors {
	if errors, ok := err.(RequestErrors); ok {
		return errors
	}
	if requestError, ok := err.(RequestError); ok {
		return RequestErrors{requestError}
	}
	return RequestErrors{
		{
			Message: err.Error(),
		},
	}
}

func (o RequestErrors) Error() string {
	if len(o) > 0 { // avoid panic ...
		return o.ErrorByIndex(0).Error()
	}
	return "no error" // ... so, this should never be returned
}

// WriteResponse writes the errors as an errors-only GraphQL response.
func (o RequestErrors) WriteResponse(writer io.Writer) (n int, err error) {
	response := Response{
		Errors: o,
	}

	responseBytes, err := response.Marshal()
	if err != nil {
		return 0, err
	}

	return writer.Write(responseBytes)
}

func (o RequestErrors) Count() int {
	return len(o)
}

func (o RequestErrors) ErrorByIndex(i int) error {
	if i >= o.Count() {
		return nil
	}

	return o[i]
}

type RequestError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

func (o RequestError) Error() string {
	if len(o.Locations) == 0 {
		return o.Message
	}
	return fmt.Sprintf("%s, locations: %+v", o.Message, o.Locations)
}

// Response is an errors-only GraphQL response.
type Response struct {
	Errors RequestErrors `json:"errors,omitempty"`
	Data   any           `json:"data,omitempty"`
}

func (r Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
