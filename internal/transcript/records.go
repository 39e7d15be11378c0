package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"captioner/internal/services"
)

// Result is a recognizer response in any of the supported shapes.
type Result struct {
	Text     *string   `json:"text,omitempty"`
	Chunks   []Chunk   `json:"chunks,omitempty" validate:"dive"`
	Words    []Word    `json:"words,omitempty" validate:"dive"`
	Segments []Segment `json:"segments,omitempty" validate:"dive"`
}

// Chunk is a phrase-level record with a nullable [start, end] pair, as
// returned by transformers-style pipelines.
type Chunk struct {
	Text      *string    `json:"text" validate:"required"`
	Timestamp []*float64 `json:"timestamp"`
}

// Word is a token-level record. Both "text" and "word" keys are accepted.
type Word struct {
	Text  *string  `json:"text" validate:"required"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	// Type is set by some recognizers ("word", "spacing", "audio_event").
	Type string `json:"type,omitempty"`
}

// UnmarshalJSON accepts the WhisperX "word" key as an alias for "text".
func (w *Word) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text  *string  `json:"text"`
		Word  *string  `json:"word"`
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
		Type  string   `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.Text = raw.Text
	if w.Text == nil {
		w.Text = raw.Word
	}
	w.Start = raw.Start
	w.End = raw.End
	w.Type = raw.Type
	return nil
}

// Segment is a sentence-level record that may carry word timings.
type Segment struct {
	Text  *string  `json:"text" validate:"required"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Words []Word   `json:"words,omitempty" validate:"dive"`
}

// Decode parses a recognizer JSON document.
func Decode(r io.Reader) (Result, error) {
	var result Result
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, services.Wrap(services.ErrMalformedInput, "normalize", "decode", "empty transcript document", nil)
		}
		return Result{}, services.Wrap(services.ErrMalformedInput, "normalize", "decode", "invalid transcript json", err)
	}
	return result, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks that every record carries the required keys.
func (r Result) Validate() error {
	err := recordValidator().Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return services.Wrap(services.ErrMalformedInput, "normalize", "validate", "", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s is %s", fieldPath(fe.Namespace()), fe.Tag()))
	}
	return services.Wrap(services.ErrMalformedInput, "normalize", "validate", strings.Join(problems, "; "), nil)
}

// fieldPath drops the root type name from a validator namespace,
// e.g. "Result.chunks[2].text" becomes "chunks[2].text".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
