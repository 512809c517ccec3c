package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoImage is returned when the model answered without any image part and
// without a recognizable refusal.
var ErrNoImage = errors.New("model response contains no image")

// RefusalError is the distinct error category for responses where the model
// declined the edit in text form. Detail carries the model's explanation.
type RefusalError struct {
	Detail string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("model refused the edit: %s", e.Detail)
}

// IsRefusal reports whether err is (or wraps) a model refusal.
func IsRefusal(err error) bool {
	var r *RefusalError
	return errors.As(err, &r)
}

// refusalPhrases are scanned case-insensitively in text-only responses.
var refusalPhrases = []string{
	"i can't",
	"i cannot",
	"i'm unable",
	"i am unable",
	"unable to assist",
	"unable to help",
	"not able to",
	"can't help with",
	"cannot help with",
	"against my guidelines",
	"violates",
	"not allowed",
}

func detectRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range refusalPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// extractError returns the decoded API error message from a response body.
func extractError(r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return errors.New(strings.TrimSpace(string(body)))
	}

	return errors.New(apiErr.Error.Message)
}
