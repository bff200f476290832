package shared

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// MissingFieldsError reports form fields that were absent from a request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing form fields: %s", strings.Join(e.Fields, ", "))
}

// DecodeForm parses a form-encoded request body and checks that every field
// in required is present. A present field may be empty.
func DecodeForm(r *http.Request, required ...string) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form body: %w", err)
	}

	var missing []string
	for _, field := range required {
		if _, ok := r.PostForm[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return r.PostForm, nil
}
