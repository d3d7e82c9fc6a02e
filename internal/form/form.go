package form

import (
	"fmt"
	"mime"
	"net/http"
)

const maxMemory = 1 << 20

// Values is a flat mapping of submitted field names to their string values.
type Values map[string]string

// FieldErrors maps a field name to the messages collected for it.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// FromRequest reads the request body as form input. Repeated keys keep the last value.
func FromRequest(r *http.Request) (Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("parsing multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parsing form: %w", err)
	}

	values := make(Values, len(r.PostForm))

	for key, vs := range r.PostForm {
		if len(vs) == 0 {
			continue
		}

		values[key] = vs[len(vs)-1]
	}

	return values, nil
}

