package filings

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// validateAgainstSchema checks an embedded reference table against its
// embedded JSON schema.
func validateAgainstSchema(name string, schema, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return fmt.Errorf("%s does not match its schema: %s", name, strings.Join(msgs, "; "))
	}

	return nil
}
