// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/secreporting/openvas-report/internal/aggregate"
)

// JSON renders the full summary as indented JSON, suitable for scripting
// against the report model.
type JSON struct{}

func (JSON) Render(w io.Writer, sum *aggregate.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sum); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
