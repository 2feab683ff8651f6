// Package prompt implements the interactive batch confirmation.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineConfirmer asks a yes/no question by writing the prompt to Out and
// reading a single line from In. The trimmed answer "y" proceeds; any
// other input, including EOF, aborts.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements types.Confirmer.
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "y", nil
}
