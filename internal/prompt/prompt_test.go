package prompt

import (
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y proceeds", input: "y\n", want: true},
		{name: "y with surrounding whitespace proceeds", input: "  y  \n", want: true},
		{name: "yes does not proceed", input: "yes\n", want: false},
		{name: "uppercase Y does not proceed", input: "Y\n", want: false},
		{name: "empty line aborts", input: "\n", want: false},
		{name: "EOF aborts", input: "", want: false},
		{name: "y without newline at EOF proceeds", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			c := &LineConfirmer{In: strings.NewReader(tt.input), Out: &out}

			got, err := c.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, got)
			}
			if !strings.Contains(out.String(), "Proceed?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}
