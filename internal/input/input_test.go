package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadCommand(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		allowBlanks bool
		expect      []string
	}{
		{
			name:   "single line without newline",
			input:  "SHOW",
			expect: []string{"SHOW"},
		},
		{
			name:   "blank lines and comments skipped",
			input:  "SHOW\n\n   \n# a note\nSTEP unit\n",
			expect: []string{"SHOW", "STEP unit"},
		},
		{
			name:        "blank lines returned when allowed",
			input:       "SHOW\n\nRUN\n",
			allowBlanks: true,
			expect:      []string{"SHOW", "", "RUN"},
		},
		{
			name:   "surrounding space trimmed",
			input:  "  ACCEPTS a b  \r\n",
			expect: []string{"ACCEPTS a b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewDirectReader(strings.NewReader(tc.input))
			r.AllowBlank(tc.allowBlanks)
			defer r.Close()

			var actual []string
			for {
				line, err := r.ReadCommand()
				if err == io.EOF {
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
		})
	}
}
