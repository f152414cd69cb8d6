package cmd

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptYesNo(t *testing.T) {
	type test struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}
	tests := []test{
		{name: "explicit yes", input: "yes\n", want: true},
		{name: "short yes", input: "y\n", want: true},
		{name: "explicit no", input: "no\n", defaultYes: true, want: false},
		{name: "empty takes default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty takes default no", input: "\n", defaultYes: false, want: false},
		{name: "garbage then no", input: "maybe\nn\n", defaultYes: true, want: false},
		{name: "eof takes default", input: "", defaultYes: false, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(tc.input))
			assert.Equal(t, tc.want, promptYesNo(in, "Proceed?", tc.defaultYes))
		})
	}
}

func TestReadLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  1 \nnext\n"))
	assert.Equal(t, "1", readLine(in))
	assert.Equal(t, "next", readLine(in))
}
