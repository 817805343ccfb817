package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantPlain []string
	}{
		{name: "arguments", args: []string{"testpassword123", "тест123"}, wantPlain: []string{"testpassword123", "тест123"}},
		{name: "stdin skips blank lines", stdin: "one\n\ntwo\n", wantPlain: []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(&out, strings.NewReader(tt.stdin), bcrypt.MinCost, tt.args))

			digests := strings.Fields(out.String())
			require.Len(t, digests, len(tt.wantPlain))
			for i, digest := range digests {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(digest), []byte(tt.wantPlain[i])))
			}
		})
	}
}

func TestRunRejectsCost(t *testing.T) {
	err := run(&bytes.Buffer{}, strings.NewReader(""), 3, []string{"x"})
	assert.ErrorContains(t, err, "cost must be between")
}
