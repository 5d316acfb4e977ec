package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"MusicHub/core/auth"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"server", "migrate", "redis", "token"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestVerifyToken(t *testing.T) {
	codec := auth.NewTokenCodec("k", time.Hour)
	tok, err := codec.Issue("user-42")
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetErr(&errOut)

	require.NoError(t, verifyToken(c, codec, tok))
	assert.Equal(t, "user-42", strings.TrimSpace(out.String()))
	assert.Empty(t, errOut.String(), "user id goes to stdout only")

	assert.Error(t, verifyToken(c, auth.NewTokenCodec("other", time.Hour), tok))
}

func TestTokenVerifyRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	rootCmd.SetArgs([]string{"token", "verify", "abc"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
