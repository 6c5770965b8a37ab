package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/repository/repotest"
	"github.com/talkincode/toughcrm/internal/webserver"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "1.2.3"
	defer func() { version = original }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "toughcrm version 1.2.3")
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("TOUGHCRM_WEB_SECRET", "cli-secret")

	out, err := execute(t, "token", "--subject", "ops")
	require.NoError(t, err)

	token, err := webserver.ParseToken(strings.TrimSpace(out), "cli-secret")
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	t.Setenv("TOUGHCRM_WEB_SECRET", "")
	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestInitdbCmd_RequiresForce(t *testing.T) {
	_, err := execute(t, "initdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestRunImport(t *testing.T) {
	svc := crm.NewService(repotest.NewStore(t), nil)
	csvData := "name,email,phone\nAlice,alice@x.com,\nBob,bob@x.com,\n"

	var out bytes.Buffer
	require.NoError(t, runImport(context.Background(), svc, strings.NewReader(csvData), &out))
	assert.Contains(t, out.String(), "created 2 of 2 customers")

	out.Reset()
	err := runImport(context.Background(), svc, strings.NewReader("name,email\nAgain,ALICE@x.com\n"), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "rejected Again: email already exists")
}
