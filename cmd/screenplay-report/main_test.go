package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay/report"
)

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "html")

	outcome := &report.TestOutcome{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Adding todos",
		Result:    report.ResultSuccess,
		StartedAt: time.Now(),
	}
	require.NoError(t, report.NewStore(dir).Save(outcome))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--dir", dir, "--out", out})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Rendered 1 test outcomes to "+out+"\n", stdout.String())
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, outcome.ID.String()+".html"))
}

func TestRenderCmd_InvalidConfig(t *testing.T) {
	t.Setenv("SCREENPLAY_LOG_FORMAT", "xml")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--dir", t.TempDir(), "--out", t.TempDir()})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "log.format must be text or json")
}

func TestRenderCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "unexpected"})

	assert.Error(t, cmd.Execute())
}
