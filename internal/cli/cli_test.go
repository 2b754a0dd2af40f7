package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliConfig = `
gam:
  path: /nonexistent/gam
  mappings:
    primaryEmail: email
    "accounts:is_admin": is_admin
  data_formatting:
    is_admin: bool
  primary_key: email
database:
  username: sync
  instance: dbhost:1521/ORCL
`

func TestSQLCmd_PrintsStatementForExistingReport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "googleSync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cliConfig), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Last_GAM_Pull.csv"),
		[]byte("primaryEmail,accounts:is_admin\na@example.com,True\n"), 0o644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"sql", "-c", cfgPath})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "MERGE INTO google_accounts a USING (SELECT :1 email,(CASE lower(:2) WHEN 'true' THEN 'Y' ELSE 'N' END) is_admin FROM dual)")
	assert.Contains(t, out.String(), "-- bind 2 = is_admin")
}

func TestSyncCmd_ExtractionFailure(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "googleSync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cliConfig), 0o644))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"sync", "-c", cfgPath, "--dry-run"})

	err := root.Execute()
	assert.ErrorContains(t, err, "report extraction failed")
}
