package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lattice/internal/testutil"
)

func TestDetectCommandReportsGrid(t *testing.T) {
	imagePath := testutil.GridPage(t, 400, 300, testutil.GridSpec{
		Cols:      []int{50, 150, 250},
		Rows:      []int{50, 120, 190},
		Thickness: 3,
	})

	root := GetRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"detect", imagePath})
	require.NoError(t, root.Execute())

	var report detectReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, imagePath, report.Image)
	require.Len(t, report.Tables, 1)

	tbl := report.Tables[0]
	assert.Equal(t, 9, tbl.Joints)
	assert.Len(t, tbl.Cols, 3)
	assert.Len(t, tbl.Rows, 3)
	assert.Equal(t, 4, tbl.Cells)
}

func TestDetectCommandBlankPage(t *testing.T) {
	imagePath := testutil.GridPage(t, 200, 200, testutil.GridSpec{})

	root := GetRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"detect", imagePath})
	require.NoError(t, root.Execute())

	var report detectReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Empty(t, report.Tables)
}
