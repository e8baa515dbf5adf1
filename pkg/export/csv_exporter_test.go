package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderOrdersColumnsByHeader(t *testing.T) {
	exporter := NewCSVExporter()

	raw, err := exporter.Render(Table{
		Headers: []string{"Hour", "Mon", "Wed"},
		Rows: []map[string]string{
			{"Hour": "18:00", "Mon": "U12 Red (16p, Alice); 16/60", "Wed": ""},
			{"Hour": "19:00", "Wed": "U14 Blue (20p, Bob); 20/60"},
		},
	})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Hour,Mon,Wed", lines[0])
	assert.Contains(t, lines[1], "18:00")
	assert.Contains(t, lines[2], "U14 Blue (20p, Bob); 20/60")
	// Missing cells render as empty fields, not shifted columns.
	assert.True(t, strings.HasPrefix(lines[2], "19:00,,"))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Table{})

	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	exporter := NewPDFExporter()

	raw, err := exporter.Render(Table{
		Headers: []string{"Hour", "Mon"},
		Rows:    []map[string]string{{"Hour": "18:00", "Mon": "U12 Red"}},
	}, "Weekly Training Agenda")

	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
