package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

func TestExport(t *testing.T) {
	toner := theme.Toner(nil)

	var buf bytes.Buffer
	require.NoError(t, export(&buf, toner, "yaml"))
	back, err := themefile.Decode(&buf, resource.Map{})
	require.NoError(t, err)
	assert.Equal(t, toner.Len(), back.Len())

	buf.Reset()
	require.NoError(t, export(&buf, toner, "XML"))
	assert.Contains(t, buf.String(), theme.ClassPrimaryHighway)

	buf.Reset()
	require.NoError(t, export(&buf, toner, "kml"))
	assert.Equal(t, toner.Len(), strings.Count(buf.String(), "<Style "))

	assert.Error(t, export(&buf, toner, "svg"))
}

func TestStyleLine(t *testing.T) {
	line := style.MustLineStyle("Ferry", style.Black, 1.5)
	line.Visibility = style.MustVisibility(4, 12)
	out := styleLine(line)
	assert.Contains(t, out, "Ferry")
	assert.Contains(t, out, "1.5px")
	assert.Contains(t, out, "zoom")

	assert.Contains(t, swatch(style.Transparent), "··")
}
