package palette

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	want := []string{"bw", "gray16", "plan9", "vga16", "websafe"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBuiltin(t *testing.T) {
	pal, err := LoadPalette("gray16")
	require.NoError(t, err)
	require.Len(t, pal, 16)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, pal[0])
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, pal[15])

	pal[0] = color.White
	again, err := LoadPalette("gray16")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, again[0], "built-ins are copied")

	_, err = LoadPalette(filepath.Join(t.TempDir(), "missing.pal"))
	assert.Error(t, err)
}

func TestRIFFRoundTrip(t *testing.T) {
	pals := []color.Palette{
		{color.RGBA{0x10, 0x20, 0x30, 0xff}, color.RGBA{0xff, 0x00, 0x80, 0xff}},
		{color.RGBA{0x01, 0x02, 0x03, 0xff}},
	}

	var buf bytes.Buffer
	n, err := WriteTo(&buf, pals)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(pals, got); diff != "" {
		t.Errorf("ReadFrom mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsOtherForms(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("RIFF\x04\x00\x00\x00WAVE")))
	assert.Error(t, err)

	_, err = ReadFrom(bytes.NewReader([]byte("not a riff file")))
	assert.Error(t, err)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vga.pal")
	vga, err := LoadPalette("vga16")
	require.NoError(t, err)

	require.NoError(t, SavePalette(path, vga))

	got, err := LoadPalette(path)
	require.NoError(t, err)
	if diff := cmp.Diff(vga, got); diff != "" {
		t.Errorf("LoadPalette mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pal")
	require.NoError(t, SavePalette(path, nil))

	_, err := LoadPalette(path)
	assert.ErrorContains(t, err, "holds no colors")
}
