package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	facilitiesJSON = `[
  {"type": "hospital", "name": "Charité", "address": "Charitéplatz 1", "city": "Berlin"},
  {"type": "shelter", "name": "Messe Notunterkunft", "address": "Messedamm 22", "city": "Berlin"}
]`
	floodInfoJSON = `{
  "severity": {"high": ["Move to the highest floor."]},
  "water_level_advice": {"knee": ["Do not walk through moving water."]},
  "injuries_yes": ["Call 112."],
  "injuries_no": ["Check on neighbours."],
  "trapped": ["Signal from a window."],
  "precautions": ["Switch off electricity."]
}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestLoader(t *testing.T, facilities, floodInfo string) *Loader {
	t.Helper()
	dir := t.TempDir()
	return NewLoader(Paths{
		Facilities: writeFile(t, dir, "facilities.json", facilities),
		FloodInfo:  writeFile(t, dir, "flood_info_de.json", floodInfo),
		Guidance:   filepath.Join(dir, "guidance.json"),
	})
}

func TestLoadFacilities(t *testing.T) {
	l := newTestLoader(t, facilitiesJSON, floodInfoJSON)

	got, err := l.LoadFacilities(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Facility{Type: "hospital", Name: "Charité", Address: "Charitéplatz 1", City: "Berlin"}, got[0])
	assert.Equal(t, "shelter", got[1].Type)
}

func TestLoadFloodAdvice(t *testing.T) {
	l := newTestLoader(t, facilitiesJSON, floodInfoJSON)

	got, err := l.LoadFloodAdvice(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Move to the highest floor."}, got.SeverityTips("high"))
	assert.Equal(t, []string{"Do not walk through moving water."}, got.WaterLevelTips("knee"))
	assert.Equal(t, []string{"Call 112."}, got.InjuriesYes)
	assert.Equal(t, []string{"Check on neighbours."}, got.InjuriesNo)
	assert.Equal(t, []string{"Signal from a window."}, got.TrappedTips)
	assert.Equal(t, []string{"Switch off electricity."}, got.Precautions)
}

func TestLoadFloodAdvice_MissingKeysAreEmpty(t *testing.T) {
	l := newTestLoader(t, facilitiesJSON, `{"precautions": ["Stay informed."]}`)

	got, err := l.LoadFloodAdvice(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got.SeverityTips("high"))
	assert.Empty(t, got.WaterLevelTips("above"))
	assert.Empty(t, got.InjuriesYes)
	assert.Empty(t, got.TrappedTips)
	assert.Equal(t, []string{"Stay informed."}, got.Precautions)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", `[{"type": "hospital",`},
		{"wrong shape", `{"type": "hospital"}`},
		{"invalid UTF-8", "[{\"name\": \"\xff\xfe\"}]"},
		{"trailing data", `[] []`},
		{"extra closing bracket", `[{"type": "hospital", "name": "A", "address": "x", "city": "Berlin"}]]`},
		{"extra closing brace", `{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t, tt.content, floodInfoJSON)

			got, err := l.LoadFacilities(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
			assert.Nil(t, got)
		})
	}
}

func TestLoadFloodAdvice_TrailingBrace(t *testing.T) {
	l := newTestLoader(t, facilitiesJSON, `{"precautions": ["Stay informed."]}}`)

	got, err := l.LoadFloodAdvice(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Empty(t, got.Precautions)
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(Paths{
		Facilities: filepath.Join(t.TempDir(), "missing.json"),
		FloodInfo:  filepath.Join(t.TempDir(), "missing.json"),
	})

	_, err := l.LoadFacilities(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	_, err = l.LoadFloodAdvice(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestLoad_NoPathConfigured(t *testing.T) {
	_, err := NewLoader(Paths{}).LoadFacilities(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "no path configured")
}

func TestLoad_ReadsFreshEachCall(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "facilities.json", facilitiesJSON)
	l := NewLoader(Paths{Facilities: path})

	first, err := l.LoadFacilities(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	writeFile(t, dir, "facilities.json", `[]`)

	second, err := l.LoadFacilities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCheckReadiness(t *testing.T) {
	l := newTestLoader(t, facilitiesJSON, floodInfoJSON)
	require.NoError(t, l.CheckReadiness(context.Background()))

	broken := newTestLoader(t, facilitiesJSON, `{`)
	err := broken.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load flood advice")
}
