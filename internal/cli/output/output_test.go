package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "AUTO", want: ModeAuto},
		{in: "text", want: ModeText},
		{in: "md", want: ModeMarkdown},
		{in: "markdown", want: ModeMarkdown},
		{in: " json ", want: ModeJSON},
		{in: "yaml", want: ModeAuto, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{name: "auto on tty", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, isTTY: true, want: ModeJSON},
		{name: "unknown falls back to auto", mode: Mode("xml"), want: ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestTable(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)

		r.Table([]string{"Name", "Type"}, [][]string{{"id", "int"}, {"username", "varchar"}})

		assert.Contains(t, out.String(), "| Name | Type |")
		assert.Contains(t, out.String(), "| username | varchar |")
		assert.False(t, ansiPattern.MatchString(out.String()))
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, true, ModeText)

		r.Table([]string{"Name"}, [][]string{{"id"}})

		assert.Contains(t, out.String(), "NAME")
		assert.Contains(t, out.String(), "│ id")
	})

	t.Run("json writes nothing", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)

		r.Table([]string{"Name"}, [][]string{{"id"}})

		assert.Empty(t, out.String())
	})
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"count": 2}))

	assert.JSONEq(t, `{"count": 2}`, out.String())
}

func TestMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)

	r.Header("Schema")
	r.KeyValue("Dialect", "mysql")
	r.Success("No issues found")
	r.Warning("slow")
	r.Error("broken")

	assert.Equal(t, "# Schema\n\n- **Dialect:** mysql\nNo issues found\n", out.String())
	assert.Equal(t, "warning: slow\nerror: broken\n", errOut.String())
}
