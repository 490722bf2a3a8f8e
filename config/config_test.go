package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		want    *BenchProperties
		wantErr bool
	}{
		{
			name: "full config",
			src: `# bench config
cases pop, getitem
repeat 3
number 1000
length 50
loglevel debug
logdir /tmp/bench
filelog yes
`,
			want: &BenchProperties{
				Cases:    []string{"pop", "getitem"},
				Repeat:   3,
				Number:   1000,
				Length:   50,
				LogLevel: "debug",
				LogDir:   "/tmp/bench",
				FileLog:  true,
			},
		},
		{
			name: "key is case insensitive",
			src:  "REPEAT 7\nfilelog no\n",
			want: &BenchProperties{Repeat: 7},
		},
		{
			name:    "bad int",
			src:     "repeat abc\n",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parse(strings.NewReader(tc.src))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseYaml(t *testing.T) {
	src := `
cases: [pop_append, clear]
repeat: 2
number: 10
filelog: true
`
	got, err := parseYaml(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"pop_append", "clear"}, got.Cases)
	assert.Equal(t, 2, got.Repeat)
	assert.Equal(t, 10, got.Number)
	assert.True(t, got.FileLog)

	_, err = parseYaml(strings.NewReader("repeat: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{name: "text", file: "bench.conf", content: "repeat 4\ncases init\n"},
		{name: "yaml", file: "bench.yaml", content: "repeat: 4\ncases: [init]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			props, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 4, props.Repeat)
			assert.Equal(t, []string{"init"}, props.Cases)
			// 没有配置的项使用默认值
			assert.Equal(t, defaultNumber, props.Number)
			assert.Equal(t, defaultLength, props.Length)
			assert.Equal(t, defaultLogLevel, props.LogLevel)
			assert.Equal(t, ".", props.LogDir)
			assert.True(t, filepath.IsAbs(props.CfPath))
		})
	}
}

func TestSetUpConfig(t *testing.T) {
	old := Properties
	defer func() {
		Properties = old
	}()

	assert.Error(t, SetUpConfig(filepath.Join(t.TempDir(), "missing.conf")))
	assert.Equal(t, old, Properties)

	path := filepath.Join(t.TempDir(), "bench.conf")
	require.NoError(t, os.WriteFile(path, []byte("length 9\n"), 0o644))
	require.NoError(t, SetUpConfig(path))
	assert.Equal(t, 9, Properties.Length)
}
