package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/bimap/internal/cli"
	"go.llib.dev/bimap/pkg/bimap"
	"go.llib.dev/bimap/pkg/logging"
)

type result struct {
	Out string
	Err string
}

func run(tb testing.TB, stdin string, args ...string) (result, error) {
	tb.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.New()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return result{Out: out.String(), Err: errOut.String()}, err
}

func writeFile(tb testing.TB, name, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	assert.NoError(tb, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("one-to-one document", func(t *testing.T) {
		path := writeFile(t, "codes.json", `{"ok":"200","not found":"404"}`)
		res, err := run(t, "", "validate", path)
		assert.NoError(t, err)
		assert.Equal(t, "ok\n", res.Out)
		assert.Contain(t, res.Err, `"pairs":2`)
	})
	t.Run("duplicate values", func(t *testing.T) {
		path := writeFile(t, "codes.json", `{"a":"1","b":"1"}`)
		res, err := run(t, "", "validate", path)
		assert.ErrorIs(t, err, bimap.ErrDuplicateKey)
		assert.Contain(t, res.Err, `"kind":"ErrDuplicateKey"`)
	})
	t.Run("yaml by extension", func(t *testing.T) {
		path := writeFile(t, "codes.yml", "a: x\nb: y\n")
		_, err := run(t, "", "validate", path)
		assert.NoError(t, err)
	})
	t.Run("stdin uses --format", func(t *testing.T) {
		_, err := run(t, "a: x\nb: x\n", "validate", "--format", "yaml", cli.StdinPath)
		assert.ErrorIs(t, err, bimap.ErrDuplicateKey)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "", "validate", filepath.Join(t.TempDir(), "nope.json"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestLookup(t *testing.T) {
	path := writeFile(t, "codes.json", `{"ok":"200","Not Found":"404"}`)

	t.Run("direct", func(t *testing.T) {
		res, err := run(t, "", "lookup", path, "ok")
		assert.NoError(t, err)
		assert.Equal(t, "200\n", res.Out)
	})
	t.Run("reverse", func(t *testing.T) {
		res, err := run(t, "", "lookup", "--reverse", path, "404")
		assert.NoError(t, err)
		assert.Equal(t, "Not Found\n", res.Out)
	})
	t.Run("missing key", func(t *testing.T) {
		_, err := run(t, "", "lookup", path, "teapot")
		assert.ErrorIs(t, err, bimap.ErrKeyNotFound)
	})
	t.Run("ignore case", func(t *testing.T) {
		res, err := run(t, "", "lookup", "--ignore-case", path, "NOT FOUND")
		assert.NoError(t, err)
		assert.Equal(t, "404\n", res.Out)
	})
	t.Run("ignore case from the environment", func(t *testing.T) {
		t.Setenv("BIMAP_IGNORE_CASE", "true")
		res, err := run(t, "", "lookup", path, "not found")
		assert.NoError(t, err)
		assert.Equal(t, "404\n", res.Out)
	})
}

func TestInvert(t *testing.T) {
	path := writeFile(t, "codes.json", `{"b":"2","a":"1"}`)

	t.Run("json", func(t *testing.T) {
		res, err := run(t, "", "invert", path)
		assert.NoError(t, err)
		assert.Equal(t, `{"2":"b","1":"a"}`+"\n", res.Out)
	})
	t.Run("yaml", func(t *testing.T) {
		res, err := run(t, "", "invert", "--format", "yaml", path)
		assert.NoError(t, err)
		assert.Equal(t, "\"2\": b\n\"1\": a\n", res.Out)
	})
}

func TestConvert(t *testing.T) {
	t.Run("yaml to json keeps order", func(t *testing.T) {
		path := writeFile(t, "codes.yaml", "z: last\na: first\n")
		res, err := run(t, "", "convert", "--format", "json", path)
		assert.NoError(t, err)
		assert.Equal(t, `{"z":"last","a":"first"}`+"\n", res.Out)
	})
	t.Run("json output escapes like encoding/json", func(t *testing.T) {
		path := writeFile(t, "codes.yaml", "\"<a>&\": \"b\\u2028\"\n")
		res, err := run(t, "", "convert", "--format", "json", path)
		assert.NoError(t, err)
		assert.Equal(t, `{"\u003ca\u003e\u0026":"b\u2028"}`+"\n", res.Out)
	})
	t.Run("format from the environment", func(t *testing.T) {
		t.Setenv("BIMAP_FORMAT", "yaml")
		path := writeFile(t, "codes.json", `{"z":"last","a":"first"}`)
		res, err := run(t, "", "convert", path)
		assert.NoError(t, err)
		assert.Equal(t, "z: last\na: first\n", res.Out)
	})
	t.Run("unknown format", func(t *testing.T) {
		path := writeFile(t, "codes.json", `{}`)
		_, err := run(t, "", "convert", "--format", "toml", path)
		assert.ErrorIs(t, err, cli.ErrUnknownFormat)
	})
}

func TestLogLevel(t *testing.T) {
	path := writeFile(t, "codes.json", `{"a":"1"}`)

	t.Run("debug details are hidden by default", func(t *testing.T) {
		res, err := run(t, "", "validate", path)
		assert.NoError(t, err)
		assert.NotContain(t, res.Err, "loading mapping")
	})
	t.Run("debug level from the environment", func(t *testing.T) {
		t.Setenv("BIMAP_LOG_LEVEL", "debug")
		res, err := run(t, "", "validate", path)
		assert.NoError(t, err)
		assert.Contain(t, res.Err, "loading mapping")
	})
	t.Run("unknown level", func(t *testing.T) {
		_, err := run(t, "", "validate", "--log-level", "loud", path)
		assert.ErrorIs(t, err, logging.ErrUnknownLevel)
	})
}
