package tftp

import (
	"bytes"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	tftp "github.com/pin/tftp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wasm-demo-server/asset"
)

func TestTFTPMirrorsSelectionRule(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, asset.DefaultIndex, []byte("<html></html>"), 0o644))
	require.NoError(t, util.WriteFile(fsys, asset.DefaultBinary, []byte("\x00asm\x01\x00\x00\x00"), 0o644))

	srv, addr, err := StartTFTPServer("127.0.0.1:0", asset.DefaultRule(), fsys, nil)
	require.NoError(t, err)
	defer srv.Shutdown()

	c, err := tftp.NewClient(addr.String())
	require.NoError(t, err)

	cases := map[string]string{
		"/":                 "<html></html>",
		"wasm_demo_bg.wasm": "\x00asm\x01\x00\x00\x00",
		"pxelinux.0":        "\x00asm\x01\x00\x00\x00",
	}
	for name, want := range cases {
		wt, err := c.Receive(name, "octet")
		require.NoError(t, err, name)
		var buf bytes.Buffer
		_, err = wt.WriteTo(&buf)
		require.NoError(t, err, name)
		assert.Equal(t, want, buf.String(), name)
	}
}

func TestTFTPRejectsWrites(t *testing.T) {
	srv, addr, err := StartTFTPServer("127.0.0.1:0", asset.DefaultRule(), memfs.New(), nil)
	require.NoError(t, err)
	defer srv.Shutdown()

	c, err := tftp.NewClient(addr.String())
	require.NoError(t, err)
	rf, err := c.Send("upload.bin", "octet")
	if err == nil {
		_, err = rf.ReadFrom(bytes.NewReader([]byte("data")))
	}
	assert.Error(t, err)
}

func TestStartTFTPServerRequiresFS(t *testing.T) {
	_, _, err := StartTFTPServer("127.0.0.1:0", asset.DefaultRule(), nil, nil)
	assert.Error(t, err)
}
