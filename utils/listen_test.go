//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenReusePortSharesAddress(t *testing.T) {
	ln1, err := Listen("tcp", "127.0.0.1:0", true)
	require.NoError(t, err)
	defer ln1.Close()
	addr := ln1.Addr().String()

	ln2, err := Listen("tcp", addr, true)
	require.NoError(t, err)
	defer ln2.Close()
	assert.Equal(t, addr, ln2.Addr().String())
}

func TestListenWithoutReusePortRejectsBoundAddress(t *testing.T) {
	ln1, err := Listen("tcp", "127.0.0.1:0", false)
	require.NoError(t, err)
	defer ln1.Close()

	_, err = Listen("tcp", ln1.Addr().String(), false)
	assert.Error(t, err)
}

func TestListenReusePortNeedsBothSides(t *testing.T) {
	ln1, err := Listen("tcp", "127.0.0.1:0", false)
	require.NoError(t, err)
	defer ln1.Close()

	_, err = Listen("tcp", ln1.Addr().String(), true)
	assert.Error(t, err)
}
