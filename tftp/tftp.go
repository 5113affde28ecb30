package tftp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/go-git/go-billy/v5"
	tftp "github.com/pin/tftp/v3"

	"wasm-demo-server/asset"
)

func serveFile(fsys billy.Filesystem, name string, rf io.ReaderFrom) error {
	if ot, ok := rf.(tftp.OutgoingTransfer); ok {
		if fi, err := fsys.Stat(name); err == nil {
			ot.SetSize(fi.Size())
		}
	}
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = rf.ReadFrom(f)
	return err
}

// StartTFTPServer mirrors the HTTP rule over TFTP: filename "/" gets the
// index page, any other filename gets the wasm binary. Writes are refused.
func StartTFTPServer(addr string, rule asset.Rule, fsys billy.Filesystem, logger *log.Logger) (*tftp.Server, net.Addr, error) {
	if addr == "" {
		addr = ":69"
	}
	if fsys == nil {
		return nil, nil, errors.New("invalid TFTP config: missing asset filesystem")
	}
	readHandler := func(filename string, rf io.ReaderFrom) error {
		sel := rule.Select(filename)
		if logger != nil {
			if ot, ok := rf.(tftp.OutgoingTransfer); ok {
				raddr := ot.RemoteAddr()
				logger.Printf("RRQ %q from %s -> %q", filename, raddr.String(), sel.Name)
			}
		}
		if err := serveFile(fsys, sel.Name, rf); err != nil {
			if logger != nil {
				logger.Printf("serve %q: %v", sel.Name, err)
			}
			return err
		}
		return nil
	}

	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := tftp.NewServer(readHandler, nil)
	srv.SetTimeout(5 * time.Second)

	if logger != nil {
		logger.Printf("TFTP server listening on %s, index=%q binary=%q", pc.LocalAddr(), rule.Index, rule.Binary)
	}
	go func() {
		if err := srv.Serve(pc); err != nil {
			if logger != nil {
				logger.Printf("TFTP server error: %v", err)
			}
		}
	}()
	return srv, pc.LocalAddr(), nil
}
