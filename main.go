package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wasm-demo-server/asset"
	httpx "wasm-demo-server/http"
	"wasm-demo-server/tftp"
	"wasm-demo-server/watch"
)

func main() {
	addr := flag.String("addr", ":8081", "HTTP listen address")
	root := flag.String("root", ".", "directory the served files are resolved against")
	index := flag.String("index", asset.DefaultIndex, "file served for /")
	binary := flag.String("asset", asset.DefaultBinary, "file served for every other path")
	// optional extras
	reusePort := flag.Bool("reuseport", false, "set SO_REUSEPORT so a second instance can bind the same address")
	tftpAddr := flag.String("tftp", "", "also serve the files over TFTP on this address (e.g. :69)")
	watchFiles := flag.Bool("watch", false, "log when the served files change on disk")
	flag.Parse()

	rule := asset.Rule{Index: *index, Binary: *binary}
	fsys := asset.OpenRoot(*root)

	loggerHTTP := log.New(os.Stdout, "http ", log.LstdFlags)
	ln, err := httpx.StartHTTPServer(*addr, rule, fsys, *reusePort, loggerHTTP)
	if err != nil {
		log.Fatalf("start http failure: %v", err)
	}
	defer ln.Close()

	if *tftpAddr != "" {
		loggerTFTP := log.New(os.Stdout, "tftp ", log.LstdFlags)
		srv, _, err := tftp.StartTFTPServer(*tftpAddr, rule, fsys, loggerTFTP)
		if err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
		defer srv.Shutdown()
	}

	if *watchFiles {
		loggerWatch := log.New(os.Stdout, "watch ", log.LstdFlags)
		w, err := watch.NewWatcher(loggerWatch)
		if err != nil {
			log.Fatalf("start watcher failure: %v", err)
		}
		if err := w.Watch(*root, rule.Files(), func(path string) {
			loggerWatch.Printf("changed: %s", path)
		}); err != nil {
			log.Fatalf("watch %q failure: %v", *root, err)
		}
		defer w.Stop()
	}

	// Block until termination signal to keep goroutine servers alive
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, exiting", sig)
}
