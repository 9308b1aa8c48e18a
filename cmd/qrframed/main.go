package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/unixdj/qrframe/internal/api"

	"github.com/pborman/getopt/v2"
)

func main() {
	log.SetFlags(0)
	getopt.SetUsage(func() {
		fmt.Fprintln(os.Stderr, "QR code frame server")
		getopt.PrintUsage(os.Stderr)
		os.Exit(2)
	})
	addr := getopt.StringLong("addr", 'a', ":8080", "listen address", "addr")
	help := getopt.BoolLong("help", 'h', "show this help")
	getopt.Parse()
	if *help {
		fmt.Println("QR code frame server")
		getopt.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if getopt.NArgs() != 0 {
		getopt.Usage()
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("Server running on", *addr)
	log.Fatalln(srv.ListenAndServe())
}
