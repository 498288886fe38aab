package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/ogier/pflag"

	"github.com/juruen/digitrec/config"
	"github.com/juruen/digitrec/hwr"
	"github.com/juruen/digitrec/log"
	"github.com/juruen/digitrec/session"
	"github.com/juruen/digitrec/shell"
	"github.com/juruen/digitrec/version"
)

// how long the shell waits for the initial health probe before accepting
// commands
const healthWait = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	server := flag.Bool("server", false, "run the HTTP API instead of the shell")
	port := flag.String("port", "8080", "port for --server")
	ni := flag.Bool("ni", false, "not interactive (json output)")
	command := flag.StringP("command", "c", "", "run a single shell command and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := log.InitLog(cfg.LogMode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := session.OptionsFromConfig(cfg)
	opts.Notify = shell.Notifier(os.Stdout, *ni)

	client := hwr.NewClient(cfg.APIURL, cfg.Timeout)
	ctrl := session.New(client, opts)
	defer ctrl.Close()

	log.Trace.Printf("recognition service: %s", cfg.APIURL)
	ctrl.Start()

	if *server {
		runServerMode(ctrl, *port)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthWait)
	ctrl.Health().Wait(ctx)
	cancel()

	var args []string
	if *command != "" {
		args = strings.Fields(*command)
	} else {
		args = flag.Args()
	}

	if err := shell.RunShell(ctrl, *ni, args); err != nil {
		log.Error.Println("Error: ", err)
		os.Exit(1)
	}
}
