package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/gazetteer/api"
	"github.com/9seconds/gazetteer/config"
	"github.com/9seconds/gazetteer/geolib"
)

var version = "dev"

var (
	app = kingpin.New(
		"gazetteer",
		"IP geolocation lookup client")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GAZETTEER_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the config.").
			Short('c').
			File()

	lookupCmd   = app.Command("lookup", "Resolve given IP addresses.")
	lookupAddrs = lookupCmd.Arg("addrs", "IP addresses to resolve.").
			Required().
			Strings()

	selfCmd  = app.Command("self", "Resolve the address you come from.")
	selfIPv6 = selfCmd.Flag("ipv6", "Resolve via the IPv6 endpoint.").
			Short('6').
			Bool()

	mapCmd   = app.Command("map", "Build a map report for given IP addresses.")
	mapAddrs = mapCmd.Arg("addrs", "IP addresses to put on a map.").
			Required().
			Strings()

	serveCmd       = app.Command("serve", "Start HTTP server.")
	serveBasicAuth = serveCmd.Flag("basic-auth",
		"Protect the server with basic auth (user:password).").
		Envar("GAZETTEER_BASIC_AUTH").
		String()
)

func init() {
	app.Version(version)
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.WarnLevel)
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf := config.Default()

	if *configFile != nil {
		parsed, err := config.Parse(*configFile)
		if err != nil {
			log.Fatal(err.Error())
		}

		conf = parsed
	}

	if token := os.Getenv("GAZETTEER_TOKEN"); token != "" {
		conf.Token = token
	}

	clientConf := conf.ClientConfig()
	clientConf.Logger = newLogger()

	client, err := geolib.New(clientConf)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	switch command {
	case lookupCmd.FullCommand():
		results, err := client.LookupBatch(ctx, *lookupAddrs, conf.BatchOptions())
		if err != nil {
			log.Fatal(err.Error())
		}

		printJSON(results)
	case selfCmd.FullCommand():
		var details *geolib.Details

		if *selfIPv6 {
			details, err = client.LookupSelfV6(ctx)
		} else {
			details, err = client.LookupSelf(ctx)
		}

		if err != nil {
			log.Fatal(err.Error())
		}

		printJSON(details)
	case mapCmd.FullCommand():
		reportURL, err := client.GetMapReport(ctx, *mapAddrs)
		if err != nil {
			log.Fatal(err.Error())
		}

		os.Stdout.WriteString(reportURL + "\n")
	case serveCmd.FullCommand():
		var handler http.Handler = api.MakeServer(client, conf.BatchOptions())

		if *serveBasicAuth != "" {
			handler, err = makeBasicAuth(handler, *serveBasicAuth)
			if err != nil {
				log.Fatal(err.Error())
			}
		}

		srv := &http.Server{
			Addr:    conf.Listen,
			Handler: handler,
		}

		go func() {
			<-ctx.Done()
			srv.Shutdown(context.Background()) // nolint: errcheck
		}()

		log.Debugf("Listening on %s", conf.Listen)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err.Error())
		}
	}
}

func printJSON(v interface{}) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err.Error())
	}

	os.Stdout.Write(encoded)    // nolint: errcheck
	os.Stdout.WriteString("\n") // nolint: errcheck
}
