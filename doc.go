// Gazetteer is a client for IP geolocation lookups.
//
// Idea is simple: you have an IP address like 1.2.3.4. And you want to
// know where this user comes from, which city, which network. So, this
// is a geolocation task.
//
// Tool itself is organized into 3 logical parts:
//
// Geolib
//
// geolib is a main package of the application which contains Client
// struct and main logic related to geolocation: bogon classification,
// caching, single and batch lookups with country data enrichment. It
// has its own API and can be embedded into any Go program.
//
// Config
//
// This package reads a TOML file and translates it into geolib
// settings. Nothing interesting there.
//
// Gazetteer
//
// A main package itself is an example of how to wire geolib. But this
// is a full example which provides CLI. Resulting binary resolves
// addresses from a command line or starts http server, so you can use
// it in your infrastructure as is.
package main
