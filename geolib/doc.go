// Package geolib is a client-side lookup engine which resolves IP
// addresses into structured geolocation and network metadata, keeping
// remote calls and quota usage to a minimum.
//
// A Client answers as much as it can locally: bogon addresses (private,
// loopback and other non-routable ranges) are classified without any
// network access, previously resolved records are served from a bounded
// LRU cache, and batch lookups deduplicate and chunk the remaining
// addresses before going to the remote service. Every resolved record
// is joined with static country reference data: name, EU membership,
// flag, currency and continent.
//
//	client, err := geolib.New(geolib.Config{Token: "token"})
//	if err != nil {
//		...
//	}
//
//	details, err := client.Lookup(ctx, "8.8.8.8")
//
// A Client instance is not safe for concurrent use.
package geolib
