// Package pkg provides the libraries behind starroute.
//
// # Overview
//
// Starroute picks the stars of a Super Mario 64 route with the lowest total
// time. The pkg directory is organized into three areas:
//
//  1. Engine: [dag] (prerequisite graphs) and [optimize] (partition
//     enumeration and greedy completion)
//  2. Domain: [catalog] (courses, stars, locations), [config] (user star
//     times) and [route] (problem preparation, caching, reports)
//  3. Infrastructure: [cache], [errors], [observability], [buildinfo]
//
// # Data flow
//
//	config.toml + catalog
//	         ↓
//	route.Prepare   →  optimize.Problem
//	         ↓
//	optimize.Optimize  (cached by route.Runner)
//	         ↓
//	route.Route  →  JSON export, CLI tables, HTTP API
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/dag
// [optimize]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/optimize
// [catalog]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/catalog
// [config]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/config
// [route]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/route
// [cache]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/starroute/pkg/buildinfo
package pkg
