// Package catalog describes the courses and stars a route is built from.
//
// A [Catalog] lists courses, each with its stars, where every star has a
// castle location and the number of stars needed before it can be
// collected. The Super Mario 64 catalog is embedded and returned by
// [Default]; [Load] reads a replacement from a YAML file.
//
// # Star IDs
//
// A star ID is its course ID followed by the star number (BOB1, CASTLE12).
// 100 coin stars use the suffix "_100" (BOB_100). They are not part of the
// catalog file; [Catalog.WithAlternates] adds the ones a user has times for,
// copying the location and requirement of the star they are collected with.
//
// # Requirements
//
// A star's requirement is raised to the highest requirement among its
// prerequisites by [Catalog.PropagateThresholds], so a star is never
// scheduled before the stars it depends on could be.
package catalog
