// Package storeinsight extracts structured commercial and brand metadata
// from storefronts built on a common e-commerce platform, using only the
// store's public, unauthenticated surfaces (the product feed, well-known
// content pages, and the homepage). It can also compare a brand against
// automatically discovered competitors.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package storeinsight
