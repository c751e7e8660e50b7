// Package extract fetches web pages and pulls out their readable article text
// with goquery, so a study pack can be generated from a URL. Results can be
// cached in Redis.
package extract
