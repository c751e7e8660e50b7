// Package domain contains the core business entities of the application:
// study packs generated from user text and the metadata kept alongside them.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
