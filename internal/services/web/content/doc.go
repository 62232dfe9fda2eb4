// Package content defines the read model the web service renders: stories,
// verses, user profiles, roles and the images that decorate them.
//
// Values are produced by the backend client and are treated as immutable by
// every page; only image attachment mutates backend state and it goes through
// the data hooks.
package content
