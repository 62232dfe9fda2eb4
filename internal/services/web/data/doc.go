// Package data exposes one cached accessor per content service operation.
//
// Reads go through the shared query client with fixed keys and stale
// times; writes run as mutations that invalidate the reads they affect.
//
//	stories                        30s, no retry, persisted
//	verses/<testament>             30s, no retry, persisted
//	dailyVerse                     1h, default retry, persisted
//	currentUserProfile/<principal> 30s, no retry
//	userProfile/<principal>        30s, no retry
//	isAdmin/<principal>            30s, no retry
//	callerRole/<principal>         30s, no retry
package data
