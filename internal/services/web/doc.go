// Package web serves the Sacred Verses site.
//
// It composes the feature modules over cached backend hooks and wraps them in
// request logging, panic recovery, session resolution and CSRF protection.
package web
