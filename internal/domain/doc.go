// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, the birth profiles they keep and
// the chart readings generated for those profiles. The chart engine itself
// lives in the ziwei subpackage and depends on nothing outside the
// standard library.
package domain
