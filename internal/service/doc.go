// Package service holds the application use cases: user registration,
// birth profile management, chart computation over stored or supplied
// birth facts, and asynchronous chart readings. Services receive stores
// and the chart engine through their constructors and never touch SQL.
package service
