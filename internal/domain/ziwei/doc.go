// Package ziwei implements the Zi Wei Dou Shu natal chart engine.
//
// Given lunar birth facts (month, day, hour branch and the year's
// stem-branch pair) the engine derives the 12-palace ring, assigns each
// palace its heavenly stem, resolves the five-element bureau, places the
// main and auxiliary stars with their brightness, tags the four
// transformations and matches the classical pattern catalogue.
//
// Every stage is a pure function over immutable lookup tables. A chart is
// rebuilt from scratch for each set of facts and never mutated afterwards.
//
// All walks around the ring use one rotational sense: increasing branch
// index (子 → 丑 → 寅 …). Palace k of the naming walk sits at branch
// life+k, and star offsets such as "天机 at −1" are literal branch offsets.
package ziwei
