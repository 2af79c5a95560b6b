// Package chart holds the global configuration of the charting layer.
//
// Config stores the options pushed on every language change and renders
// %-token date formats with the translated month and weekday names.
package chart
