// Package view is the text presentation layer of the clock: it renders a
// clock.State with configurable labels and parses time picker input.
package view
