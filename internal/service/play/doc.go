// Package play runs the clock interactively in a terminal: both faces share
// one keyboard, commands arrive line by line and the screen is redrawn after
// every state change.
package play
