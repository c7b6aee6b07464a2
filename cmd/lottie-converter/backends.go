//go:build rlottie

package main

// Builds tagged "rlottie" link the cgo backend into the tool.
import _ "github.com/vleushin/lottie-converter/decoder/rlottie"
