package tela

import "errors"

// ErrTerminalIO indicates a write to or read from the terminal failed.
// Errors returned by Terminal implementations wrap this sentinel; the
// app loop treats it as fatal and restores the terminal before exiting.
var ErrTerminalIO = errors.New("terminal io failure")

// ErrMalformedInput indicates the input decoder encountered a byte
// sequence it could not interpret. Malformed sequences are discarded
// and decoding resumes; this sentinel only surfaces through the
// decoder's diagnostics hook.
var ErrMalformedInput = errors.New("malformed input sequence")
