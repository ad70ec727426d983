// Package core defines the small set of types shared by every layer of
// corona-log.
//
// Level is the ordered severity enumeration used both for messages and
// for thresholds. OffLevel sits above CriticalLevel and is only ever a
// threshold: setting it silences a logger, and a message at OffLevel is
// never emitted. Levels marshal to and from text so they can be read
// from environment variables, YAML files and command-line flags.
//
// Location describes the call site of a single log call. It is either
// captured with Caller or supplied explicitly by the caller, and is
// consumed immediately by the formatter; it is never stored.
package core
