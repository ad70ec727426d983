// Package benchmark compares corona-log against zap, zerolog, logrus
// and log/slog. Every framework writes a comparable single-line text
// record to the same destination.
//
//	go test -bench . -benchmem ./benchmark
package benchmark
