// Package version reports the build of the running binary. Values come from
// -ldflags when set and from the Go build info otherwise:
//
//	go build -ldflags "-X github.com/kbukum/sypnna/version.Version=1.2.0" ./cmd/sypnna
package version
