package versioninfo

import "os"

const (
	// ChannelEnv overrides the detected compiler release channel.
	ChannelEnv = "CFG_RELEASE_CHANNEL"
	// DefaultChannel is reported when no override is present.
	DefaultChannel = "nightly"
)

// Channel returns the release channel of the compiler building this
// artifact. A set ChannelEnv wins verbatim, even when empty.
func Channel() string {
	if channel, ok := os.LookupEnv(ChannelEnv); ok {
		return channel
	}
	return DefaultChannel
}
