package config

// CompiledSecret holds a bridge secret embedded at build time via -ldflags.
// When empty, the bridge.secret setting (or APPMENU_BRIDGE_SECRET) is used.
var CompiledSecret string
